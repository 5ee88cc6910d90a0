// Package roster は名簿ドメインの各エンティティとそのSQL面を定義する。
package roster

import (
	"fmt"
	"strings"

	"github.com/maica08/student-roster/internal/model"
)

// Resource は1エンティティのSQL面とアクセスポリシーを表す。
// 全エンティティのCRUDはこの定義から一様に導出される。
type Resource struct {
	// Name はURLセグメント名（テーブル名と同じ）。
	Name string
	// Columns はINSERT/UPDATE対象のカラム（主キーを除く、宣言順）。
	Columns []string
	// Required は書き込みリクエストの必須フィールド（検証順）。
	Required []string
	// ListQuery は一覧取得クエリ。JOINを含む場合があり、決定的なORDER BYを持つ。
	ListQuery string
	// ListRoles は一覧閲覧に必要なロール。空の場合は公開。
	ListRoles []model.Role
	// MutateRoles は作成・更新に必要なロール。
	MutateRoles []model.Role
	// DeleteRoles は削除に必要なロール。
	DeleteRoles []model.Role
}

// InsertStmt はINSERTステートメントを構築する。
func (r Resource) InsertStmt() string {
	placeholders := make([]string, len(r.Columns))
	for i := range r.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.Name, strings.Join(r.Columns, ", "), strings.Join(placeholders, ", "))
}

// UpdateStmt はUPDATEステートメントを構築する。
// 最後のプレースホルダがWHERE句のidに対応する。
func (r Resource) UpdateStmt() string {
	assignments := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		assignments[i] = fmt.Sprintf("%s = $%d", col, i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		r.Name, strings.Join(assignments, ", "), len(r.Columns)+1)
}

// DeleteStmt はDELETEステートメントを構築する。
func (r Resource) DeleteStmt() string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.Name)
}

// personColumns は生徒・教員に共通のカラム構成。
var personColumns = []string{"firstname", "middlename", "lastname", "birthdate", "gender"}

// personRequired は生徒・教員に共通の必須フィールド。middlenameは任意。
var personRequired = []string{"firstname", "lastname", "birthdate", "gender"}

// All は名簿ドメインの全リソース定義を返す。
// 生徒・教員のPII一覧はadmin/teacherに制限し、その他の一覧は公開とする。
// 変更系はadmin専用だが、コースの作成・更新はteacherにも許可する。
func All() []Resource {
	adminOnly := []model.Role{model.RoleAdmin}
	adminTeacher := []model.Role{model.RoleAdmin, model.RoleTeacher}

	return []Resource{
		{
			Name:     "students",
			Columns:  personColumns,
			Required: personRequired,
			ListQuery: `SELECT id, firstname, middlename, lastname, birthdate, gender
				FROM students ORDER BY lastname, firstname, id`,
			ListRoles:   adminTeacher,
			MutateRoles: adminOnly,
			DeleteRoles: adminOnly,
		},
		{
			Name:     "teachers",
			Columns:  personColumns,
			Required: personRequired,
			ListQuery: `SELECT id, firstname, middlename, lastname, birthdate, gender
				FROM teachers ORDER BY lastname, firstname, id`,
			ListRoles:   adminTeacher,
			MutateRoles: adminOnly,
			DeleteRoles: adminOnly,
		},
		{
			Name:        "courses",
			Columns:     []string{"name", "code"},
			Required:    []string{"name", "code"},
			ListQuery:   `SELECT id, name, code FROM courses ORDER BY name, id`,
			MutateRoles: adminTeacher,
			DeleteRoles: adminOnly,
		},
		{
			Name:        "rooms",
			Columns:     []string{"location", "description"},
			Required:    []string{"location"},
			ListQuery:   `SELECT id, location, description FROM rooms ORDER BY location, id`,
			MutateRoles: adminOnly,
			DeleteRoles: adminOnly,
		},
		{
			Name:     "classes",
			Columns:  []string{"description", "room_id", "course_id"},
			Required: []string{"description"},
			ListQuery: `SELECT c.id, c.description, r.location AS room, co.name AS course, co.code AS course_code
				FROM classes c
				LEFT JOIN rooms r ON c.room_id = r.id
				LEFT JOIN courses co ON c.course_id = co.id
				ORDER BY co.name, c.id`,
			MutateRoles: adminOnly,
			DeleteRoles: adminOnly,
		},
		{
			Name:     "roster",
			Columns:  []string{"class_id", "student_id", "teacher_id", "class_period"},
			Required: []string{"class_period"},
			ListQuery: `SELECT ro.id, c.description AS class,
				s.firstname || ' ' || s.lastname AS student,
				t.firstname || ' ' || t.lastname AS teacher,
				ro.class_period
				FROM roster ro
				LEFT JOIN classes c ON ro.class_id = c.id
				LEFT JOIN students s ON ro.student_id = s.id
				LEFT JOIN teachers t ON ro.teacher_id = t.id
				ORDER BY c.description, ro.id`,
			MutateRoles: adminOnly,
			DeleteRoles: adminOnly,
		},
	}
}

// ClassByIDQuery はクラス単体取得クエリ。
const ClassByIDQuery = `SELECT c.id, c.description, r.location AS room, co.name AS course, co.code AS course_code
	FROM classes c
	LEFT JOIN rooms r ON c.room_id = r.id
	LEFT JOIN courses co ON c.course_id = co.id
	WHERE c.id = $1`

// ClassSummaryQuery はクラス詳細に添える集計クエリ。
// 名簿上の割り当て数と、参加している生徒・教員の異なり数を返す。
const ClassSummaryQuery = `SELECT COUNT(*), COUNT(DISTINCT student_id), COUNT(DISTINCT teacher_id)
	FROM roster WHERE class_id = $1`
