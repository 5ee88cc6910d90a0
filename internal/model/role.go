package model

// Role はアクセストークンに埋め込まれる権限区分を表す。
type Role string

const (
	// RoleAdmin は全エンティティの読み書きが可能な管理者ロール。
	RoleAdmin Role = "admin"
	// RoleTeacher は教員ロール。PII一覧の閲覧とコース作成が可能。
	RoleTeacher Role = "teacher"
	// RoleStudent は生徒ロール。公開エンドポイントのみ利用可能。
	RoleStudent Role = "student"
)

// ValidRole は既知の3ロールのいずれかであるかを返す。
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}
