// Package datastore はパラメータ化クエリの実行と行マッピング変換を提供する。
// 読み取りは位置ベース（raw）とカラム名ベース（named）の2形式、
// 書き込みは単一ステートメントのトランザクション実行をサポートする。
package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/maica08/student-roster/internal/model"
)

// Store はリレーショナルストアへのアクセスを提供する。
// 接続はdatabase/sqlのプールにより呼び出しごとに取得・返却される。
type Store struct {
	db *sql.DB
}

// New はStoreを生成する。
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// QueryRows はクエリを実行し、各行を位置ベースの値スライスとして返す。
func (s *Store) QueryRows(ctx context.Context, query string, args ...any) ([][]any, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var result [][]any
	for rows.Next() {
		values, err := scanRow(rows, len(cols))
		if err != nil {
			return nil, err
		}
		result = append(result, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}

// QueryNamed はクエリを実行し、各行をカラム名キーのRowMapとして返す。
// カラム名はステートメントの結果から導出し、出力順を保持する。
func (s *Store) QueryNamed(ctx context.Context, query string, args ...any) ([]RowMap, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	var result []RowMap
	for rows.Next() {
		values, err := scanRow(rows, len(cols))
		if err != nil {
			return nil, err
		}
		result = append(result, NewRowMap(cols, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}

// Exec はINSERT/UPDATE/DELETEをトランザクション内で実行する。
// 成功時はコミットして影響行数を返し、失敗時はロールバックして
// ストアのエラーメッセージを含むCommitFailedエラーを返す。
func (s *Store) Exec(ctx context.Context, stmt string, args ...any) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, model.NewCommitFailedError(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, model.NewCommitFailedError(err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return 0, model.NewCommitFailedError(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, model.NewCommitFailedError(err)
	}

	return rowsAffected, nil
}

// scanRow は現在の行をany値のスライスとして読み取る。
// ドライバが返す[]byteは文字列に、time.TimeはRFC 3339文字列に正規化する。
func scanRow(rows *sql.Rows, n int) ([]any, error) {
	values := make([]any, n)
	ptrs := make([]any, n)
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	for i, v := range values {
		switch t := v.(type) {
		case []byte:
			values[i] = string(t)
		case time.Time:
			values[i] = t.Format(time.RFC3339)
		}
	}

	return values, nil
}
