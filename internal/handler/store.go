package handler

import (
	"context"

	"github.com/maica08/student-roster/internal/datastore"
)

// Store はハンドラーが必要とするデータアクセスインターフェース。
// datastore.Storeの部分集合として定義する。
type Store interface {
	// QueryRows はクエリを実行し、各行を位置ベースの値スライスとして返す。
	QueryRows(ctx context.Context, query string, args ...any) ([][]any, error)
	// QueryNamed はクエリを実行し、各行をカラム名キーのRowMapとして返す。
	QueryNamed(ctx context.Context, query string, args ...any) ([]datastore.RowMap, error)
	// Exec は書き込みステートメントをトランザクション内で実行し、影響行数を返す。
	Exec(ctx context.Context, stmt string, args ...any) (int64, error)
}
