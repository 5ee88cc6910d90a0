// Package view は名簿データのHTML一覧ページを描画する。
// データはAPIと同じ名前付き読み取り（QueryNamed）の結果をそのまま表形式で表示する。
package view

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/maica08/student-roster/internal/datastore"
	"github.com/maica08/student-roster/internal/roster"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Store はビューが必要とするデータアクセスインターフェース。
type Store interface {
	QueryNamed(ctx context.Context, query string, args ...any) ([]datastore.RowMap, error)
}

// Handler はHTML一覧ページのHTTPハンドラー。
type Handler struct {
	store     Store
	indexTpl  *template.Template
	listTpl   *template.Template
	resources []roster.Resource
}

// NewHandler はテンプレートを読み込んでHandlerを生成する。
func NewHandler(store Store, resources []roster.Resource) (*Handler, error) {
	indexTpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	listTpl, err := template.ParseFS(templatesFS, "templates/list.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		store:     store,
		indexTpl:  indexTpl,
		listTpl:   listTpl,
		resources: resources,
	}, nil
}

// indexData はトップページの描画データ。
type indexData struct {
	Entities []string
}

// Index はエンティティ一覧へのリンクを持つトップページを描画する。
// GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	names := make([]string, len(h.resources))
	for i, res := range h.resources {
		names[i] = res.Name
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.indexTpl.Execute(w, indexData{Entities: names}); err != nil {
		slog.Error("failed to render index template", slog.String("error", err.Error()))
	}
}

// listData は一覧ページの描画データ。
type listData struct {
	Title   string
	Columns []string
	Rows    []datastore.RowMap
}

// List は指定リソースの一覧ページを描画するハンドラーを返す。
// GET /{entity}
func (h *Handler) List(res roster.Resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := h.store.QueryNamed(r.Context(), res.ListQuery)
		if err != nil {
			slog.Error("failed to load view data",
				slog.String("entity", res.Name),
				slog.String("error", err.Error()),
			)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		data := listData{Title: res.Name, Rows: rows}
		if len(rows) > 0 {
			data.Columns = rows[0].Columns()
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := h.listTpl.Execute(w, data); err != nil {
			slog.Error("failed to render list template",
				slog.String("entity", res.Name),
				slog.String("error", err.Error()),
			)
		}
	}
}
