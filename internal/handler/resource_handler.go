package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maica08/student-roster/internal/model"
	"github.com/maica08/student-roster/internal/roster"
)

// writeResult は書き込み成功レスポンスのボディ。
type writeResult struct {
	Message      string `json:"message"`
	RowsAffected int64  `json:"rows_affected"`
}

// ResourceHandler は1エンティティのCRUDを提供するHTTPハンドラー。
// 全エンティティが同一のリクエスト・レスポンス契約に従う。
type ResourceHandler struct {
	store Store
	res   roster.Resource

	// ステートメントはリソース定義から1回だけ構築する
	insertStmt string
	updateStmt string
	deleteStmt string
}

// NewResourceHandler はResourceHandlerを生成する。
func NewResourceHandler(store Store, res roster.Resource) *ResourceHandler {
	return &ResourceHandler{
		store:      store,
		res:        res,
		insertStmt: res.InsertStmt(),
		updateStmt: res.UpdateStmt(),
		deleteStmt: res.DeleteStmt(),
	}
}

// List はエンティティの一覧を取得する。
// GET /api/{entity}
// 結果が0行の場合は404を返す。
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.QueryNamed(r.Context(), h.res.ListQuery)
	if err != nil {
		handleError(w, err)
		return
	}

	if len(rows) == 0 {
		writeAPIError(w, model.NewNotFoundError())
		return
	}

	writeJSON(w, http.StatusOK, rows)
}

// Create は必須フィールドを検証して1行を挿入する。
// POST /api/{entity}
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, apiErr := parseBody(r, h.res.Required)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	rowsAffected, err := h.store.Exec(r.Context(), h.insertStmt, h.bindArgs(fields)...)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, writeResult{
		Message:      "data created successfully",
		RowsAffected: rowsAffected,
	})
}

// Update はidに一致する行を更新する。
// PUT /api/{entity}/{id}
// 一致する行が無い場合もrows_affected: 0の成功として扱う。
func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	fields, apiErr := parseBody(r, h.res.Required)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	args := append(h.bindArgs(fields), chi.URLParam(r, "id"))
	rowsAffected, err := h.store.Exec(r.Context(), h.updateStmt, args...)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, writeResult{
		Message:      "data updated successfully",
		RowsAffected: rowsAffected,
	})
}

// Delete はidに一致する行を物理削除する。
// DELETE /api/{entity}/{id}
// 既に削除済みのidに対する再実行もrows_affected: 0の成功として扱う（冪等）。
func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	rowsAffected, err := h.store.Exec(r.Context(), h.deleteStmt, chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, writeResult{
		Message:      "data deleted successfully",
		RowsAffected: rowsAffected,
	})
}

// bindArgs はフィールドマッピングをカラム宣言順の引数スライスに変換する。
// 欠落した任意フィールドはNULLとしてバインドする。
func (h *ResourceHandler) bindArgs(fields map[string]any) []any {
	args := make([]any, len(h.res.Columns))
	for i, col := range h.res.Columns {
		if v, ok := fields[col]; ok {
			args[i] = v
		}
	}
	return args
}
