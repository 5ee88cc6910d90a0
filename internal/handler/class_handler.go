package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/maica08/student-roster/internal/datastore"
	"github.com/maica08/student-roster/internal/model"
	"github.com/maica08/student-roster/internal/roster"
)

// ClassHandler はクラス詳細取得のHTTPハンドラー。
// 一覧・変更系は汎用のResourceHandlerが担い、ここは単体取得のみを扱う。
type ClassHandler struct {
	store Store
}

// NewClassHandler はClassHandlerを生成する。
func NewClassHandler(store Store) *ClassHandler {
	return &ClassHandler{store: store}
}

// classDetailResponse はクラス詳細のAPIレスポンス。
type classDetailResponse struct {
	Class   datastore.RowMap `json:"class"`
	Summary classSummary     `json:"summary"`
}

// classSummary は名簿上の割り当て集計。
type classSummary struct {
	RosterCount  int64 `json:"roster_count"`
	StudentCount int64 `json:"student_count"`
	TeacherCount int64 `json:"teacher_count"`
}

// Get はクラス1件とその名簿集計を取得する。
// GET /api/classes/{id}
// 主クエリが0行の場合は404を返す。
func (h *ClassHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rows, err := h.store.QueryNamed(r.Context(), roster.ClassByIDQuery, id)
	if err != nil {
		handleError(w, err)
		return
	}
	if len(rows) == 0 {
		writeAPIError(w, model.NewNotFoundError())
		return
	}

	summaryRows, err := h.store.QueryRows(r.Context(), roster.ClassSummaryQuery, id)
	if err != nil {
		handleError(w, err)
		return
	}

	var summary classSummary
	if len(summaryRows) > 0 && len(summaryRows[0]) == 3 {
		summary.RosterCount = toInt64(summaryRows[0][0])
		summary.StudentCount = toInt64(summaryRows[0][1])
		summary.TeacherCount = toInt64(summaryRows[0][2])
	}

	writeJSON(w, http.StatusOK, classDetailResponse{
		Class:   rows[0],
		Summary: summary,
	})
}

// toInt64 はドライバが返す数値表現をint64に変換する。
func toInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	}
	return 0
}
