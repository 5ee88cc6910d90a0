package handler

import (
	"encoding/json"
	"net/http"

	"github.com/maica08/student-roster/internal/model"
)

// parseBody はリクエストボディをJSONオブジェクトとして解析し、
// 必須フィールドの存在を検証順に確認する。
// 値の型・書式・範囲は検証しない。任意フィールドは欠落のまま通過させる。
// 最初に欠落した必須フィールドをメッセージに含むBadRequestを返す。
func parseBody(r *http.Request, required []string) (map[string]any, *model.APIError) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil || fields == nil {
		return nil, model.NewInvalidJSONError()
	}

	for _, field := range required {
		if _, ok := fields[field]; !ok {
			return nil, model.NewMissingFieldError(field)
		}
	}

	return fields, nil
}
