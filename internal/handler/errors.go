package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maica08/student-roster/internal/model"
)

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIError はAPIErrorをステータスコードとレスポンス形式に変換して書き込む。
// 404は{"message": ...}、それ以外は{"error": ..., "message": ...}の形式をとる。
func writeAPIError(w http.ResponseWriter, apiErr *model.APIError) {
	statusCode := mapAPIErrorToHTTPStatus(apiErr)

	if apiErr.Code == model.ErrCodeNotFound {
		writeJSON(w, statusCode, map[string]string{"message": apiErr.Message})
		return
	}

	writeJSON(w, statusCode, map[string]string{
		"error":   http.StatusText(statusCode),
		"message": apiErr.Message,
	})
}

// handleError はサービス層・データ層から返されたエラーをHTTPレスポンスに変換する。
// APIError以外のエラーは内部サーバーエラーとして扱い、詳細はログのみに記録する。
func handleError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == model.ErrCodeCommitFailed {
			slog.Error("write statement failed", slog.String("error", apiErr.Message))
		}
		writeAPIError(w, apiErr)
		return
	}

	slog.Error("internal server error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "Internal Server Error",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorコードからHTTPステータスコードにマッピングする。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeBadRequest:
		return http.StatusBadRequest
	case model.ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeCommitFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
