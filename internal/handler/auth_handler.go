package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/maica08/student-roster/internal/middleware"
	"github.com/maica08/student-roster/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login はユーザー名とパスワードを検証し、アクセストークンを発行する。
	Login(username, password string) (string, error)
}

// AuthHandler は認証のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// loginRequest はログインリクエストのボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login は認証情報を検証してアクセストークンを返す。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthError(w, model.NewInvalidJSONError())
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			writeAuthError(w, apiErr)
			return
		}
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

// Protected は有効なトークンを持つリクエストに挨拶を返す。
// GET /auth/protected
// ロールゲート（認証のみ）の背後に配置される。
func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	subject, err := middleware.SubjectFromContext(r.Context())
	if err != nil {
		writeAuthError(w, model.NewInvalidCredentialsError())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Welcome, %s!", subject),
	})
}

// writeAuthError は認証エンドポイントのエラーレスポンスを書き込む。
// 認証系は{"error": ...}のみの形式をとる。
func writeAuthError(w http.ResponseWriter, apiErr *model.APIError) {
	writeJSON(w, mapAPIErrorToHTTPStatus(apiErr), map[string]string{
		"error": apiErr.Message,
	})
}
