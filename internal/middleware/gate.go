// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/maica08/student-roster/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

var (
	subjectContextKey = contextKey("subject")
	roleContextKey    = contextKey("role")
)

// ClaimsParser はアクセストークンの検証に必要なインターフェース。
// auth.Serviceの部分集合として定義する。
type ClaimsParser interface {
	Parse(tokenString string) (subject string, role model.Role, err error)
}

// RequireRole はロールゲートミドルウェアを返す。
// Bearerトークンの存在・署名・有効期限を検証し、subjectとロールを
// リクエストコンテキストに注入する。rolesが空の場合は認証のみを要求する。
// トークン欠落と不正/期限切れは401のメッセージで区別し、
// ロールが許可セットに含まれない場合は403を返す。
func RequireRole(parser ClaimsParser, roles ...model.Role) func(next http.Handler) http.Handler {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取り出す
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeGateError(w, http.StatusUnauthorized, map[string]string{
					"msg": "Missing Authorization Header",
				})
				return
			}

			// 2. 署名と有効期限を検証する
			subject, role, err := parser.Parse(token)
			if err != nil {
				writeGateError(w, http.StatusUnauthorized, map[string]string{
					"msg": "Token is invalid or expired",
				})
				return
			}

			// 3. ロールが許可セットに含まれるか確認する
			if len(allowed) > 0 && !allowed[role] {
				writeGateError(w, http.StatusForbidden, map[string]string{
					"error": model.NewForbiddenError().Message,
				})
				return
			}

			// 4. subjectとロールをコンテキストに注入する
			ctx := context.WithValue(r.Context(), subjectContextKey, subject)
			ctx = context.WithValue(ctx, roleContextKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeGateError はゲートの拒否レスポンスを書き込む。
func writeGateError(w http.ResponseWriter, statusCode int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// SubjectFromContext はリクエストコンテキストから認証済みsubjectを取得する。
// ロールゲートを通過したリクエストでのみ有効。
func SubjectFromContext(ctx context.Context) (string, error) {
	subject, ok := ctx.Value(subjectContextKey).(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("subject not found in context")
	}
	return subject, nil
}

// RoleFromContext はリクエストコンテキストから認証済みロールを取得する。
func RoleFromContext(ctx context.Context) (model.Role, error) {
	role, ok := ctx.Value(roleContextKey).(model.Role)
	if !ok || role == "" {
		return "", fmt.Errorf("role not found in context")
	}
	return role, nil
}

// ContextWithClaims はコンテキストにsubjectとロールを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithClaims(ctx context.Context, subject string, role model.Role) context.Context {
	ctx = context.WithValue(ctx, subjectContextKey, subject)
	return context.WithValue(ctx, roleContextKey, role)
}
