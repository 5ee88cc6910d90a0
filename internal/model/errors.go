// Package model はドメインモデルとエラー分類を定義する。
package model

import "fmt"

// APIError はAPI全体で共有するエラー分類を表す。
// ハンドラー層で一元的にHTTPステータスとレスポンス形式へ変換される。
type APIError struct {
	Code    string // エラーコード
	Message string // クライアント向けメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthenticated = "UNAUTHENTICATED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeCommitFailed    = "COMMIT_FAILED"
)

// NewMissingFieldError は必須フィールド欠落エラーを生成する。
// メッセージには最初に欠落したフィールド名を含める。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: fmt.Sprintf("'%s' is required", field),
	}
}

// NewInvalidJSONError はリクエストボディがJSONとして解析できない場合のエラーを生成する。
func NewInvalidJSONError() *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: "Request must be JSON",
	}
}

// NewMissingCredentialsError はログインボディにusernameまたはpasswordが無い場合のエラーを生成する。
func NewMissingCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: "Missing username or password",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// ユーザー名不在とパスワード不一致は区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:    ErrCodeUnauthenticated,
		Message: "Invalid credentials",
	}
}

// NewForbiddenError はロール不足エラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: "Access forbidden: Insufficient role",
	}
}

// NewNotFoundError は読み取り結果が0行だった場合のエラーを生成する。
func NewNotFoundError() *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: "data not found",
	}
}

// NewCommitFailedError は書き込みステートメントの失敗エラーを生成する。
// トランザクションはロールバック済みで、ストアのエラーメッセージを含める。
func NewCommitFailedError(err error) *APIError {
	return &APIError{
		Code:    ErrCodeCommitFailed,
		Message: fmt.Sprintf("commit failed: %v", err),
	}
}
