package auth

import (
	"time"

	"github.com/maica08/student-roster/internal/model"
)

// Service は認証サービス。静的認証テーブルの照合とトークン発行・検証を担う。
type Service struct {
	creds  Credentials
	secret string
	ttl    time.Duration
}

// ServiceConfig はServiceの設定。
type ServiceConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// NewService はServiceを生成する。
func NewService(creds Credentials, cfg ServiceConfig) *Service {
	return &Service{
		creds:  creds,
		secret: cfg.Secret,
		ttl:    cfg.TokenTTL,
	}
}

// Login はユーザー名とパスワードを検証し、アクセストークンを発行する。
// いずれかが空の場合はBadRequest、照合失敗はUnauthenticatedを返す。
func (s *Service) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", model.NewMissingCredentialsError()
	}

	role, ok := s.creds.Verify(username, password)
	if !ok {
		return "", model.NewInvalidCredentialsError()
	}

	return NewAccessToken(s.secret, s.ttl, username, role)
}

// Parse はトークン文字列を検証し、subjectとロールを返す。
func (s *Service) Parse(tokenString string) (subject string, role model.Role, err error) {
	claims, err := ParseToken(s.secret, tokenString)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Role, nil
}
