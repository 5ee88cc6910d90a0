// Package auth はアクセストークンの発行・検証と認証サービスを提供する。
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/maica08/student-roster/internal/model"
)

// Claims はアクセストークンに埋め込むクレームを表す。
// subjectにユーザー名、roleカスタムクレームに権限区分を持つ。
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// NewAccessToken はHS256署名付きアクセストークンを発行する。
// subjectにユーザー名を、有効期限に現在時刻+ttlを設定する。
func NewAccessToken(secret string, ttl time.Duration, username string, role model.Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken はトークン文字列を検証してクレームを返す。
// 署名不正・期限切れ・クレーム不正はすべてエラーとなる。
func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
