package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/maica08/student-roster/internal/model"
)

// Credential は静的認証テーブルの1エントリを表す。
// パスワードはbcryptハッシュとしてのみ保持する。
type Credential struct {
	PasswordHash []byte
	Role         model.Role
}

// Credentials はユーザー名から認証情報への静的マッピング。
// プロセス起動時に1回構築し、以後イミュータブルとして扱う。
type Credentials map[string]Credential

// PlainCredential は平文パスワードとロールの組。Credentials構築時のみ使用する。
type PlainCredential struct {
	Password string
	Role     model.Role
}

// NewCredentials は平文認証テーブルからbcryptハッシュ済みのCredentialsを構築する。
func NewCredentials(plain map[string]PlainCredential) (Credentials, error) {
	creds := make(Credentials, len(plain))
	for username, pc := range plain {
		if !model.ValidRole(pc.Role) {
			return nil, fmt.Errorf("unknown role %q for user %q", pc.Role, username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(pc.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for user %q: %w", username, err)
		}
		creds[username] = Credential{PasswordHash: hash, Role: pc.Role}
	}
	return creds, nil
}

// DefaultCredentials は組み込みの認証テーブルを構築する。
// admin/teacher/studentの3ロールそれぞれに1ユーザーを持つ。
func DefaultCredentials() (Credentials, error) {
	return NewCredentials(map[string]PlainCredential{
		"admin":   {Password: "roster_admin", Role: model.RoleAdmin},
		"teacher": {Password: "roster_teacher", Role: model.RoleTeacher},
		"student": {Password: "roster_student", Role: model.RoleStudent},
	})
}

// Verify はユーザー名とパスワードを照合し、一致すればロールを返す。
// ユーザー不在とパスワード不一致は区別しない。照合は大文字小文字を区別する完全一致。
func (c Credentials) Verify(username, password string) (model.Role, bool) {
	cred, ok := c[username]
	if !ok {
		return "", false
	}
	if err := bcrypt.CompareHashAndPassword(cred.PasswordHash, []byte(password)); err != nil {
		return "", false
	}
	return cred.Role, true
}
