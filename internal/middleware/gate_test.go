package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maica08/student-roster/internal/model"
)

// mockClaimsParser はClaimsParserのモック実装。
type mockClaimsParser struct {
	parseFn func(tokenString string) (string, model.Role, error)
}

func (m *mockClaimsParser) Parse(tokenString string) (string, model.Role, error) {
	if m.parseFn != nil {
		return m.parseFn(tokenString)
	}
	return "", "", errors.New("no parse function configured")
}

func okHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole_MissingHeader_Returns401(t *testing.T) {
	parser := &mockClaimsParser{}
	gate := RequireRole(parser, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	w := httptest.NewRecorder()

	gate(okHandler(t)).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["msg"] != "Missing Authorization Header" {
		t.Errorf("msg = %q, want %q", body["msg"], "Missing Authorization Header")
	}
}

func TestRequireRole_InvalidToken_Returns401(t *testing.T) {
	parser := &mockClaimsParser{
		parseFn: func(tokenString string) (string, model.Role, error) {
			return "", "", errors.New("token is expired")
		},
	}
	gate := RequireRole(parser, model.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()

	gate(okHandler(t)).ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["msg"] != "Token is invalid or expired" {
		t.Errorf("msg = %q, want %q", body["msg"], "Token is invalid or expired")
	}
}

func TestRequireRole_InsufficientRole_Returns403(t *testing.T) {
	parser := &mockClaimsParser{
		parseFn: func(tokenString string) (string, model.Role, error) {
			return "student", model.RoleStudent, nil
		},
	}
	gate := RequireRole(parser, model.RoleAdmin, model.RoleTeacher)

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	w := httptest.NewRecorder()

	gate(okHandler(t)).ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "Access forbidden: Insufficient role" {
		t.Errorf("error = %q, want %q", body["error"], "Access forbidden: Insufficient role")
	}
}

func TestRequireRole_AllowedRole_InjectsClaims(t *testing.T) {
	parser := &mockClaimsParser{
		parseFn: func(tokenString string) (string, model.Role, error) {
			if tokenString != "admin-token" {
				t.Errorf("tokenString = %q, want %q", tokenString, "admin-token")
			}
			return "admin", model.RoleAdmin, nil
		},
	}
	gate := RequireRole(parser, model.RoleAdmin)

	var gotSubject string
	var gotRole model.Role
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = SubjectFromContext(r.Context())
		gotRole, _ = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	w := httptest.NewRecorder()

	gate(next).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotSubject != "admin" {
		t.Errorf("subject = %q, want %q", gotSubject, "admin")
	}
	if gotRole != model.RoleAdmin {
		t.Errorf("role = %q, want %q", gotRole, model.RoleAdmin)
	}
}

// rolesが空のゲートは認証のみを要求すること
func TestRequireRole_NoRoles_AuthenticationOnly(t *testing.T) {
	parser := &mockClaimsParser{
		parseFn: func(tokenString string) (string, model.Role, error) {
			return "student", model.RoleStudent, nil
		},
	}
	gate := RequireRole(parser)

	req := httptest.NewRequest(http.MethodGet, "/auth/protected", nil)
	req.Header.Set("Authorization", "Bearer student-token")
	w := httptest.NewRecorder()

	gate(okHandler(t)).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestSubjectFromContext_Unset_ReturnsError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, err := SubjectFromContext(req.Context()); err == nil {
		t.Error("expected error for missing subject")
	}
	if _, err := RoleFromContext(req.Context()); err == nil {
		t.Error("expected error for missing role")
	}
}
