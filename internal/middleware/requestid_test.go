package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	mw := NewRequestIDMiddleware()

	var gotID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if gotID == "" {
		t.Error("request ID should be generated")
	}
	if w.Header().Get("X-Request-ID") != gotID {
		t.Errorf("X-Request-ID header = %q, want %q", w.Header().Get("X-Request-ID"), gotID)
	}
}

// クライアントが送ったX-Request-IDは引き継がれること
func TestRequestIDMiddleware_PropagatesClientID(t *testing.T) {
	mw := NewRequestIDMiddleware()

	var gotID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if gotID != "client-supplied-id" {
		t.Errorf("request ID = %q, want %q", gotID, "client-supplied-id")
	}
}
