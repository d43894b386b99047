package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stock-analyzer/backend/internal/api/middleware"
)

func TestIdentityMiddleware(t *testing.T) {
	newHandler := func(gotUserID *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*gotUserID = middleware.UserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("resolves identity from the header", func(t *testing.T) {
		var gotUserID string
		mw := middleware.NewIdentity("fallback")(newHandler(&gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.HeaderUserID, "alice")

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if gotUserID != "alice" {
			t.Errorf("Expected user ID alice, got %q", gotUserID)
		}
	})

	t.Run("falls back when the header is absent", func(t *testing.T) {
		var gotUserID string
		mw := middleware.NewIdentity("fallback")(newHandler(&gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if gotUserID != "fallback" {
			t.Errorf("Expected fallback user ID, got %q", gotUserID)
		}
	})

	t.Run("falls back when the header is blank", func(t *testing.T) {
		var gotUserID string
		mw := middleware.NewIdentity("fallback")(newHandler(&gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.HeaderUserID, "   ")

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if gotUserID != "fallback" {
			t.Errorf("Expected fallback user ID, got %q", gotUserID)
		}
	})

	t.Run("trims surrounding whitespace from the header", func(t *testing.T) {
		var gotUserID string
		mw := middleware.NewIdentity("fallback")(newHandler(&gotUserID))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(middleware.HeaderUserID, "  bob  ")

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if gotUserID != "bob" {
			t.Errorf("Expected trimmed user ID bob, got %q", gotUserID)
		}
	})
}
