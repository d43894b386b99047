package middleware_test

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stock-analyzer/backend/internal/api/middleware"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(orig) })
	return &buf
}

func TestLoggerMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	t.Run("logs method, path and status", func(t *testing.T) {
		buf := captureLog(t)
		mw := middleware.Logger(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/stock/quote/NOPE", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		line := buf.String()
		if !strings.Contains(line, "GET /api/stock/quote/NOPE 404") {
			t.Errorf("Expected method, path and status in log line, got %q", line)
		}
	})

	t.Run("includes the request ID when present", func(t *testing.T) {
		buf := captureLog(t)
		mw := middleware.Logger(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/stock/search", nil)
		req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "req-42"))
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if !strings.Contains(buf.String(), "[req-42]") {
			t.Errorf("Expected request ID in log line, got %q", buf.String())
		}
	})

	t.Run("logs a placeholder without a request ID", func(t *testing.T) {
		buf := captureLog(t)
		mw := middleware.Logger(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/stock/search", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if !strings.Contains(buf.String(), "[-]") {
			t.Errorf("Expected placeholder request ID in log line, got %q", buf.String())
		}
	})

	t.Run("strips newlines from user-supplied path segments", func(t *testing.T) {
		buf := captureLog(t)
		mw := middleware.Logger(handler)

		req := httptest.NewRequest(http.MethodGet, "/api/stock/search", nil)
		req.URL.Path = "/api/stock/quote/AAPL\nfake-entry"
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if strings.Count(buf.String(), "\n") > 1 {
			t.Errorf("Expected a single log line, got %q", buf.String())
		}
	})
}
