package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HeaderUserID is the header carrying the caller's internal user ID.
const HeaderUserID = "X-User-Id"

type contextKey string

const userIDKey contextKey = "userID"

// NewIdentity returns a middleware that resolves the caller identity from
// the X-User-Id header and stores it on the request context. When the
// header is absent or blank, fallbackUserID is used instead.
//
// The fallback exists for parity with the original single-user frontend;
// a production deployment should require the header and reject requests
// without it.
func NewIdentity(fallbackUserID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
			if userID == "" {
				userID = fallbackUserID
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying the given caller identity.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the caller identity resolved by NewIdentity,
// or the empty string when the middleware did not run.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
