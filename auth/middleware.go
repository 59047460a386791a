package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RolesKey  contextKey = "roles"
)

// Middleware validates the Bearer token on incoming admin API calls and
// injects the caller's identity into the request context. The login
// route itself is mounted outside the middleware.
func Middleware(issuer TokenIssuer, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			http.Error(w, "authorization token is missing", http.StatusUnauthorized)
			return
		}

		// Expecting the standard "Bearer <token>" format
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := issuer.Validate(tokenStr)
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, RolesKey, claims.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
