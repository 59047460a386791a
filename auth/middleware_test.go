package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("test_signing_secret_for_unit_tests", time.Minute)

	var seenUser string
	protected := Middleware(issuer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = r.Context().Value(UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/links", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/links", nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		protected.ServeHTTP(rec, r)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		token, err := issuer.Generate("admin", []string{"admin"})
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/links", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		protected.ServeHTTP(rec, r)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "admin", seenUser)
	})
}
