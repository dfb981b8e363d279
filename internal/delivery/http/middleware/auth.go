package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"groupinvites/internal/delivery/http/helpers"
)

// RequireToken returns a wrapper that compares the request's Bearer token
// against the configured secret in constant time. An empty secret disables the
// check. On mismatch it responds with 401 and does not call next.
func RequireToken(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if auth == "" {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid token")
				return
			}
			next(w, r)
		}
	}
}
