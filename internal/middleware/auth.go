package middleware

import (
	"net/http"
	"strings"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/auth"
)

// AdminAuth creates a middleware that validates the admin session token
func (m *Middleware) AdminAuth(sessions *auth.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			// 1. Try Authorization header first
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					tokenString = parts[1]
				}
			}

			// 2. Fall back to cookie
			if tokenString == "" {
				if cookie, err := r.Cookie("aeon_admin_session"); err == nil && cookie.Value != "" {
					tokenString = cookie.Value
				}
			}

			if tokenString == "" {
				http.Error(w, `{"error":{"code":"unauthorized","message":"Authentication required"}}`, http.StatusUnauthorized)
				return
			}

			if err := sessions.Validate(tokenString); err != nil {
				m.log.Debug().Err(err).Msg("session validation failed")
				http.Error(w, `{"error":{"code":"session_expired","message":"The session is invalid or expired"}}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
