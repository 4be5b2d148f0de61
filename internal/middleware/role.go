package middleware

import (
	"net/http"

	"github.com/bookquest/bookquest/internal/auth"
)

// RequireCreator returns middleware that only lets creator accounts
// through. Must be applied after Auth middleware.
func RequireCreator() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := auth.AuthFromContext(r.Context())
			if authCtx == nil {
				writeRoleError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "authentication required")
				return
			}

			if !authCtx.Role.CanManageBooks() {
				writeRoleError(w, http.StatusForbidden, "FORBIDDEN", "creator role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeRoleError writes a role-related error response.
func writeRoleError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + message + `","code":"` + code + `"}`))
}
