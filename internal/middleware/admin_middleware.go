// File: internal/middleware/admin_middleware.go
package middleware

import (
	"net/http"
)

// RequireAdmin lets only administrators through. It must run after
// SessionMiddleware.
func RequireAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "로그인이 필요합니다.")
				return
			}
			if !user.IsAdmin {
				logger.Warn("non-admin attempted admin route", "user_id", user.UserID, "path", r.URL.Path)
				writeJSONError(w, http.StatusForbidden, "관리자 권한이 필요합니다.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
