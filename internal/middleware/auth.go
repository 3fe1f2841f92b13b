// File: internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/iyunix/go-newsbot/internal/domain"
)

// SessionResolver maps a session token to its user, or nil.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) *domain.User
}

// SessionMiddleware attaches the logged-in user, if any, to the request
// context. It never rejects a request.
func SessionMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			if user := resolver.CurrentUser(r.Context(), cookie.Value); user != nil {
				r = r.WithContext(context.WithValue(r.Context(), UserKey, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext returns the user attached by SessionMiddleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok && user != nil
}
