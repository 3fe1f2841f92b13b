// File: internal/middleware/constants.go
package middleware

// Context keys for middleware communication
type contextKey string

const (
	UserKey contextKey = "user"
)

// Cookie names shared by the session middleware and the auth handlers.
const (
	// SessionCookieName holds the signed session token. HTTP-only.
	SessionCookieName = "user_id"
	// LoginIDCookieName holds the plain login id for scripts to read.
	LoginIDCookieName = "user_login_id"
)

// Logger is the logging surface the middleware needs.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
