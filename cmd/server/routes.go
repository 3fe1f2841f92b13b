// File: cmd/server/routes.go
package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/iyunix/go-newsbot/internal/handlers"
	"github.com/iyunix/go-newsbot/internal/middleware"
	"github.com/iyunix/go-newsbot/internal/ratelimit"
	"github.com/iyunix/go-newsbot/internal/services"
)

type routerDeps struct {
	allowedOrigins []string
	logger         services.Logger
	limiter        *ratelimit.MemoryRateLimiter
	sessions       middleware.SessionResolver

	auth     *handlers.AuthHandler
	news     *handlers.NewsHandler
	chat     *handlers.ChatHandler
	searches *handlers.SearchHandler
	email    *handlers.EmailHandler
	admin    *handlers.AdminHandler
	logs     *handlers.LogHandler
}

func corsMiddleware(allowed []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (lo.Contains(allowed, "*") || lo.Contains(allowed, origin)) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Access-Control-Max-Age", "86400")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// newRouter wires every route. CORS wraps the router itself so preflight
// requests are answered even when no route matches their method.
func newRouter(d routerDeps) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.RecoverPanic(d.logger))
	r.Use(middleware.LoggingMiddleware(d.logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.SessionMiddleware(d.sessions))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// --- Auth ---
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/me", d.auth.Me).Methods("GET")
	authRoutes.HandleFunc("/logout", d.auth.Logout).Methods("POST")
	authRoutes.HandleFunc("/init-admin", d.auth.InitAdmin).Methods("POST")

	guarded := func(name string, h http.HandlerFunc) http.Handler {
		return middleware.RateLimitMiddleware(d.limiter, name, d.logger)(
			middleware.AuthSuccessMiddleware(d.limiter, name)(h))
	}
	authRoutes.Handle("/login", guarded("login", d.auth.Login)).Methods("POST")
	authRoutes.Handle("/register", guarded("register", d.auth.Register)).Methods("POST")

	// --- News, AI and persistence ---
	api.HandleFunc("/news", d.news.Search).Methods("GET")
	api.HandleFunc("/summarize", d.chat.Summarize).Methods("POST")
	api.HandleFunc("/chat", d.chat.Chat).Methods("POST")
	api.HandleFunc("/searches", d.searches.List).Methods("GET")
	api.HandleFunc("/save-to-db", d.searches.Save).Methods("POST")
	api.HandleFunc("/send-email", d.email.Send).Methods("POST")
	api.HandleFunc("/log", d.logs.LogFrontendEvent).Methods("POST")

	// --- Admin ---
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.RequireAdmin(d.logger))
	adminRoutes.HandleFunc("/users", d.admin.GetAllUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/users/export", d.admin.ExportUsersCSVHandler).Methods("GET")
	adminRoutes.HandleFunc("/searches/export", d.admin.ExportSearchesCSVHandler).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"요청한 경로를 찾을 수 없습니다."}`))
	})

	return corsMiddleware(d.allowedOrigins)(r)
}
