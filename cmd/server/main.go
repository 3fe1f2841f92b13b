// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iyunix/go-newsbot/internal/config"
	"github.com/iyunix/go-newsbot/internal/database"
	"github.com/iyunix/go-newsbot/internal/handlers"
	"github.com/iyunix/go-newsbot/internal/ratelimit"
	searchrepo "github.com/iyunix/go-newsbot/internal/repository/search"
	"github.com/iyunix/go-newsbot/internal/repository/user"
	"github.com/iyunix/go-newsbot/internal/services"
	"github.com/iyunix/go-newsbot/internal/services/admin_services"
	"github.com/iyunix/go-newsbot/internal/services/ai"
	"github.com/iyunix/go-newsbot/internal/services/article"
	"github.com/iyunix/go-newsbot/internal/services/chat"
	"github.com/iyunix/go-newsbot/internal/services/email"
	"github.com/iyunix/go-newsbot/internal/services/feed"
	"github.com/iyunix/go-newsbot/internal/services/user_services"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("go_newsbot")

	// --- Datastore ---
	// Users live behind the service role key, searches behind the anon key.
	dbProvider := database.NewProvider(cfg.DatabaseURL, cfg.DatabaseAnonKey, cfg.DatabaseServiceKey)
	defer dbProvider.Close()

	if db, err := dbProvider.Service().DB(context.Background()); err != nil {
		logger.Warn("datastore not configured; persistence endpoints will fail", "error", err)
	} else if err := database.Migrate(db); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(dbProvider.Service())
	searchRepo := searchrepo.NewGormSearchRepository(dbProvider.Anon())

	// --- Services ---
	aiConfig := ai.DefaultConfig()
	aiConfig.Provider = cfg.AIProvider
	aiConfig.APIKey = cfg.AIAPIKey
	aiConfig.BaseURL = cfg.AIBaseURL
	aiConfig.Model = cfg.AIModel
	aiProvider := ai.NewProvider(aiConfig)

	chatService := chat.NewService(aiProvider, chat.DefaultConfig(), logger)
	newsFetcher := feed.NewFetcher(cfg.FeedBaseURL, nil, logger)

	var extractor services.ContentExtractor
	if cfg.FetchArticleContent {
		extractor = article.NewReadabilityExtractor(nil, logger)
	}
	searchService := services.NewSearchService(searchRepo, extractor, logger)

	emailConfig := email.DefaultConfig()
	emailConfig.APIKey = cfg.ResendAPIKey
	emailConfig.From = cfg.EmailFrom
	emailConfig.To = cfg.EmailTo
	emailService := email.NewService(emailConfig, nil, logger)

	authService := user_services.NewAuthService(userRepo, cfg.JWTSecretKey, logger)
	adminService := admin_services.NewAdminService(userRepo, searchRepo)

	authLimiter := ratelimit.NewMemoryRateLimiter(ratelimit.DefaultAuthConfig())
	defer authLimiter.Close()

	r := newRouter(routerDeps{
		allowedOrigins: cfg.AllowedOrigins,
		logger:         logger,
		limiter:        authLimiter,
		sessions:       authService,
		auth:           handlers.NewAuthHandler(authService, cfg.IsProduction(), logger),
		news:           handlers.NewNewsHandler(newsFetcher, logger),
		chat:           handlers.NewChatHandler(chatService, logger),
		searches:       handlers.NewSearchHandler(searchService, logger),
		email:          handlers.NewEmailHandler(emailService, logger),
		admin:          handlers.NewAdminHandler(adminService),
		logs:           handlers.NewLogHandler(logger),
	})

	// --- Server Configuration ---
	port := ":8080"
	if cfg.ServerPort != "" {
		port = ":" + cfg.ServerPort
	}
	srv := &http.Server{
		Addr:              port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	logger.Info("server starting", "port", port, "ai_provider", aiConfig.Provider, "ai_model", aiConfig.Model)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		return
	}
	logger.Info("server stopped")
}
