package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ragops/assistant-gateway/internal/api"
	"github.com/ragops/assistant-gateway/internal/api/handlers"
	"github.com/ragops/assistant-gateway/internal/config"
	"github.com/ragops/assistant-gateway/internal/database"
	"github.com/ragops/assistant-gateway/internal/feedback"
	"github.com/ragops/assistant-gateway/internal/health"
	"github.com/ragops/assistant-gateway/internal/middleware"
	"github.com/ragops/assistant-gateway/internal/rag"
	"github.com/ragops/assistant-gateway/internal/repository"
	"github.com/ragops/assistant-gateway/internal/session"
	"github.com/ragops/assistant-gateway/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting assistant gateway...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	for _, name := range cfg.InsecureDefaults() {
		logger.WithField("variable", name).Warn("Running with a publicly known default secret; set it before exposing this service")
	}

	// Database. Connectivity is probed once here for diagnostics only; a
	// down database never blocks startup.
	dbManager, err := database.NewManager(cfg.Database.URL, os.Getenv("LOG_LEVEL"), logger)
	if err != nil {
		logger.WithError(err).Fatal("Invalid database configuration")
	}
	defer dbManager.Close()

	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 5*time.Second)
	if err := dbManager.Ping(probeCtx); err != nil {
		logger.WithError(err).Error("Failed to connect to the database. Please check your database configuration.")
	} else {
		logger.Info("Successfully connected to the database.")
		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Warn("Database migration failed")
		}
	}
	cancelProbe()

	// Session store: Redis when configured, in-memory otherwise
	var store session.Store
	if cfg.Redis.URL != "" {
		redisStore, err := session.NewRedisStore(cfg.Redis.URL, cfg.Session.TTL, logger)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to Redis, falling back to in-memory sessions")
			store = session.NewMemoryStore(cfg.Session.TTL)
		} else {
			defer redisStore.Close()
			store = redisStore
		}
	} else {
		store = session.NewMemoryStore(cfg.Session.TTL)
	}

	ragClient := rag.NewClient(cfg.RAG.BaseURL, cfg.RAG.APIKey, cfg.RAG.Timeout, logger)
	repoManager := repository.NewManager(dbManager.DB)
	recorder := feedback.NewStoreRecorder(repoManager.Conversations, repoManager.Feedback, logger)

	gateway := handlers.NewGatewayHandler(ragClient, recorder, repoManager.Conversations, logger)
	checker := health.NewChecker(dbManager, store, ragClient, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute)
	}

	router := api.NewRouter(api.RouterOptions{
		Gateway:     gateway,
		Health:      checker,
		Session:     session.Middleware(store, session.NewCodec(cfg.Session.SecretKey), cfg.Session.TTL, logger),
		Auth:        middleware.APIKeyAuth(cfg.Auth.APIKey, cfg.Auth.RequireAPIKey, logger),
		RateLimiter: limiter,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Gateway listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
