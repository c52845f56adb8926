// @title Click to Rwanda Backend API
// @version 1.0
// @description Travel-planning backend for Rwanda itineraries, AI trip assistance, and traveler support.

// @contact.name API Support
// @contact.email support@clicktorwanda.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/clicktorwanda/backend/internal/config"
	"github.com/clicktorwanda/backend/internal/handlers"
	"github.com/clicktorwanda/backend/internal/llm"
	"github.com/clicktorwanda/backend/internal/middleware"
	"github.com/clicktorwanda/backend/internal/realtime"
	"github.com/clicktorwanda/backend/internal/reminder"
	"github.com/clicktorwanda/backend/internal/routes"
	"github.com/clicktorwanda/backend/internal/utils"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("loading configuration")
	}

	// Database pool, simple protocol for PgBouncer compatibility
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		logger.Fatal().Err(err).Msg("parsing database dsn")
	}
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "clicktorwanda-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = "30000"
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to database")
	}
	defer pool.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Msg("pinging database")
		}
	}
	logger.Info().Str("host", cfg.Database.Host).Msg("database connected")

	// Redis backs the per-user rate limiter
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	limiter := middleware.NewRateLimiter(rdb)

	emailService := utils.NewEmailService(&cfg.Email)
	llmClient := llm.NewClient(&cfg.LLM, logger)
	hub := realtime.NewHub()

	h := routes.Handlers{
		Health:       handlers.NewHealthHandler(pool),
		Auth:         handlers.NewAuthHandler(pool, cfg),
		GoogleAuth:   handlers.NewGoogleAuthHandler(pool, cfg),
		Catalog:      handlers.NewCatalogHandler(pool),
		Itinerary:    handlers.NewItineraryHandler(pool, cfg, logger),
		Subscription: handlers.NewSubscriptionHandler(pool, logger),
		SOS:          handlers.NewSOSHandler(pool, emailService, cfg, logger),
		Chat:         handlers.NewChatHandler(llmClient, cfg, logger),
		Extract:      handlers.NewExtractHandler(llmClient, logger),
		Messages:     handlers.NewMessagesHandler(pool, hub, logger),
		Staff:        handlers.NewStaffHandler(pool, logger),
		Email:        handlers.NewEmailHandler(pool, emailService, logger),
	}
	routes.SetupRoutes(h, limiter, cfg)

	// Background reminders stop when the root context is cancelled
	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	if cfg.IsEmailConfigured() {
		scheduler := reminder.NewScheduler(pool, emailService, logger)
		go scheduler.Run(rootCtx)
	} else {
		logger.Warn().Msg("email not configured, daily reminders disabled")
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(http.DefaultServeMux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	stopBackground()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}
	logger.Info().Msg("server stopped")
}
