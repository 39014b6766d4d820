package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbahwiryo/storefront/internal/config"
	"github.com/mbahwiryo/storefront/internal/database"
	"github.com/mbahwiryo/storefront/internal/email"
	"github.com/mbahwiryo/storefront/internal/handler"
	"github.com/mbahwiryo/storefront/internal/logger"
	"github.com/mbahwiryo/storefront/internal/middleware"
	"github.com/mbahwiryo/storefront/internal/router"
	"github.com/mbahwiryo/storefront/internal/service"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", handler.Version).Msg("starting storefront server")

	// Email dispatcher, fixed for the process lifetime
	dispatcherCfg := cfg.Dispatcher()
	dispatcher := email.NewDispatcher(dispatcherCfg, log)
	if err := dispatcher.Ready(); err != nil {
		log.Warn().Err(err).Object("email", dispatcherCfg).Msg("email dispatcher is not ready, sends will fail")
	} else {
		log.Info().Object("email", dispatcherCfg).Msg("email dispatcher initialized")
	}

	// Redis backs rate limiting only
	var (
		counter middleware.RateCounter
		health  handler.HealthChecker
	)
	if cfg.Security.RateLimiting.Enabled {
		rdb, err := database.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to Redis")
		counter, health = rdb, rdb
	}

	// Initialize services
	notifier := service.NewNotificationService(dispatcher, cfg.StoreInfo(time.Now()), cfg.Email.AdminAddress, log)

	if err := notifier.Ready(); err != nil {
		log.Warn().Err(err).Msg("order notifications will fail")
	}

	// Initialize handlers
	h := handler.New(log, notifier, dispatcher, health)

	// Initialize middleware
	mw := middleware.New(counter, log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server. The write timeout covers two concurrent vendor calls.
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.Email.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
