package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"capsule-os/app"
	"capsule-os/config"
	"capsule-os/logging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			logging.Warn().Str("path", envPath).Msg("⚠️ .env file not found, using system environment variables")
		} else {
			logging.Info().Str("path", envPath).Msg("✅ Loaded environment variables (overriding system variables)")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize application
	application, err := app.Initialize(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("❌ Failed to initialize application")
	}
	defer application.Close()

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      application.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", cfg.Addr()).
			Str("environment", cfg.Server.Environment).
			Msg("🚀 Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logging.Error().Err(err).Msg("❌ Server failed to start")
		}
	case <-ctx.Done():
		logging.Info().Msg("🛑 Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("❌ Graceful shutdown failed")
		return
	}
	logging.Info().Msg("✅ Server stopped")
}
