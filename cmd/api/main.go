package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/passforge/passforge-go/internal/config"
	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/handler"
	"github.com/passforge/passforge-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(cfg.Logger())

	if cfg.APITokenSecret == "" {
		if cfg.Env == "production" {
			slog.Error("API_TOKEN_SECRET must be set in production")
			os.Exit(1)
		}
		slog.Warn("API_TOKEN_SECRET not set, generate endpoint is unauthenticated")
	}

	genService := service.NewGeneratorService(crypto.NewGenerator(nil), cfg.Defaults)
	genHandler := handler.NewGeneratorHandler(genService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := handler.NewRouter(ctx, genHandler, handler.RouterOptions{
		TokenSecret:    cfg.APITokenSecret,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env,
			"default_length", cfg.Defaults.Length, "default_classes", cfg.Defaults.Classes.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
