package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"dashboard/internal/auth"
	"dashboard/internal/config"
	"dashboard/internal/server"
	"dashboard/internal/storage/sqlstore"
	"dashboard/internal/summary"
	"dashboard/internal/workflow"
)

func main() {
	// a missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.StringVar(&cfg.DatabaseURL, "db", cfg.DatabaseURL, "SQLite file path or postgres:// URL")
	flag.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Directory with built frontend")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.Debug() {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := sqlstore.Open(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	deps := server.Deps{
		Store:    store,
		Auth:     auth.NewService(store, tokens, logger),
		Workflow: workflow.NewEngine(store, logger),
		Logger:   logger,
	}

	if cfg.AIEnabled() {
		oracle, err := summary.NewAnthropicOracle(summary.AnthropicConfig{
			APIKey:    cfg.AIAPIKey,
			Model:     cfg.AIModel,
			MaxTokens: cfg.AIMaxTokens,
			Timeout:   cfg.AITimeout,
		}, logger)
		if err != nil {
			logger.Error("unable to configure AI assistant", slog.String("error", err.Error()))
			os.Exit(1)
		}
		deps.Summarizer = summary.NewSummarizer(store, oracle, logger)
		logger.Info("AI assistant enabled", slog.String("model", cfg.AIModel))
	} else {
		logger.Warn("no AI API key configured; /ai/analyze will answer 503")
	}

	srv := server.New(deps, server.Options{StaticDir: cfg.StaticDir, CORSOrigins: cfg.CORSOrigins})

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr), slog.String("environment", cfg.Environment))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
