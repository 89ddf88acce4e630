package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/bankist/internal/config"
	"github.com/josh-kwaku/bankist/internal/journal"
	"github.com/josh-kwaku/bankist/internal/ledger"
	"github.com/josh-kwaku/bankist/internal/logging"
	"github.com/josh-kwaku/bankist/internal/repository"
	"github.com/josh-kwaku/bankist/internal/seed"
	"github.com/josh-kwaku/bankist/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("bankist-api", cfg.LogLevel, cfg.AppEnv, os.Stdout)

	accounts, err := seed.Load(cfg.SeedFile)
	if err != nil {
		slog.Error("failed to load seed accounts", "error", err, "seed_file", cfg.SeedFile)
		os.Exit(1)
	}

	repo := repository.NewAccountRepository()
	if err := repo.Register(accounts...); err != nil {
		slog.Error("failed to register accounts", "error", err)
		os.Exit(1)
	}
	slog.Info("accounts registered", "count", repo.Len())

	handler := server.New(repo, journal.New(), server.Options{
		JWTSecret:   cfg.JWTSecret,
		JWTExpiry:   cfg.JWTExpiry,
		SessionTTL:  cfg.SessionTTL,
		Policy:      ledger.NewPolicy(cfg.InterestFloor, cfg.LoanCoverage),
		MaxInflight: cfg.HTTPMaxInflight,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr, "session_ttl", cfg.SessionTTL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
