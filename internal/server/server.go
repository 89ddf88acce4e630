// Package server assembles the HTTP API: routes, middleware chain and the
// session core behind them.
package server

import (
	"net/http"
	"time"

	"github.com/josh-kwaku/bankist/internal/handler"
	"github.com/josh-kwaku/bankist/internal/journal"
	"github.com/josh-kwaku/bankist/internal/ledger"
	"github.com/josh-kwaku/bankist/internal/middleware"
	"github.com/josh-kwaku/bankist/internal/repository"
	"github.com/josh-kwaku/bankist/internal/service"
)

type Options struct {
	JWTSecret   string
	JWTExpiry   time.Duration
	SessionTTL  time.Duration
	Policy      ledger.Policy
	MaxInflight int
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// New wires the session controller to the account store and journal and
// returns the root handler.
func New(accounts *repository.AccountRepository, j *journal.Log, opts Options) http.Handler {
	tokens := handler.NewTokenRegistry()
	controller := service.NewSessionController(accounts, j, service.SessionConfig{
		Policy:   opts.Policy,
		TTL:      opts.SessionTTL,
		Clock:    opts.Clock,
		Notifier: tokens,
	})

	health := handler.NewHealthHandler(accounts)
	sessions := handler.NewSessionHandler(controller, tokens, opts.JWTSecret, opts.JWTExpiry)
	if opts.Clock != nil {
		sessions.SetClock(opts.Clock)
	}
	stats := handler.NewStatsHandler(service.NewStatsService(accounts))
	journals := handler.NewJournalHandler(j)

	authed := middleware.Auth(opts.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Liveness)
	mux.HandleFunc("GET /health/ready", health.Readiness)

	mux.HandleFunc("POST /api/v1/session", sessions.Login)
	mux.Handle("GET /api/v1/session", authed(http.HandlerFunc(sessions.Get)))
	mux.Handle("DELETE /api/v1/session", authed(http.HandlerFunc(sessions.Logout)))
	mux.Handle("POST /api/v1/session/transfers", authed(http.HandlerFunc(sessions.Transfer)))
	mux.Handle("POST /api/v1/session/loans", authed(http.HandlerFunc(sessions.RequestLoan)))
	mux.Handle("POST /api/v1/session/close", authed(http.HandlerFunc(sessions.Close)))
	mux.Handle("POST /api/v1/session/sort", authed(http.HandlerFunc(sessions.ToggleSort)))

	mux.HandleFunc("GET /api/v1/stats", stats.Get)
	mux.Handle("GET /api/v1/journal", authed(sessions.RequireSession(journals.List)))

	var h http.Handler = mux
	h = middleware.Inflight(opts.MaxInflight)(h)
	h = middleware.Recovery(h)
	h = middleware.Logging(h)
	h = middleware.Tracing(h)
	return h
}
