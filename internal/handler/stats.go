package handler

import (
	"context"
	"net/http"

	"github.com/josh-kwaku/bankist/internal/ledger"
)

type statsReader interface {
	BankStats(ctx context.Context) ledger.BankStats
}

type StatsHandler struct {
	stats statsReader
}

func NewStatsHandler(stats statsReader) *StatsHandler {
	return &StatsHandler{stats: stats}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	RespondSuccess(w, http.StatusOK, h.stats.BankStats(r.Context()))
}
