package handler

import (
	"net/http"
	"time"
)

type accountCounter interface {
	Len() int
}

type HealthHandler struct {
	accounts accountCounter
}

func NewHealthHandler(accounts accountCounter) *HealthHandler {
	return &HealthHandler{accounts: accounts}
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]any{
			"accounts": h.accounts.Len(),
		},
	})
}
