package handler

import (
	"net/http"

	"github.com/josh-kwaku/bankist/internal/journal"
	"github.com/josh-kwaku/bankist/internal/logging"
)

type journalReader interface {
	Entries() []journal.Entry
	Verify() error
}

type JournalHandler struct {
	journal journalReader
}

func NewJournalHandler(j journalReader) *JournalHandler {
	return &JournalHandler{journal: j}
}

type journalResponse struct {
	Entries []journal.Entry `json:"entries"`
	Valid   bool            `json:"valid"`
}

func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	entries := h.journal.Entries()
	if entries == nil {
		entries = []journal.Entry{}
	}

	valid := true
	if err := h.journal.Verify(); err != nil {
		logging.FromContext(r.Context()).Error("journal verification failed", "error", err)
		valid = false
	}

	RespondSuccess(w, http.StatusOK, journalResponse{Entries: entries, Valid: valid})
}
