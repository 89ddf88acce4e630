package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/josh-kwaku/bankist/internal/logging"
	"github.com/josh-kwaku/bankist/internal/view"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      *int   `json:"pin" validate:"required"`
}

type loginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	View      view.Model `json:"view"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Issued before Login so a signing failure leaves the session untouched.
	token, claims, err := h.issue(req.Username)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to generate token", "error", err)
		RespondAppError(w, ErrInternalError, nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	st, err := h.session.Login(r.Context(), req.Username, *req.PIN)
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	h.tokens.Issue(claims)

	RespondSuccess(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.UTC(),
		View:      view.Project(st, h.now()),
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.authorize(w, r) {
		return
	}
	if err := h.session.Logout(r.Context()); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{"state": h.session.State().String()})
}

func (h *SessionHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	fields, err := decodeRequest(r.Body, dst)
	if errors.Is(err, errMalformedBody) {
		RespondAppError(w, ErrInvalidRequest, nil)
		return false
	}
	if len(fields) > 0 {
		RespondValidationError(w, fields)
		return false
	}
	return true
}
