package handler

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/auth"
	"github.com/josh-kwaku/bankist/internal/service"
	"github.com/josh-kwaku/bankist/internal/view"
)

type sessionController interface {
	State() service.State
	Username() string
	Login(ctx context.Context, username string, pin int) (service.Statement, error)
	Transfer(ctx context.Context, to string, amount int64) (service.Statement, error)
	RequestLoan(ctx context.Context, amount int64) (service.Statement, error)
	CloseAccount(ctx context.Context, username string, pin int) error
	ToggleSort(ctx context.Context) ([]int64, error)
	Current(ctx context.Context) (service.Statement, error)
	Logout(ctx context.Context) error
}

// SessionHandler exposes the single session over HTTP. The controller is not
// safe for concurrent use, so every call runs under mu.
type SessionHandler struct {
	mu      sync.Mutex
	session sessionController
	tokens  *TokenRegistry
	issue   func(username string) (string, *auth.Claims, error)
	now     func() time.Time
}

func NewSessionHandler(session sessionController, tokens *TokenRegistry, jwtSecret string, jwtExpiry time.Duration) *SessionHandler {
	return &SessionHandler{
		session: session,
		tokens:  tokens,
		issue: func(username string) (string, *auth.Claims, error) {
			return auth.GenerateToken(username, jwtSecret, jwtExpiry)
		},
		now: time.Now,
	}
}

type transferRequest struct {
	To     string `json:"to" validate:"required"`
	Amount int64  `json:"amount"`
}

// loanRequest accepts fractional amounts; the granted loan is the floor.
type loanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

var (
	minAmount = decimal.NewFromInt(math.MinInt64)
	maxAmount = decimal.NewFromInt(math.MaxInt64)
)

// wholeAmount floors d and reports false when the result does not fit in an
// int64.
func wholeAmount(d decimal.Decimal) (int64, bool) {
	f := d.Floor()
	if f.LessThan(minAmount) || f.GreaterThan(maxAmount) {
		return 0, false
	}
	return f.IntPart(), true
}

type closeRequest struct {
	Username string `json:"username" validate:"required"`
	PIN      *int   `json:"pin" validate:"required"`
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.authorize(w, r) {
		return
	}
	h.respondStatement(w, r, h.session.Current)
}

func (h *SessionHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.authorize(w, r) {
		return
	}
	h.respondStatement(w, r, func(ctx context.Context) (service.Statement, error) {
		return h.session.Transfer(ctx, req.To, req.Amount)
	})
}

func (h *SessionHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.authorize(w, r) {
		return
	}
	amount, ok := wholeAmount(req.Amount)
	if !ok {
		RespondAppError(w, ErrInvalidAmount, nil)
		return
	}
	h.respondStatement(w, r, func(ctx context.Context) (service.Statement, error) {
		return h.session.RequestLoan(ctx, amount)
	})
}

func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.authorize(w, r) {
		return
	}
	if err := h.session.CloseAccount(r.Context(), req.Username, *req.PIN); err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]string{
		"closed": req.Username,
		"state":  h.session.State().String(),
	})
}

func (h *SessionHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.authorize(w, r) {
		return
	}
	if _, err := h.session.ToggleSort(r.Context()); err != nil {
		RespondDomainError(w, err)
		return
	}
	h.respondStatement(w, r, h.session.Current)
}

// RequireSession lets next run only for the bearer of the active login.
// next runs under mu, so it observes a consistent session.
func (h *SessionHandler) RequireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if !h.authorize(w, r) {
			return
		}
		if _, err := h.session.Current(r.Context()); err != nil {
			RespondDomainError(w, err)
			return
		}
		next(w, r)
	}
}

// authorize requires the bearer token of the active login. Callers hold mu.
func (h *SessionHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return false
	}
	if !h.tokens.Active(claims) || h.session.Username() != claims.Username {
		RespondAppError(w, ErrSessionEnded, nil)
		return false
	}
	return true
}

func (h *SessionHandler) respondStatement(w http.ResponseWriter, r *http.Request, op func(context.Context) (service.Statement, error)) {
	st, err := op(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, view.Project(st, h.now()))
}

// SetClock replaces the time source used for the logout countdown.
func (h *SessionHandler) SetClock(now func() time.Time) {
	h.now = now
}
