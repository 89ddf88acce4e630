package handler

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/josh-kwaku/bankist/internal/auth"
	"github.com/josh-kwaku/bankist/internal/logging"
	"github.com/josh-kwaku/bankist/internal/service"
)

// TokenRegistry remembers the token issued for the active login. It receives
// the session controller's signals, so a session that ends inside the
// controller (expiry, close) also revokes its token.
type TokenRegistry struct {
	mu       sync.Mutex
	id       uuid.UUID
	username string
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{}
}

func (t *TokenRegistry) Issue(c *auth.Claims) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.id = c.TokenID
	t.username = c.Username
}

// Active reports whether c belongs to the current login.
func (t *TokenRegistry) Active(c *auth.Claims) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id != uuid.Nil && c.TokenID == t.id && c.Username == t.username
}

func (t *TokenRegistry) Revoke() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.id = uuid.Nil
	t.username = ""
}

func (t *TokenRegistry) Refresh(ctx context.Context, st service.Statement) {
	logging.FromContext(ctx).Debug("view refreshed", "username", st.Username, "balance", st.Balance)
}

func (t *TokenRegistry) LoggedOut(ctx context.Context, username string, reason service.LogoutReason) {
	t.Revoke()
	logging.FromContext(ctx).Info("session token revoked", "username", username, "reason", reason)
}
