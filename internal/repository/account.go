package repository

import (
	"fmt"
	"math"
	"sync"

	"github.com/josh-kwaku/bankist/internal/domain"
	"github.com/josh-kwaku/bankist/internal/ledger"
)

// AccountRepository is the in-memory registry of accounts. Accounts are kept
// in registration order and looked up by username with a linear scan.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts []*domain.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// Register derives the username of every account and adds the batch. The
// whole batch is rejected if any username is empty or collides with a
// registered account or with another account of the same batch.
func (r *AccountRepository) Register(accounts ...*domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{}, len(r.accounts)+len(accounts))
	for _, a := range r.accounts {
		seen[a.Username] = struct{}{}
	}

	batch := make([]*domain.Account, 0, len(accounts))
	for _, a := range accounts {
		username := domain.DeriveUsername(a.Owner)
		if username == "" {
			return fmt.Errorf("Register: %q: %w", a.Owner, domain.ErrInvalidOwner)
		}
		if _, dup := seen[username]; dup {
			return fmt.Errorf("Register: %q: %s: %w", a.Owner, username, domain.ErrUsernameTaken)
		}
		seen[username] = struct{}{}

		cp := a.Clone()
		cp.Username = username
		batch = append(batch, cp)
	}

	r.accounts = append(r.accounts, batch...)
	return nil
}

// FindByUsername returns a copy of the account registered under username.
func (r *AccountRepository) FindByUsername(username string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(username); i >= 0 {
		return r.accounts[i].Clone(), nil
	}
	return nil, fmt.Errorf("FindByUsername: %w", domain.ErrNotFound)
}

// Remove deletes the first account registered under username. It is a no-op
// returning false if there is none.
func (r *AccountRepository) Remove(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(username)
	if i < 0 {
		return false
	}
	r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
	return true
}

// Post appends every posting to its account. All targets are resolved and
// every resulting balance is checked before anything is written, so an
// unknown username or an overflowing balance leaves every account untouched.
func (r *AccountRepository) Post(postings ...domain.Posting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	targets := make([]*domain.Account, len(postings))
	balances := make(map[*domain.Account]int64, len(postings))
	for i, p := range postings {
		idx := r.indexOf(p.Username)
		if idx < 0 {
			return fmt.Errorf("Post: %s: %w", p.Username, domain.ErrNotFound)
		}
		acct := r.accounts[idx]
		targets[i] = acct

		bal, ok := balances[acct]
		if !ok {
			bal = ledger.Balance(acct.Movements)
		}
		next, ok := addInt64(bal, p.Amount)
		if !ok {
			return fmt.Errorf("Post: %s: %w", p.Username, domain.ErrBalanceOverflow)
		}
		balances[acct] = next
	}

	for i, p := range postings {
		targets[i].Movements = append(targets[i].Movements, p.Amount)
	}
	return nil
}

// List returns copies of every account in registration order.
func (r *AccountRepository) List() []*domain.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Account, len(r.accounts))
	for i, a := range r.accounts {
		out[i] = a.Clone()
	}
	return out
}

func (r *AccountRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

func (r *AccountRepository) indexOf(username string) int {
	for i, a := range r.accounts {
		if a.Username == username {
			return i
		}
	}
	return -1
}

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}
