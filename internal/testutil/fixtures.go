package testutil

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/domain"
	"github.com/josh-kwaku/bankist/internal/repository"
	"github.com/josh-kwaku/bankist/internal/seed"
)

// DemoRepository returns a store holding the four demo accounts:
// js (pin 1111), jd (2222), stw (3333), ss (4444).
func DemoRepository(t *testing.T) *repository.AccountRepository {
	t.Helper()

	repo := repository.NewAccountRepository()
	if err := repo.Register(seed.Demo()...); err != nil {
		t.Fatalf("register demo accounts: %v", err)
	}
	return repo
}

// SeedAccount registers one account and returns its derived username.
func SeedAccount(t *testing.T, repo *repository.AccountRepository, owner string, pin int, rate string, movements ...int64) string {
	t.Helper()

	if err := repo.Register(&domain.Account{
		Owner:        owner,
		Movements:    movements,
		InterestRate: decimal.RequireFromString(rate),
		PIN:          pin,
	}); err != nil {
		t.Fatalf("seed account %q: %v", owner, err)
	}
	return domain.DeriveUsername(owner)
}

func Movements(t *testing.T, repo *repository.AccountRepository, username string) []int64 {
	t.Helper()

	acct, err := repo.FindByUsername(username)
	if err != nil {
		t.Fatalf("find %s: %v", username, err)
	}
	return acct.Movements
}

// Clock is a manually advanced time source.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock() *Clock {
	return &Clock{now: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
