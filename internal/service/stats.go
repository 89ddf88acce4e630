package service

import (
	"context"

	"github.com/josh-kwaku/bankist/internal/domain"
	"github.com/josh-kwaku/bankist/internal/ledger"
)

type accountLister interface {
	List() []*domain.Account
}

// StatsService aggregates movements across every registered account.
type StatsService struct {
	accounts accountLister
}

func NewStatsService(accounts accountLister) *StatsService {
	return &StatsService{accounts: accounts}
}

func (s *StatsService) BankStats(_ context.Context) ledger.BankStats {
	accounts := s.accounts.List()
	histories := make([][]int64, len(accounts))
	for i, a := range accounts {
		histories[i] = a.Movements
	}
	return ledger.Summarize(histories...)
}
