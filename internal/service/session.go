package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/bankist/internal/domain"
	"github.com/josh-kwaku/bankist/internal/journal"
	"github.com/josh-kwaku/bankist/internal/ledger"
	"github.com/josh-kwaku/bankist/internal/logging"
)

type accountStore interface {
	FindByUsername(username string) (*domain.Account, error)
	Post(postings ...domain.Posting) error
	Remove(username string) bool
}

type recorder interface {
	Append(ctx context.Context, kind journal.Kind, payload any) (journal.Entry, error)
}

// Notifier receives the Core -> Adapter signals.
type Notifier interface {
	Refresh(ctx context.Context, st Statement)
	LoggedOut(ctx context.Context, username string, reason LogoutReason)
}

type State int

const (
	StateLoggedOut State = iota
	StateLoggedIn
)

func (s State) String() string {
	if s == StateLoggedIn {
		return "logged_in"
	}
	return "logged_out"
}

type LogoutReason string

const (
	LogoutRequested LogoutReason = "logout"
	LogoutExpired   LogoutReason = "expired"
	LogoutClosed    LogoutReason = "closed"
)

// Statement is everything the presentation layer needs to render the
// authenticated view.
type Statement struct {
	Username       string
	Owner          string
	OwnerFirstName string
	Movements      []int64
	Sorted         bool
	Balance        int64
	TotalIncome    int64
	TotalExpense   int64
	Interest       decimal.Decimal
	ExpiresAt      time.Time
}

type SessionConfig struct {
	Policy ledger.Policy
	// TTL is the idle timeout. Zero disables auto-logout.
	TTL time.Duration
	// Clock defaults to time.Now.
	Clock    func() time.Time
	Notifier Notifier
}

// SessionController tracks the single authenticated account and executes
// login, transfer, loan, close and sort actions against the account store.
// It is not safe for concurrent use; the presentation layer serialises calls.
type SessionController struct {
	accounts accountStore
	journal  recorder
	notifier Notifier
	policy   ledger.Policy
	ttl      time.Duration
	now      func() time.Time

	state    State
	username string
	sorted   bool
	deadline time.Time
}

func NewSessionController(accounts accountStore, journal recorder, cfg SessionConfig) *SessionController {
	s := &SessionController{
		accounts: accounts,
		journal:  journal,
		notifier: cfg.Notifier,
		policy:   cfg.Policy,
		ttl:      cfg.TTL,
		now:      cfg.Clock,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.policy.InterestFloor.IsZero() && s.policy.LoanCoverage.IsZero() {
		s.policy = ledger.DefaultPolicy()
	}
	return s
}

func (s *SessionController) State() State { return s.state }

// Username is the account of the current session, empty when logged out.
func (s *SessionController) Username() string { return s.username }

func (s *SessionController) Login(ctx context.Context, username string, pin int) (Statement, error) {
	log := logging.FromContext(ctx)

	acct, err := s.accounts.FindByUsername(username)
	if err != nil {
		log.Info("login rejected", "username", username, "reason", "unknown username")
		return Statement{}, fmt.Errorf("Login: %w: %w", domain.ErrAuth, err)
	}
	if acct.PIN != pin {
		log.Info("login rejected", "username", username, "reason", "wrong pin")
		return Statement{}, fmt.Errorf("Login: %w: %w", domain.ErrAuth, domain.ErrWrongPIN)
	}

	previous := s.username
	s.state = StateLoggedIn
	s.username = acct.Username
	s.sorted = false
	s.touch()

	s.record(ctx, journal.KindLogin, loginPayload{Username: acct.Username, Previous: previous})
	log.Info("login succeeded", "username", acct.Username)

	st := s.statement(acct)
	s.notifier.Refresh(ctx, st)
	return st, nil
}

func (s *SessionController) Transfer(ctx context.Context, to string, amount int64) (Statement, error) {
	log := logging.FromContext(ctx)

	sender, err := s.current(ctx)
	if err != nil {
		return Statement{}, fmt.Errorf("Transfer: %w", err)
	}

	recipient, err := s.validateTransfer(sender, to, amount)
	if err != nil {
		log.Info("transfer rejected", "from", sender.Username, "to", to, "amount", amount, "reason", err)
		return Statement{}, fmt.Errorf("Transfer: %w", err)
	}

	err = s.accounts.Post(
		domain.Posting{Username: sender.Username, Amount: -amount},
		domain.Posting{Username: recipient.Username, Amount: amount},
	)
	if err != nil {
		return Statement{}, fmt.Errorf("Transfer: %w: %w", domain.ErrTransfer, err)
	}
	s.touch()

	s.record(ctx, journal.KindTransferPosted, transferPayload{From: sender.Username, To: recipient.Username, Amount: amount})
	log.Info("transfer completed",
		"from", sender.Username,
		"to", recipient.Username,
		"amount", amount,
	)

	return s.refresh(ctx)
}

// validateTransfer checks, in order: positive amount, known recipient,
// sufficient balance, distinct recipient.
func (s *SessionController) validateTransfer(sender *domain.Account, to string, amount int64) (*domain.Account, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransfer, domain.ErrInvalidAmount)
	}

	recipient, err := s.accounts.FindByUsername(to)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", domain.ErrTransfer, domain.ErrRecipientNotFound)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransfer, err)
	}

	if ledger.Balance(sender.Movements) < amount {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransfer, domain.ErrInsufficientFunds)
	}

	if recipient.Username == sender.Username {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransfer, domain.ErrSelfTransfer)
	}

	return recipient, nil
}

func (s *SessionController) RequestLoan(ctx context.Context, amount int64) (Statement, error) {
	log := logging.FromContext(ctx)

	acct, err := s.current(ctx)
	if err != nil {
		return Statement{}, fmt.Errorf("RequestLoan: %w", err)
	}

	if amount <= 0 {
		log.Info("loan rejected", "username", acct.Username, "amount", amount, "reason", "invalid amount")
		return Statement{}, fmt.Errorf("RequestLoan: %w: %w", domain.ErrLoan, domain.ErrInvalidAmount)
	}
	if !ledger.QualifiesForLoan(acct.Movements, amount, s.policy.LoanCoverage) {
		log.Info("loan rejected", "username", acct.Username, "amount", amount, "reason", "coverage")
		return Statement{}, fmt.Errorf("RequestLoan: %w: %w", domain.ErrLoan, domain.ErrLoanDenied)
	}

	if err := s.accounts.Post(domain.Posting{Username: acct.Username, Amount: amount}); err != nil {
		return Statement{}, fmt.Errorf("RequestLoan: %w: %w", domain.ErrLoan, err)
	}
	s.touch()

	s.record(ctx, journal.KindLoanApproved, loanPayload{Username: acct.Username, Amount: amount})
	log.Info("loan approved", "username", acct.Username, "amount", amount)

	return s.refresh(ctx)
}

// CloseAccount removes the session's own account when username and pin match
// its credentials, then ends the session.
func (s *SessionController) CloseAccount(ctx context.Context, username string, pin int) error {
	log := logging.FromContext(ctx)

	acct, err := s.current(ctx)
	if err != nil {
		return fmt.Errorf("CloseAccount: %w", err)
	}

	if username != acct.Username || pin != acct.PIN {
		log.Info("close account rejected", "username", acct.Username, "requested", username)
		return fmt.Errorf("CloseAccount: %w: %w", domain.ErrClose, domain.ErrCredentialMismatch)
	}

	s.accounts.Remove(acct.Username)
	s.record(ctx, journal.KindAccountClosed, closePayload{
		Username:     acct.Username,
		FinalBalance: ledger.Balance(acct.Movements),
	})
	log.Info("account closed", "username", acct.Username)

	s.end(ctx, LogoutClosed)
	return nil
}

// ToggleSort flips the session's sort flag and returns the movements in the
// new display order. The stored order is never changed.
func (s *SessionController) ToggleSort(ctx context.Context) ([]int64, error) {
	acct, err := s.current(ctx)
	if err != nil {
		return nil, fmt.Errorf("ToggleSort: %w", err)
	}
	s.sorted = !s.sorted
	return s.display(acct.Movements), nil
}

// Current returns the statement of the active session.
func (s *SessionController) Current(ctx context.Context) (Statement, error) {
	acct, err := s.current(ctx)
	if err != nil {
		return Statement{}, fmt.Errorf("Current: %w", err)
	}
	return s.statement(acct), nil
}

func (s *SessionController) Logout(ctx context.Context) error {
	if _, err := s.current(ctx); err != nil {
		return fmt.Errorf("Logout: %w", err)
	}
	s.end(ctx, LogoutRequested)
	return nil
}

// current resolves the session account, ending the session first when the
// idle deadline has passed.
func (s *SessionController) current(ctx context.Context) (*domain.Account, error) {
	if s.state != StateLoggedIn {
		return nil, domain.ErrNotLoggedIn
	}
	if s.expired() {
		s.end(ctx, LogoutExpired)
		return nil, fmt.Errorf("%w: %w", domain.ErrNotLoggedIn, domain.ErrSessionExpired)
	}

	acct, err := s.accounts.FindByUsername(s.username)
	if err != nil {
		s.end(ctx, LogoutRequested)
		return nil, fmt.Errorf("%w: %w", domain.ErrNotLoggedIn, err)
	}
	return acct, nil
}

func (s *SessionController) refresh(ctx context.Context) (Statement, error) {
	acct, err := s.accounts.FindByUsername(s.username)
	if err != nil {
		return Statement{}, fmt.Errorf("refresh: %w", err)
	}
	st := s.statement(acct)
	s.notifier.Refresh(ctx, st)
	return st, nil
}

func (s *SessionController) end(ctx context.Context, reason LogoutReason) {
	username := s.username
	s.state = StateLoggedOut
	s.username = ""
	s.sorted = false
	s.deadline = time.Time{}

	switch reason {
	case LogoutExpired:
		s.record(ctx, journal.KindExpired, logoutPayload{Username: username, Reason: string(reason)})
		logging.FromContext(ctx).Info("session expired", "username", username)
	case LogoutRequested:
		s.record(ctx, journal.KindLogout, logoutPayload{Username: username, Reason: string(reason)})
	}

	s.notifier.LoggedOut(ctx, username, reason)
}

func (s *SessionController) touch() {
	if s.ttl > 0 {
		s.deadline = s.now().Add(s.ttl)
	}
}

func (s *SessionController) expired() bool {
	return s.ttl > 0 && !s.now().Before(s.deadline)
}

func (s *SessionController) display(movements []int64) []int64 {
	if s.sorted {
		return ledger.Sorted(movements, true)
	}
	return append([]int64{}, movements...)
}

func (s *SessionController) statement(acct *domain.Account) Statement {
	return Statement{
		Username:       acct.Username,
		Owner:          acct.Owner,
		OwnerFirstName: acct.FirstName(),
		Movements:      s.display(acct.Movements),
		Sorted:         s.sorted,
		Balance:        ledger.Balance(acct.Movements),
		TotalIncome:    ledger.TotalIncome(acct.Movements),
		TotalExpense:   ledger.TotalExpense(acct.Movements),
		Interest:       ledger.QualifyingInterest(acct.Movements, acct.InterestRate, s.policy.InterestFloor),
		ExpiresAt:      s.deadline,
	}
}

func (s *SessionController) record(ctx context.Context, kind journal.Kind, payload any) {
	if s.journal == nil {
		return
	}
	if _, err := s.journal.Append(ctx, kind, payload); err != nil {
		logging.FromContext(ctx).Error("failed to record journal entry", "kind", kind, "error", err)
	}
}

type loginPayload struct {
	Username string `json:"username"`
	Previous string `json:"previous,omitempty"`
}

type transferPayload struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

type loanPayload struct {
	Username string `json:"username"`
	Amount   int64  `json:"amount"`
}

type closePayload struct {
	Username     string `json:"username"`
	FinalBalance int64  `json:"final_balance"`
}

type logoutPayload struct {
	Username string `json:"username"`
	Reason   string `json:"reason"`
}

type nopNotifier struct{}

func (nopNotifier) Refresh(context.Context, Statement)              {}
func (nopNotifier) LoggedOut(context.Context, string, LogoutReason) {}
