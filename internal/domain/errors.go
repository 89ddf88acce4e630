package domain

import "errors"

// Error kinds. Every rejection returned by the session layer wraps exactly one
// kind and one cause, so callers can match either with errors.Is.
var (
	ErrAuth     = errors.New("authentication failed")
	ErrTransfer = errors.New("transfer rejected")
	ErrLoan     = errors.New("loan rejected")
	ErrClose    = errors.New("close account rejected")
)

var (
	ErrNotFound           = errors.New("not found")
	ErrWrongPIN           = errors.New("wrong pin")
	ErrNotLoggedIn        = errors.New("no active session")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrRecipientNotFound  = errors.New("recipient not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrSelfTransfer       = errors.New("cannot transfer to same account")
	ErrLoanDenied         = errors.New("no movement covers the required share of the loan")
	ErrCredentialMismatch = errors.New("credentials do not match the current session")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrInvalidOwner       = errors.New("owner must contain at least one word")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrBalanceOverflow    = errors.New("balance would exceed the representable range")
)
