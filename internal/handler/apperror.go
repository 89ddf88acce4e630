package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrMissingToken       = &AppError{http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required"}
	ErrInvalidToken       = &AppError{http.StatusUnauthorized, "INVALID_TOKEN", "Token is invalid or expired"}
	ErrInvalidCredentials = &AppError{http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or PIN"}
	ErrSessionEnded       = &AppError{http.StatusUnauthorized, "SESSION_ENDED", "No active session for this token"}
	ErrSessionExpired     = &AppError{http.StatusUnauthorized, "SESSION_ENDED", "Session ended after inactivity"}
	ErrInvalidRequest     = &AppError{http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body"}
	ErrValidationFailed   = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound   = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrOverloaded         = &AppError{http.StatusServiceUnavailable, "OVERLOADED", "Too many requests in flight"}
	ErrInternalError      = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrInvalidAmount       = &AppError{http.StatusBadRequest, "INVALID_AMOUNT", "Amount must be greater than zero"}
	ErrInsufficientFunds   = &AppError{http.StatusUnprocessableEntity, "INSUFFICIENT_FUNDS", "Insufficient funds"}
	ErrSelfTransfer        = &AppError{http.StatusUnprocessableEntity, "SELF_TRANSFER_NOT_ALLOWED", "Cannot transfer to the same account"}
	ErrRecipientNotFound   = &AppError{http.StatusUnprocessableEntity, "RECIPIENT_NOT_FOUND", "Recipient not found"}
	ErrLoanDenied          = &AppError{http.StatusUnprocessableEntity, "LOAN_DENIED", "No deposit covers 10% of the requested loan"}
	ErrCredentialsMismatch = &AppError{http.StatusUnprocessableEntity, "CREDENTIALS_MISMATCH", "Credentials do not match the logged-in account"}
	ErrBalanceLimit        = &AppError{http.StatusUnprocessableEntity, "BALANCE_LIMIT", "Resulting balance is out of range"}
)
