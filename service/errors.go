package service

import "errors"

var (
	ErrAuthenticationFailed = errors.New("invalid username or pin")
	ErrSessionExpired       = errors.New("session expired")
	ErrNoActiveSession      = errors.New("no active session")
	ErrTransferRejected     = errors.New("transfer rejected")
	ErrLoanRejected         = errors.New("loan rejected")
	ErrCloseRejected        = errors.New("close account rejected")
	ErrLoanDiscarded        = errors.New("loan discarded")
	ErrAuditDisabled        = errors.New("activity history is not enabled")
)

// Rejection reasons. They are reported together with one of the kinds above.
var (
	ErrInvalidNumber       = errors.New("input is not a number")
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrReceiverNotFound    = errors.New("receiver account not found")
	ErrSameAccountTransfer = errors.New("cannot transfer money to the same account")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrNoQualifyingDeposit = errors.New("no deposit is large enough to secure this loan")
	ErrIdentityMismatch    = errors.New("username or pin does not match the logged-in account")
)

// RejectionError reports a declined operation. errors.Is matches both Kind
// (e.g. ErrTransferRejected) and Reason (e.g. ErrInsufficientFunds).
type RejectionError struct {
	Kind   error
	Reason error
}

func reject(kind, reason error) error {
	return &RejectionError{Kind: kind, Reason: reason}
}

func (e *RejectionError) Error() string {
	return e.Kind.Error() + ": " + e.Reason.Error()
}

func (e *RejectionError) Unwrap() []error {
	return []error{e.Kind, e.Reason}
}
