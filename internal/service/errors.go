// Domain errors returned by the service layer. Handlers translate these
// into HTTP status codes; nothing below the handlers knows about HTTP.
package service

import "errors"

var (
	// ErrNotFound covers both "does not exist" and "exists but belongs to
	// someone else". The two must stay indistinguishable so account numbers
	// cannot be enumerated.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the caller is known but not allowed to touch the
	// target user record.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidAmount means a non-positive amount reached the ledger.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidTransactionType means a type outside deposit/withdrawal.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrCurrencyMismatch means the posted currency differs from the
	// account's currency.
	ErrCurrencyMismatch = errors.New("currency does not match account currency")

	// ErrInsufficientFunds means a withdrawal would take the balance
	// below zero. Business state, not malformed input.
	ErrInsufficientFunds = errors.New("insufficient funds to process transaction")

	// ErrConflict means a user cannot be deleted while they still own
	// bank accounts.
	ErrConflict = errors.New("user still owns bank accounts")

	// ErrDuplicateEmail means a user with that email already exists.
	ErrDuplicateEmail = errors.New("user with this email already exists")
)
