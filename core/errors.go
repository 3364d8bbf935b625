package core

import (
	"errors"
	"fmt"

	"github.com/tos-network/gtoken/core/types"
)

// Business-rule failures are detected before any durable write begins, so a
// returned error always means the ledger is exactly as it was before the
// call.
var (
	// ErrAmountOverflow is returned when a checked addition would exceed the
	// 128-bit amount range.
	ErrAmountOverflow = errors.New("amount overflow")

	// ErrAmountTooSmall is returned by fee-inclusive transfers whose gross
	// amount does not exceed the fee.
	ErrAmountTooSmall = errors.New("amount too small")

	// ErrClaimNotAllowed is returned when the presented identity does not
	// derive the claimed legacy account identifier, or when no claim exists
	// for it.
	ErrClaimNotAllowed = errors.New("claim not allowed")

	// ErrNotInitialized is returned when opening a database that holds no
	// ledger metadata.
	ErrNotInitialized = errors.New("ledger not initialized")

	// ErrAlreadyInitialized is returned when initializing a database that
	// already holds ledger metadata.
	ErrAlreadyInitialized = errors.New("ledger already initialized")
)

// BadFeeError is returned when the caller-specified fee does not match the
// configured fee.
type BadFeeError struct {
	ExpectedFee types.Amount
}

func (e *BadFeeError) Error() string {
	return fmt.Sprintf("bad fee: expected %s", e.ExpectedFee)
}

// InsufficientFundsError is returned when an account balance cannot cover a
// debit. Balance reports the account's balance at the time of the check; for
// batch transfers this is always the sender's original, pre-batch balance.
type InsufficientFundsError struct {
	Balance types.Amount
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %s", e.Balance)
}

// InsufficientAllowanceError is returned when a delegated transfer exceeds
// the spender's remaining allowance.
type InsufficientAllowanceError struct {
	Allowance types.Amount
}

func (e *InsufficientAllowanceError) Error() string {
	return fmt.Sprintf("insufficient allowance: %s", e.Allowance)
}

// TooOldError is returned when a supplied created_at_time is older than the
// accepted window.
type TooOldError struct {
	AllowedWindowNanos uint64
}

func (e *TooOldError) Error() string {
	return fmt.Sprintf("transaction too old: allowed window %d ns", e.AllowedWindowNanos)
}

// CreatedInFutureError is returned when a supplied created_at_time is ahead
// of ledger time by more than the permitted drift.
type CreatedInFutureError struct {
	LedgerTime uint64
}

func (e *CreatedInFutureError) Error() string {
	return fmt.Sprintf("transaction created in the future: ledger time %d", e.LedgerTime)
}

// DuplicateError is returned when an identical transfer was already recorded
// inside the dedup window.
type DuplicateError struct {
	DuplicateOf types.TxID
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate of transaction %d", e.DuplicateOf)
}
