package aivest

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing entities. Call sites wrap them with the
// identifier that failed to resolve.
var (
	ErrPortfolioNotFound      = errors.New("portfolio not found")
	ErrHoldingNotFound        = errors.New("holding not found")
	ErrRecommendationNotFound = errors.New("recommendation not found")
	ErrAlreadyExecuted        = errors.New("recommendation already executed")
)

// InsufficientFundsError is returned when a buy would cost more than the
// portfolio's available cash. It carries both amounts for display.
type InsufficientFundsError struct {
	Required  Money
	Available Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: required %s, available %s", e.Required, e.Available)
}

// InsufficientSharesError is returned when a sell exceeds the held quantity.
type InsufficientSharesError struct {
	Symbol    string
	Requested int64
	Held      int64
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("insufficient shares of %s: requested %d, held %d", e.Symbol, e.Requested, e.Held)
}

// ValidationError reports an invalid input (non-positive quantity, unknown
// action type, empty symbol).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "validation: " + e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ProviderError wraps a failure of an external collaborator (price or
// research provider): network error, unknown symbol, unexpected data shape.
type ProviderError struct {
	Op     string // operation that failed, e.g. "quote" or "research"
	Symbol string // symbol involved, if any
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("provider %s %s: %v", e.Op, e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PersistenceError wraps an I/O failure while saving a collection file.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("cannot persist %q: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
