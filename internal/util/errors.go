// internal/util/errors.go
package util

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrSameWalletTransfer = errors.New("cannot transfer to the same wallet")
	ErrDuplicateEntry     = errors.New("duplicate entry") // Name collision for wallet or category
	ErrDefaultCategory    = errors.New("default categories cannot be modified or deleted")
)

// InsufficientBalanceError is returned when a transfer would overdraw the source
// wallet. It carries the current and required amounts for the error payload.
type InsufficientBalanceError struct {
	Current  decimal.Decimal
	Required decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: current %s, required %s", e.Current, e.Required)
}

// NewInsufficientBalanceError creates an InsufficientBalanceError.
func NewInsufficientBalanceError(current, required decimal.Decimal) *InsufficientBalanceError {
	return &InsufficientBalanceError{Current: current, Required: required}
}

// IsError reports whether err matches the target error in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
