// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Wallet represents a user's wallet (a place money is tracked: cash, bank account, e-wallet).
type Wallet struct {
	ID             int64           `db:"id" json:"id"`                           // Primary key, BIGSERIAL in DB
	UserID         string          `db:"user_id" json:"user_id"`                 // Identity provider UID, no FK constraint
	Name           string          `db:"name" json:"name"`                       // e.g. "Cash", "Bank BCA", "GoPay"
	Icon           *string         `db:"icon" json:"icon"`                       // Optional icon identifier for UI
	Color          *string         `db:"color" json:"color"`                     // Optional hex color for UI
	InitialBalance decimal.Decimal `db:"initial_balance" json:"initial_balance"` // Starting balance, NUMERIC(20, 4) in DB
	CurrentBalance decimal.Decimal `db:"current_balance" json:"current_balance"` // Cached balance, re-derived on every mutation
	IsActive       bool            `db:"is_active" json:"is_active"`             // Soft-delete flag
	DisplayOrder   int             `db:"display_order" json:"display_order"`     // Sort order in UI
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`           // Timestamp of creation
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`           // Timestamp of last update
}

// NewWallet creates a new Wallet instance. The current balance starts equal to the
// initial balance since the wallet has no ledger history yet.
func NewWallet(userID, name string, icon, color *string, initialBalance decimal.Decimal, displayOrder int) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		UserID:         userID,
		Name:           name,
		Icon:           icon,
		Color:          color,
		InitialBalance: initialBalance,
		CurrentBalance: initialBalance,
		IsActive:       true,
		DisplayOrder:   displayOrder,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
