// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"finledger/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet to the database using the provided DBExecutor.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByID retrieves a wallet by its ID regardless of owner. Used by the
	// balance reconciler, which operates below the ownership layer.
	GetWalletByID(ctx context.Context, q DBExecutor, id int64) (*domain.Wallet, error)
	// GetWalletByIDAndUser retrieves a wallet by ID scoped to its owner, active or not.
	GetWalletByIDAndUser(ctx context.Context, q DBExecutor, id int64, userID string) (*domain.Wallet, error)
	// GetActiveWalletByName retrieves an active wallet by owner and name, for
	// duplicate-name checks.
	GetActiveWalletByName(ctx context.Context, q DBExecutor, userID, name string) (*domain.Wallet, error)
	// ListWalletsByUser retrieves a user's wallets ordered by display order then
	// creation time. When activeOnly is true, soft-deleted wallets are excluded.
	ListWalletsByUser(ctx context.Context, q DBExecutor, userID string, activeOnly bool) ([]domain.Wallet, error)
	// UpdateWallet persists mutable wallet fields (name, icon, color, display order,
	// active flag).
	UpdateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// SetWalletActive flips the soft-delete flag.
	SetWalletActive(ctx context.Context, q DBExecutor, id int64, active bool) error
	// SetDisplayOrder updates a single wallet's display order.
	SetDisplayOrder(ctx context.Context, q DBExecutor, id int64, displayOrder int) error
	// SetCurrentBalance persists a freshly derived balance into the wallet row.
	SetCurrentBalance(ctx context.Context, q DBExecutor, id int64, balance decimal.Decimal) error
}
