// internal/repository/postgres/wallet_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// WalletRepository implements repository.WalletRepository for PostgreSQL.
type WalletRepository struct {
	// Stateless: methods receive a DBExecutor directly
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(db *sqlx.DB) repository.WalletRepository {
	return &WalletRepository{}
}

const walletColumns = `id, user_id, name, icon, color, initial_balance, current_balance, is_active, display_order, created_at, updated_at`

// CreateWallet inserts a new wallet into the database using the provided DBExecutor.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (user_id, name, icon, color, initial_balance, current_balance, is_active, display_order, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		wallet.UserID,
		wallet.Name,
		wallet.Icon,
		wallet.Color,
		wallet.InitialBalance,
		wallet.CurrentBalance,
		wallet.IsActive,
		wallet.DisplayOrder,
		wallet.CreatedAt,
		wallet.UpdatedAt,
	).Scan(&wallet.ID)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByID retrieves a wallet by its ID using the provided DBExecutor.
func (r *WalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	err := q.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by ID %d: %w", id, err)
	}
	return &wallet, nil
}

// GetWalletByIDAndUser retrieves a wallet by ID scoped to its owner using the provided DBExecutor.
func (r *WalletRepository) GetWalletByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &wallet, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet %d for user %s: %w", id, userID, err)
	}
	return &wallet, nil
}

// GetActiveWalletByName retrieves an active wallet by owner and name using the provided DBExecutor.
func (r *WalletRepository) GetActiveWalletByName(ctx context.Context, q repository.DBExecutor, userID, name string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND name = $2 AND is_active = TRUE`
	err := q.GetContext(ctx, &wallet, query, userID, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet '%s' for user %s: %w", name, userID, err)
	}
	return &wallet, nil
}

// ListWalletsByUser retrieves a user's wallets ordered by display order then creation time.
func (r *WalletRepository) ListWalletsByUser(ctx context.Context, q repository.DBExecutor, userID string, activeOnly bool) ([]domain.Wallet, error) {
	wallets := []domain.Wallet{}
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY display_order, created_at`
	err := q.SelectContext(ctx, &wallets, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets for user %s: %w", userID, err)
	}
	return wallets, nil
}

// UpdateWallet persists mutable wallet fields using the provided DBExecutor.
func (r *WalletRepository) UpdateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `UPDATE wallets
              SET name = $1, icon = $2, color = $3, display_order = $4, is_active = $5, updated_at = $6
              WHERE id = $7`
	result, err := q.ExecContext(ctx, query,
		wallet.Name,
		wallet.Icon,
		wallet.Color,
		wallet.DisplayOrder,
		wallet.IsActive,
		time.Now().UTC(),
		wallet.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet %d: %w", wallet.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating wallet %d: %w", wallet.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SetWalletActive flips the soft-delete flag using the provided DBExecutor.
func (r *WalletRepository) SetWalletActive(ctx context.Context, q repository.DBExecutor, id int64, active bool) error {
	query := `UPDATE wallets SET is_active = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, active, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set active flag on wallet %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after toggling wallet %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SetDisplayOrder updates a single wallet's display order using the provided DBExecutor.
func (r *WalletRepository) SetDisplayOrder(ctx context.Context, q repository.DBExecutor, id int64, displayOrder int) error {
	query := `UPDATE wallets SET display_order = $1, updated_at = $2 WHERE id = $3`
	if _, err := q.ExecContext(ctx, query, displayOrder, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to set display order on wallet %d: %w", id, err)
	}
	return nil
}

// SetCurrentBalance persists a freshly derived balance into the wallet row.
func (r *WalletRepository) SetCurrentBalance(ctx context.Context, q repository.DBExecutor, id int64, balance decimal.Decimal) error {
	query := `UPDATE wallets SET current_balance = $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, balance, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to set balance on wallet %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after setting balance on wallet %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}
