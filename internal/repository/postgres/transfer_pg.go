// internal/repository/postgres/transfer_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// TransferRepository implements repository.TransferRepository for PostgreSQL.
type TransferRepository struct {
	// Stateless: methods receive a DBExecutor directly
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(db *sqlx.DB) repository.TransferRepository {
	return &TransferRepository{}
}

const transferColumns = `id, user_id, from_wallet_id, to_wallet_id, amount, fee, description, transfer_date, created_at, updated_at`

// CreateTransfer inserts a new transfer record using the provided DBExecutor.
func (r *TransferRepository) CreateTransfer(ctx context.Context, q repository.DBExecutor, transfer *domain.Transfer) error {
	query := `INSERT INTO transfers (user_id, from_wallet_id, to_wallet_id, amount, fee, description, transfer_date, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transfer.UserID,
		transfer.FromWalletID,
		transfer.ToWalletID,
		transfer.Amount,
		transfer.Fee,
		transfer.Description,
		transfer.TransferDate,
		transfer.CreatedAt,
		transfer.UpdatedAt,
	).Scan(&transfer.ID)
	if err != nil {
		return fmt.Errorf("failed to create transfer: %w", err)
	}
	return nil
}

// GetTransferByIDAndUser retrieves a transfer by ID scoped to its owner.
func (r *TransferRepository) GetTransferByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Transfer, error) {
	var transfer domain.Transfer
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &transfer, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transfer %d for user %s: %w", id, userID, err)
	}
	return &transfer, nil
}

// ListTransfers retrieves a paginated list of transfers matching the filter.
// It performs two queries: one for the data and one for the total count.
func (r *TransferRepository) ListTransfers(ctx context.Context, q repository.DBExecutor, filter repository.TransferFilter) ([]domain.Transfer, int64, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	if filter.WalletID != nil {
		// The wallet counts whether it sent or received the transfer.
		args = append(args, *filter.WalletID)
		conditions = append(conditions, fmt.Sprintf("(from_wallet_id = $%d OR to_wallet_id = $%d)", len(args), len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("transfer_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("transfer_date <= $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	transfers := []domain.Transfer{}
	query := fmt.Sprintf(`SELECT %s FROM transfers WHERE %s
		ORDER BY transfer_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, transferColumns, where, len(args)+1, len(args)+2)
	err := q.SelectContext(ctx, &transfers, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transfers: %w", err)
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM transfers WHERE %s`, where)
	err = q.GetContext(ctx, &totalCount, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}

	return transfers, totalCount, nil
}

// DeleteTransfer removes a transfer record.
func (r *TransferRepository) DeleteTransfer(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transfer %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting transfer %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SumIncoming sums transfer amounts credited to a wallet.
func (r *TransferRepository) SumIncoming(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM transfers WHERE to_wallet_id = $1`
	err := q.GetContext(ctx, &total, query, walletID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum incoming transfers for wallet %d: %w", walletID, err)
	}
	return total, nil
}

// SumOutgoing sums transfer amounts and fees debited from a wallet.
func (r *TransferRepository) SumOutgoing(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Amount decimal.Decimal `db:"amount"`
		Fee    decimal.Decimal `db:"fee"`
	}
	query := `SELECT COALESCE(SUM(amount), 0) AS amount, COALESCE(SUM(fee), 0) AS fee
	          FROM transfers WHERE from_wallet_id = $1`
	err := q.GetContext(ctx, &row, query, walletID)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum outgoing transfers for wallet %d: %w", walletID, err)
	}
	return row.Amount, row.Fee, nil
}
