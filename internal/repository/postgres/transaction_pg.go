// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct {
	// Stateless: methods receive a DBExecutor directly
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sqlx.DB) repository.TransactionRepository {
	return &TransactionRepository{}
}

const transactionColumns = `id, user_id, wallet_id, category_id, type, amount, description, notes, transaction_date, created_at, updated_at`

// CreateTransaction inserts a new transaction record using the provided DBExecutor.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (user_id, wallet_id, category_id, type, amount, description, notes, transaction_date, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		transaction.UserID,
		transaction.WalletID,
		transaction.CategoryID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.Notes,
		transaction.TransactionDate,
		transaction.CreatedAt,
		transaction.UpdatedAt,
	).Scan(&transaction.ID)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionByIDAndUser retrieves a transaction by ID scoped to its owner.
func (r *TransactionRepository) GetTransactionByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND user_id = $2`
	err := q.GetContext(ctx, &transaction, query, id, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction %d for user %s: %w", id, userID, err)
	}
	return &transaction, nil
}

// buildTransactionWhere assembles the WHERE clause shared by the listing and count
// queries from the filter's optional fields.
func buildTransactionWhere(filter repository.TransactionFilter) (string, []interface{}) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{filter.UserID}

	addCondition := func(expr string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(expr, len(args)))
	}

	if filter.WalletID != nil {
		addCondition("wallet_id = $%d", *filter.WalletID)
	}
	if filter.CategoryID != nil {
		addCondition("category_id = $%d", *filter.CategoryID)
	}
	if filter.Type != nil {
		addCondition("type = $%d", *filter.Type)
	}
	if filter.StartDate != nil {
		addCondition("transaction_date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("transaction_date <= $%d", *filter.EndDate)
	}

	return strings.Join(conditions, " AND "), args
}

// ListTransactions retrieves a paginated list of transactions matching the filter.
// It performs two queries: one for the data and one for the total count.
func (r *TransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, filter repository.TransactionFilter) ([]domain.Transaction, int64, error) {
	where, args := buildTransactionWhere(filter)

	transactions := []domain.Transaction{}
	query := fmt.Sprintf(`SELECT %s FROM transactions WHERE %s
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, transactionColumns, where, len(args)+1, len(args)+2)
	err := q.SelectContext(ctx, &transactions, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	var totalCount int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM transactions WHERE %s`, where)
	err = q.GetContext(ctx, &totalCount, countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return transactions, totalCount, nil
}

// ListRecentTransactions retrieves a user's most recent transactions.
func (r *TransactionRepository) ListRecentTransactions(ctx context.Context, q repository.DBExecutor, userID string, limit int) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1
		ORDER BY transaction_date DESC, created_at DESC LIMIT $2`
	err := q.SelectContext(ctx, &transactions, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions for user %s: %w", userID, err)
	}
	return transactions, nil
}

// UpdateTransaction persists the mutable fields of a transaction.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `UPDATE transactions
              SET wallet_id = $1, category_id = $2, type = $3, amount = $4, description = $5, notes = $6, transaction_date = $7, updated_at = $8
              WHERE id = $9`
	result, err := q.ExecContext(ctx, query,
		transaction.WalletID,
		transaction.CategoryID,
		transaction.Type,
		transaction.Amount,
		transaction.Description,
		transaction.Notes,
		transaction.TransactionDate,
		time.Now().UTC(),
		transaction.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %d: %w", transaction.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating transaction %d: %w", transaction.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction record.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting transaction %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrNotFound
	}
	return nil
}

// SumByWalletAndType sums transaction amounts of one type on one wallet.
func (r *TransactionRepository) SumByWalletAndType(ctx context.Context, q repository.DBExecutor, walletID int64, txType domain.TransactionType) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE wallet_id = $1 AND type = $2`
	err := q.GetContext(ctx, &total, query, walletID, txType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s transactions for wallet %d: %w", txType, walletID, err)
	}
	return total, nil
}

// SumByUserTypeAndRange sums a user's transaction amounts of one type inside an optional date range.
func (r *TransactionRepository) SumByUserTypeAndRange(ctx context.Context, q repository.DBExecutor, userID string, txType domain.TransactionType, start, end *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE user_id = $1 AND type = $2`
	args := []interface{}{userID, txType}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(` AND transaction_date >= $%d`, len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(` AND transaction_date <= $%d`, len(args))
	}

	var total decimal.Decimal
	err := q.GetContext(ctx, &total, query, args...)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s transactions for user %s: %w", txType, userID, err)
	}
	return total, nil
}

// CategoryTotals groups a user's transactions by category with optional type and date filters.
func (r *TransactionRepository) CategoryTotals(ctx context.Context, q repository.DBExecutor, userID string, txType *domain.TransactionType, start, end *time.Time) ([]repository.CategoryTotal, error) {
	query := `SELECT t.category_id,
	                 COALESCE(c.name, 'Uncategorized') AS category_name,
	                 c.icon AS category_icon,
	                 t.type,
	                 SUM(t.amount) AS total_amount,
	                 COUNT(*) AS count
	          FROM transactions t
	          LEFT JOIN categories c ON c.id = t.category_id
	          WHERE t.user_id = $1`
	args := []interface{}{userID}
	if txType != nil {
		args = append(args, *txType)
		query += fmt.Sprintf(` AND t.type = $%d`, len(args))
	}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(` AND t.transaction_date >= $%d`, len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(` AND t.transaction_date <= $%d`, len(args))
	}
	query += ` GROUP BY t.category_id, c.name, c.icon, t.type ORDER BY total_amount DESC`

	totals := []repository.CategoryTotal{}
	err := q.SelectContext(ctx, &totals, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group transactions by category for user %s: %w", userID, err)
	}
	return totals, nil
}
