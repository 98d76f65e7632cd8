// internal/repository/transaction_repo.go
package repository

import (
	"context"
	"time"

	"finledger/internal/domain"

	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. All optional fields are
// pointers; nil means "no filter".
type TransactionFilter struct {
	UserID     string
	WalletID   *int64
	CategoryID *int64
	Type       *domain.TransactionType
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// CategoryTotal is one row of the per-category statistics breakdown.
type CategoryTotal struct {
	CategoryID   *int64                 `db:"category_id" json:"category_id"`
	CategoryName string                 `db:"category_name" json:"category_name"`
	CategoryIcon *string                `db:"category_icon" json:"category_icon"`
	Type         domain.TransactionType `db:"type" json:"type"`
	TotalAmount  decimal.Decimal        `db:"total_amount" json:"total_amount"`
	Count        int64                  `db:"count" json:"count"`
}

// TransactionRepository defines the interface for transaction data operations.
type TransactionRepository interface {
	// CreateTransaction adds a new transaction record using the provided DBExecutor.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionByIDAndUser retrieves a transaction by ID scoped to its owner.
	GetTransactionByIDAndUser(ctx context.Context, q DBExecutor, id int64, userID string) (*domain.Transaction, error)
	// ListTransactions retrieves a filtered, paginated page of transactions ordered
	// newest-first by transaction date, tie-broken by creation time, plus the total
	// count matching the filter.
	ListTransactions(ctx context.Context, q DBExecutor, filter TransactionFilter) ([]domain.Transaction, int64, error)
	// ListRecentTransactions retrieves a user's most recent transactions.
	ListRecentTransactions(ctx context.Context, q DBExecutor, userID string, limit int) ([]domain.Transaction, error)
	// UpdateTransaction persists the mutable fields of a transaction.
	UpdateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// DeleteTransaction removes a transaction record.
	DeleteTransaction(ctx context.Context, q DBExecutor, id int64) error
	// SumByWalletAndType sums transaction amounts of one type on one wallet.
	// The reconciler derives balances from these sums.
	SumByWalletAndType(ctx context.Context, q DBExecutor, walletID int64, txType domain.TransactionType) (decimal.Decimal, error)
	// SumByUserTypeAndRange sums a user's transaction amounts of one type inside an
	// optional date range. Used by dashboard and statistics.
	SumByUserTypeAndRange(ctx context.Context, q DBExecutor, userID string, txType domain.TransactionType, start, end *time.Time) (decimal.Decimal, error)
	// CategoryTotals groups a user's transactions by category with optional type and
	// date filters, ordered by total amount descending.
	CategoryTotals(ctx context.Context, q DBExecutor, userID string, txType *domain.TransactionType, start, end *time.Time) ([]CategoryTotal, error)
}
