// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the direction of a financial transaction. The type stored
// on the transaction row is the canonical source of truth for balance computation;
// the category, when present, is classification metadata and must agree with it.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether the transaction type is one of the known values.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense entry on a wallet.
type Transaction struct {
	ID              int64           `db:"id" json:"id"`                             // Primary key, BIGSERIAL in DB
	UserID          string          `db:"user_id" json:"user_id"`                   // Identity provider UID
	WalletID        int64           `db:"wallet_id" json:"wallet_id"`               // Wallet whose balance this entry affects
	CategoryID      *int64          `db:"category_id" json:"category_id"`           // Nullable: set to NULL when the category is deleted
	Type            TransactionType `db:"type" json:"type"`                         // income or expense
	Amount          decimal.Decimal `db:"amount" json:"amount"`                     // Always positive, NUMERIC(20, 4) in DB
	Description     *string         `db:"description" json:"description"`           // Optional description
	Notes           *string         `db:"notes" json:"notes"`                       // Optional free-form notes
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"` // Actual date of the transaction
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`             // Timestamp of record creation
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`             // Timestamp of last update
}

// NewTransaction creates a new Transaction instance.
func NewTransaction(
	userID string,
	walletID int64,
	categoryID *int64,
	txType TransactionType,
	amount decimal.Decimal,
	description, notes *string,
	transactionDate time.Time,
) *Transaction {
	now := time.Now().UTC()
	return &Transaction{
		UserID:          userID,
		WalletID:        walletID,
		CategoryID:      categoryID,
		Type:            txType,
		Amount:          amount,
		Description:     description,
		Notes:           notes,
		TransactionDate: transactionDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
