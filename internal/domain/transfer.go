// internal/domain/transfer.go
package domain

import (
	"time"

	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Transfer represents a movement of money between two wallets owned by the same user.
// The source wallet is debited amount+fee, the destination is credited amount.
type Transfer struct {
	ID           int64           `db:"id" json:"id"`                       // Primary key, BIGSERIAL in DB
	UserID       string          `db:"user_id" json:"user_id"`             // Identity provider UID
	FromWalletID int64           `db:"from_wallet_id" json:"from_wallet_id"` // Source wallet, never equal to ToWalletID
	ToWalletID   int64           `db:"to_wallet_id" json:"to_wallet_id"`   // Destination wallet
	Amount       decimal.Decimal `db:"amount" json:"amount"`               // Always positive, NUMERIC(20, 4) in DB
	Fee          decimal.Decimal `db:"fee" json:"fee"`                     // Transfer fee, zero or positive, borne by the source wallet
	Description  *string         `db:"description" json:"description"`     // Optional description
	TransferDate time.Time       `db:"transfer_date" json:"transfer_date"` // Actual date of the transfer
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`       // Timestamp of record creation
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`       // Timestamp of last update
}

// NewTransfer creates a new Transfer instance.
func NewTransfer(
	userID string,
	fromWalletID, toWalletID int64,
	amount, fee decimal.Decimal,
	description *string,
	transferDate time.Time,
) *Transfer {
	now := time.Now().UTC()
	return &Transfer{
		UserID:       userID,
		FromWalletID: fromWalletID,
		ToWalletID:   toWalletID,
		Amount:       amount,
		Fee:          fee,
		Description:  description,
		TransferDate: transferDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
