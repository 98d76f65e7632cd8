// internal/repository/transfer_repo.go
package repository

import (
	"context"
	"time"

	"finledger/internal/domain"

	"github.com/shopspring/decimal"
)

// TransferFilter narrows a transfer listing. WalletID matches transfers where the
// wallet is either sender or receiver.
type TransferFilter struct {
	UserID    string
	WalletID  *int64
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// TransferRepository defines the interface for transfer data operations.
type TransferRepository interface {
	// CreateTransfer adds a new transfer record using the provided DBExecutor.
	CreateTransfer(ctx context.Context, q DBExecutor, transfer *domain.Transfer) error
	// GetTransferByIDAndUser retrieves a transfer by ID scoped to its owner.
	GetTransferByIDAndUser(ctx context.Context, q DBExecutor, id int64, userID string) (*domain.Transfer, error)
	// ListTransfers retrieves a filtered, paginated page of transfers ordered
	// newest-first by transfer date, tie-broken by creation time, plus the total
	// count matching the filter.
	ListTransfers(ctx context.Context, q DBExecutor, filter TransferFilter) ([]domain.Transfer, int64, error)
	// DeleteTransfer removes a transfer record.
	DeleteTransfer(ctx context.Context, q DBExecutor, id int64) error
	// SumIncoming sums transfer amounts credited to a wallet.
	SumIncoming(ctx context.Context, q DBExecutor, walletID int64) (decimal.Decimal, error)
	// SumOutgoing sums transfer amounts and fees debited from a wallet.
	SumOutgoing(ctx context.Context, q DBExecutor, walletID int64) (amount, fee decimal.Decimal, err error)
}
