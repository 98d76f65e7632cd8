// internal/service/transfer_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
	"finledger/pkg/db"

	"github.com/shopspring/decimal"
)

// CreateTransferInput carries the fields needed to create a transfer.
type CreateTransferInput struct {
	FromWalletID int64
	ToWalletID   int64
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	Description  *string
	TransferDate time.Time
}

// TransferService orchestrates the atomic two-wallet balance mutation around
// transfer creation and deletion. The transfer row and both wallet balance
// updates commit together or not at all.
type TransferService interface {
	Create(ctx context.Context, userID string, input CreateTransferInput) (*domain.Transfer, error)
	Delete(ctx context.Context, userID string, transferID int64) error
	Get(ctx context.Context, userID string, transferID int64) (*domain.Transfer, error)
	List(ctx context.Context, filter repository.TransferFilter) ([]domain.Transfer, int64, error)
}

// transferService implements the TransferService interface.
type transferService struct {
	dbBeginner   db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor   repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	walletRepo   repository.WalletRepository
	transferRepo repository.TransferRepository
	balances     BalanceService
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewTransferService creates a new instance of TransferService.
func NewTransferService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transferRepo repository.TransferRepository,
	balances BalanceService,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TransferService {
	return &transferService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		walletRepo:   walletRepo,
		transferRepo: transferRepo,
		balances:     balances,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// Create validates and executes a transfer. Validation fails fast in a fixed
// order: self-transfer, amount, fee, source wallet, destination wallet, solvency.
// On success the transfer row insert and both wallet balance updates commit as
// one database transaction; the balances are re-derived from the ledger history
// rather than adjusted arithmetically.
func (s *transferService) Create(ctx context.Context, userID string, input CreateTransferInput) (*domain.Transfer, error) {
	if input.FromWalletID == input.ToWalletID {
		return nil, util.ErrSameWalletTransfer
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("transfer amount must be greater than 0: %w", util.ErrInvalidInput)
	}
	if input.Fee.IsNegative() {
		return nil, fmt.Errorf("transfer fee cannot be negative: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create transfer: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create transfer: transaction controller does not implement DBExecutor")
	}

	fromWallet, err := s.activeOwnedWallet(ctx, txExecutor, input.FromWalletID, userID)
	if err != nil {
		return nil, fmt.Errorf("create transfer: source wallet: %w", err)
	}
	if _, err := s.activeOwnedWallet(ctx, txExecutor, input.ToWalletID, userID); err != nil {
		return nil, fmt.Errorf("create transfer: destination wallet: %w", err)
	}

	// Solvency is checked against the derived balance, not the cached column, so a
	// stale cache can neither block a valid transfer nor let an invalid one through.
	currentBalance, err := s.balances.Recompute(ctx, txExecutor, fromWallet.ID)
	if err != nil {
		return nil, fmt.Errorf("create transfer: %w", err)
	}
	required := input.Amount.Add(input.Fee)
	if currentBalance.LessThan(required) {
		return nil, util.NewInsufficientBalanceError(currentBalance, required)
	}

	transfer := domain.NewTransfer(userID, input.FromWalletID, input.ToWalletID, input.Amount, input.Fee, input.Description, input.TransferDate)
	if err := s.transferRepo.CreateTransfer(ctx, txExecutor, transfer); err != nil {
		return nil, fmt.Errorf("create transfer: failed to create transfer record: %w", err)
	}

	if _, err := s.balances.UpdateBalance(ctx, txExecutor, input.FromWalletID); err != nil {
		return nil, fmt.Errorf("create transfer: failed to update source wallet balance: %w", err)
	}
	if _, err := s.balances.UpdateBalance(ctx, txExecutor, input.ToWalletID); err != nil {
		return nil, fmt.Errorf("create transfer: failed to update destination wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create transfer: failed to commit transaction: %w", err)
	}

	return transfer, nil
}

// Delete removes a transfer and reverses both balance effects. No solvency check
// applies on reversal: the destination wallet may go negative if its funds were
// spent since, which mirrors real-world overdraft on reversal.
func (s *transferService) Delete(ctx context.Context, userID string, transferID int64) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete transfer: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete transfer: transaction controller does not implement DBExecutor")
	}

	transfer, err := s.transferRepo.GetTransferByIDAndUser(ctx, txExecutor, transferID, userID)
	if err != nil {
		return fmt.Errorf("delete transfer: failed to get transfer %d: %w", transferID, err)
	}

	if err := s.transferRepo.DeleteTransfer(ctx, txExecutor, transfer.ID); err != nil {
		return fmt.Errorf("delete transfer: failed to delete transfer record: %w", err)
	}

	if _, err := s.balances.UpdateBalance(ctx, txExecutor, transfer.FromWalletID); err != nil {
		return fmt.Errorf("delete transfer: failed to update source wallet balance: %w", err)
	}
	if _, err := s.balances.UpdateBalance(ctx, txExecutor, transfer.ToWalletID); err != nil {
		return fmt.Errorf("delete transfer: failed to update destination wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete transfer: failed to commit transaction: %w", err)
	}

	return nil
}

// Get retrieves a single transfer owned by the user.
func (s *transferService) Get(ctx context.Context, userID string, transferID int64) (*domain.Transfer, error) {
	transfer, err := s.transferRepo.GetTransferByIDAndUser(ctx, s.dbExecutor, transferID, userID)
	if err != nil {
		return nil, fmt.Errorf("get transfer: failed to get transfer %d: %w", transferID, err)
	}
	return transfer, nil
}

// List retrieves a filtered, paginated page of the user's transfers with the total count.
func (s *transferService) List(ctx context.Context, filter repository.TransferFilter) ([]domain.Transfer, int64, error) {
	transfers, total, err := s.transferRepo.ListTransfers(ctx, s.dbExecutor, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list transfers: %w", err)
	}
	return transfers, total, nil
}

// activeOwnedWallet resolves a wallet that must exist, belong to the user, and be
// active. All three failures surface as not-found so callers cannot probe for the
// existence of other users' wallets.
func (s *transferService) activeOwnedWallet(ctx context.Context, q repository.DBExecutor, walletID int64, userID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByIDAndUser(ctx, q, walletID, userID)
	if err != nil {
		return nil, err
	}
	if !wallet.IsActive {
		return nil, util.ErrNotFound
	}
	return wallet, nil
}
