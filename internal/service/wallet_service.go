// internal/service/wallet_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/internal/util"
	"finledger/pkg/db"

	"github.com/shopspring/decimal"
)

// CreateWalletInput carries the fields needed to create a wallet.
type CreateWalletInput struct {
	Name           string
	Icon           *string
	Color          *string
	InitialBalance decimal.Decimal
	DisplayOrder   int
}

// UpdateWalletInput carries the optional fields of a wallet update. Nil fields
// are left unchanged. IsActive allows reactivating a soft-deleted wallet.
type UpdateWalletInput struct {
	Name         *string
	Icon         *string
	Color        *string
	DisplayOrder *int
	IsActive     *bool
}

// ReorderWalletItem assigns a display order to one wallet.
type ReorderWalletItem struct {
	ID           int64 `json:"id"`
	DisplayOrder int   `json:"display_order"`
}

// WalletService defines the interface for wallet management.
type WalletService interface {
	List(ctx context.Context, userID string) ([]domain.Wallet, error)
	Create(ctx context.Context, userID string, input CreateWalletInput) (*domain.Wallet, error)
	Get(ctx context.Context, userID string, walletID int64) (*domain.Wallet, error)
	Update(ctx context.Context, userID string, walletID int64, input UpdateWalletInput) (*domain.Wallet, error)
	SoftDelete(ctx context.Context, userID string, walletID int64) error
	Reorder(ctx context.Context, userID string, items []ReorderWalletItem) error
	// RecomputeBalance exposes the reconciler standalone for repair and audit tooling.
	RecomputeBalance(ctx context.Context, userID string, walletID int64) (decimal.Decimal, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	walletRepo repository.WalletRepository
	balances   BalanceService
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	balances BalanceService,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	return &walletService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		walletRepo: walletRepo,
		balances:   balances,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// List retrieves the user's active wallets ordered by display order.
func (s *walletService) List(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.ListWalletsByUser(ctx, s.dbExecutor, userID, true)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	return wallets, nil
}

// Create creates a new wallet after checking that no active wallet of the same
// name exists for the user. The current balance starts at the initial balance.
func (s *walletService) Create(ctx context.Context, userID string, input CreateWalletInput) (*domain.Wallet, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("wallet name is required: %w", util.ErrInvalidInput)
	}
	if input.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("initial balance cannot be negative: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create wallet: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create wallet: transaction controller does not implement DBExecutor")
	}

	_, err = s.walletRepo.GetActiveWalletByName(ctx, txExecutor, userID, input.Name)
	if err == nil {
		return nil, fmt.Errorf("wallet with this name already exists: %w", util.ErrDuplicateEntry)
	}
	if !errors.Is(err, util.ErrNotFound) {
		return nil, fmt.Errorf("create wallet: failed to check existing wallet: %w", err)
	}

	wallet := domain.NewWallet(userID, input.Name, input.Icon, input.Color, input.InitialBalance, input.DisplayOrder)
	if err := s.walletRepo.CreateWallet(ctx, txExecutor, wallet); err != nil {
		return nil, fmt.Errorf("create wallet: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create wallet: failed to commit transaction: %w", err)
	}

	return wallet, nil
}

// Get retrieves a single wallet owned by the user, active or not.
func (s *walletService) Get(ctx context.Context, userID string, walletID int64) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByIDAndUser(ctx, s.dbExecutor, walletID, userID)
	if err != nil {
		return nil, fmt.Errorf("get wallet: failed to get wallet %d: %w", walletID, err)
	}
	return wallet, nil
}

// Update applies a partial update to a wallet. Renames and reactivations are
// checked for collisions with other active wallets of the user.
func (s *walletService) Update(ctx context.Context, userID string, walletID int64, input UpdateWalletInput) (*domain.Wallet, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update wallet: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update wallet: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.walletRepo.GetWalletByIDAndUser(ctx, txExecutor, walletID, userID)
	if err != nil {
		return nil, fmt.Errorf("update wallet: failed to get wallet %d: %w", walletID, err)
	}

	wasActive := wallet.IsActive

	if input.Name != nil && *input.Name != wallet.Name {
		if *input.Name == "" {
			return nil, fmt.Errorf("wallet name is required: %w", util.ErrInvalidInput)
		}
		existing, err := s.walletRepo.GetActiveWalletByName(ctx, txExecutor, userID, *input.Name)
		if err == nil && existing.ID != walletID {
			return nil, fmt.Errorf("wallet with this name already exists: %w", util.ErrDuplicateEntry)
		}
		if err != nil && !errors.Is(err, util.ErrNotFound) {
			return nil, fmt.Errorf("update wallet: failed to check existing wallet: %w", err)
		}
		wallet.Name = *input.Name
	}
	if input.Icon != nil {
		wallet.Icon = input.Icon
	}
	if input.Color != nil {
		wallet.Color = input.Color
	}
	if input.DisplayOrder != nil {
		wallet.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		wallet.IsActive = *input.IsActive
	}

	// Reactivating must not bring back a name an active wallet took in the meantime.
	if !wasActive && wallet.IsActive {
		existing, err := s.walletRepo.GetActiveWalletByName(ctx, txExecutor, userID, wallet.Name)
		if err == nil && existing.ID != walletID {
			return nil, fmt.Errorf("wallet with this name already exists: %w", util.ErrDuplicateEntry)
		}
		if err != nil && !errors.Is(err, util.ErrNotFound) {
			return nil, fmt.Errorf("update wallet: failed to check existing wallet: %w", err)
		}
	}

	if err := s.walletRepo.UpdateWallet(ctx, txExecutor, wallet); err != nil {
		return nil, fmt.Errorf("update wallet: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update wallet: failed to commit transaction: %w", err)
	}

	return wallet, nil
}

// SoftDelete marks a wallet inactive. The row and its ledger history are kept,
// so the wallet can be reactivated and its balance stays reconstructible.
func (s *walletService) SoftDelete(ctx context.Context, userID string, walletID int64) error {
	wallet, err := s.walletRepo.GetWalletByIDAndUser(ctx, s.dbExecutor, walletID, userID)
	if err != nil {
		return fmt.Errorf("delete wallet: failed to get wallet %d: %w", walletID, err)
	}
	if err := s.walletRepo.SetWalletActive(ctx, s.dbExecutor, wallet.ID, false); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	return nil
}

// Reorder updates display orders for the given wallets. Items referencing
// wallets the user does not own are skipped rather than failing the batch.
func (s *walletService) Reorder(ctx context.Context, userID string, items []ReorderWalletItem) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("reorder wallets: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("reorder wallets: transaction controller does not implement DBExecutor")
	}

	for _, item := range items {
		_, err := s.walletRepo.GetWalletByIDAndUser(ctx, txExecutor, item.ID, userID)
		if errors.Is(err, util.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reorder wallets: failed to check wallet %d: %w", item.ID, err)
		}
		if err := s.walletRepo.SetDisplayOrder(ctx, txExecutor, item.ID, item.DisplayOrder); err != nil {
			return fmt.Errorf("reorder wallets: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("reorder wallets: failed to commit transaction: %w", err)
	}

	return nil
}

// RecomputeBalance derives the wallet's balance from its ledger history without
// touching the cached value. Intended for audit and repair tooling.
func (s *walletService) RecomputeBalance(ctx context.Context, userID string, walletID int64) (decimal.Decimal, error) {
	if _, err := s.walletRepo.GetWalletByIDAndUser(ctx, s.dbExecutor, walletID, userID); err != nil {
		return decimal.Zero, fmt.Errorf("recompute balance: failed to get wallet %d: %w", walletID, err)
	}
	balance, err := s.balances.Recompute(ctx, s.dbExecutor, walletID)
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
