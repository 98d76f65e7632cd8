// internal/service/balance_service.go
package service

import (
	"context"
	"fmt"

	"finledger/internal/domain"
	"finledger/internal/repository"

	"github.com/shopspring/decimal"
)

// BalanceService derives wallet balances from the ledger history. The cached
// current_balance column is treated strictly as a materialized view: it is never
// read as input here, only written. Every balance-affecting mutation calls
// UpdateBalance inside the same database transaction as the row change, so a
// missed or failed reconciliation can never leave drift behind: the next
// recomputation starts from first principles again.
type BalanceService interface {
	// Recompute derives a wallet's authoritative balance:
	// initial + income - expense + transfers in - transfers out - fees on transfers out.
	// Returns util.ErrNotFound (wrapped) when the wallet does not resolve.
	Recompute(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error)
	// UpdateBalance recomputes and persists the balance into the wallet row.
	UpdateBalance(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error)
}

// balanceService implements the BalanceService interface.
type balanceService struct {
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	transferRepo    repository.TransferRepository
}

// NewBalanceService creates a new instance of BalanceService.
func NewBalanceService(
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	transferRepo repository.TransferRepository,
) BalanceService {
	return &balanceService{
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		transferRepo:    transferRepo,
	}
}

// Recompute reads the wallet's initial balance and the aggregate sums over its
// ledger entries, then combines them. It runs on whatever executor the caller
// provides, so it sees uncommitted rows when invoked inside a transaction.
func (s *balanceService) Recompute(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error) {
	wallet, err := s.walletRepo.GetWalletByID(ctx, q, walletID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recompute balance: failed to get wallet %d: %w", walletID, err)
	}

	income, err := s.transactionRepo.SumByWalletAndType(ctx, q, walletID, domain.TransactionTypeIncome)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recompute balance: failed to sum income for wallet %d: %w", walletID, err)
	}

	expense, err := s.transactionRepo.SumByWalletAndType(ctx, q, walletID, domain.TransactionTypeExpense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recompute balance: failed to sum expense for wallet %d: %w", walletID, err)
	}

	transferIn, err := s.transferRepo.SumIncoming(ctx, q, walletID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recompute balance: failed to sum incoming transfers for wallet %d: %w", walletID, err)
	}

	transferOut, transferFee, err := s.transferRepo.SumOutgoing(ctx, q, walletID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recompute balance: failed to sum outgoing transfers for wallet %d: %w", walletID, err)
	}

	balance := wallet.InitialBalance.
		Add(income).
		Sub(expense).
		Add(transferIn).
		Sub(transferOut).
		Sub(transferFee)

	return balance, nil
}

// UpdateBalance recomputes the wallet's balance and persists it into the wallet row.
func (s *balanceService) UpdateBalance(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error) {
	balance, err := s.Recompute(ctx, q, walletID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := s.walletRepo.SetCurrentBalance(ctx, q, walletID, balance); err != nil {
		return decimal.Zero, fmt.Errorf("update balance: failed to persist balance for wallet %d: %w", walletID, err)
	}
	return balance, nil
}
