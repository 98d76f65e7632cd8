// internal/service/transaction_service.go
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

// CreateTransactionInput carries the fields needed to create a transaction.
type CreateTransactionInput struct {
	WalletID        int64
	CategoryID      *int64
	Type            domain.TransactionType
	Amount          decimal.Decimal
	Description     *string
	Notes           *string
	TransactionDate time.Time
}

// UpdateTransactionInput carries the optional fields of a transaction update.
// Nil fields are left unchanged. A nil CategoryID keeps the current category;
// set ClearCategory to detach the transaction from its category instead.
type UpdateTransactionInput struct {
	WalletID        *int64
	CategoryID      *int64
	ClearCategory   bool
	Type            *domain.TransactionType
	Amount          *decimal.Decimal
	Description     *string
	Notes           *string
	TransactionDate *time.Time
}

// TransactionService handles income/expense entries. Every mutation identifies
// each wallet whose ledger history changed (the transaction's wallet before the
// change and, on a wallet move, after) and reconciles its balance inside the
// same database transaction as the row change.
type TransactionService interface {
	Create(ctx context.Context, userID string, input CreateTransactionInput) (*domain.Transaction, error)
	Update(ctx context.Context, userID string, transactionID int64, input UpdateTransactionInput) (*domain.Transaction, error)
	Delete(ctx context.Context, userID string, transactionID int64) error
	Get(ctx context.Context, userID string, transactionID int64) (*domain.Transaction, error)
	List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, int64, error)
	Recent(ctx context.Context, userID string) ([]domain.Transaction, error)
}

// recentTransactionLimit caps the dashboard's recent-transactions list.
const recentTransactionLimit = 10

// transactionService implements the TransactionService interface.
type transactionService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	categoryRepo    repository.CategoryRepository
	transactionRepo repository.TransactionRepository
	balances        BalanceService
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewTransactionService creates a new instance of TransactionService.
func NewTransactionService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	categoryRepo repository.CategoryRepository,
	transactionRepo repository.TransactionRepository,
	balances BalanceService,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TransactionService {
	return &transactionService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		balances:        balances,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// Create validates ownership and inserts a new transaction, reconciling the
// target wallet's balance in the same database transaction.
func (s *transactionService) Create(ctx context.Context, userID string, input CreateTransactionInput) (*domain.Transaction, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("transaction type must be income or expense: %w", util.ErrInvalidInput)
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("transaction amount must be greater than 0: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create transaction: transaction controller does not implement DBExecutor")
	}

	// Ownership failures surface as not-found to avoid leaking wallet existence.
	if _, err := s.walletRepo.GetWalletByIDAndUser(ctx, txExecutor, input.WalletID, userID); err != nil {
		return nil, fmt.Errorf("create transaction: wallet %d: %w", input.WalletID, err)
	}

	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, txExecutor, *input.CategoryID, userID, input.Type); err != nil {
			return nil, fmt.Errorf("create transaction: %w", err)
		}
	}

	transaction := domain.NewTransaction(userID, input.WalletID, input.CategoryID, input.Type, input.Amount, input.Description, input.Notes, input.TransactionDate)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("create transaction: failed to create transaction record: %w", err)
	}

	if _, err := s.balances.UpdateBalance(ctx, txExecutor, input.WalletID); err != nil {
		return nil, fmt.Errorf("create transaction: failed to update wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create transaction: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Update applies a partial update to a transaction. When the wallet changes,
// both the old and new wallet balances are reconciled before the commit.
func (s *transactionService) Update(ctx context.Context, userID string, transactionID int64, input UpdateTransactionInput) (*domain.Transaction, error) {
	if input.Type != nil && !input.Type.Valid() {
		return nil, fmt.Errorf("transaction type must be income or expense: %w", util.ErrInvalidInput)
	}
	if input.Amount != nil && input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("transaction amount must be greater than 0: %w", util.ErrInvalidInput)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("update transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("update transaction: transaction controller does not implement DBExecutor")
	}

	transaction, err := s.transactionRepo.GetTransactionByIDAndUser(ctx, txExecutor, transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("update transaction: failed to get transaction %d: %w", transactionID, err)
	}

	oldWalletID := transaction.WalletID

	if input.WalletID != nil && *input.WalletID != transaction.WalletID {
		if _, err := s.walletRepo.GetWalletByIDAndUser(ctx, txExecutor, *input.WalletID, userID); err != nil {
			return nil, fmt.Errorf("update transaction: new wallet %d: %w", *input.WalletID, err)
		}
		transaction.WalletID = *input.WalletID
	}
	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Description != nil {
		transaction.Description = input.Description
	}
	if input.Notes != nil {
		transaction.Notes = input.Notes
	}
	if input.TransactionDate != nil {
		transaction.TransactionDate = *input.TransactionDate
	}
	if input.ClearCategory {
		transaction.CategoryID = nil
	} else if input.CategoryID != nil {
		if err := s.checkCategory(ctx, txExecutor, *input.CategoryID, userID, transaction.Type); err != nil {
			return nil, fmt.Errorf("update transaction: %w", err)
		}
		transaction.CategoryID = input.CategoryID
	} else if transaction.CategoryID != nil && input.Type != nil {
		// A type change must not leave the row pointing at a category of the other type.
		if err := s.checkCategory(ctx, txExecutor, *transaction.CategoryID, userID, transaction.Type); err != nil {
			return nil, fmt.Errorf("update transaction: %w", err)
		}
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("update transaction: failed to update transaction record: %w", err)
	}

	if _, err := s.balances.UpdateBalance(ctx, txExecutor, oldWalletID); err != nil {
		return nil, fmt.Errorf("update transaction: failed to update old wallet balance: %w", err)
	}
	if transaction.WalletID != oldWalletID {
		if _, err := s.balances.UpdateBalance(ctx, txExecutor, transaction.WalletID); err != nil {
			return nil, fmt.Errorf("update transaction: failed to update new wallet balance: %w", err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("update transaction: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Delete removes a transaction and reconciles its wallet's balance in the same
// database transaction.
func (s *transactionService) Delete(ctx context.Context, userID string, transactionID int64) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("delete transaction: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("delete transaction: transaction controller does not implement DBExecutor")
	}

	transaction, err := s.transactionRepo.GetTransactionByIDAndUser(ctx, txExecutor, transactionID, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: failed to get transaction %d: %w", transactionID, err)
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, txExecutor, transaction.ID); err != nil {
		return fmt.Errorf("delete transaction: failed to delete transaction record: %w", err)
	}

	if _, err := s.balances.UpdateBalance(ctx, txExecutor, transaction.WalletID); err != nil {
		return fmt.Errorf("delete transaction: failed to update wallet balance: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("delete transaction: failed to commit transaction: %w", err)
	}

	return nil
}

// Get retrieves a single transaction owned by the user.
func (s *transactionService) Get(ctx context.Context, userID string, transactionID int64) (*domain.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransactionByIDAndUser(ctx, s.dbExecutor, transactionID, userID)
	if err != nil {
		return nil, fmt.Errorf("get transaction: failed to get transaction %d: %w", transactionID, err)
	}
	return transaction, nil
}

// List retrieves a filtered, paginated page of the user's transactions with the total count.
func (s *transactionService) List(ctx context.Context, filter repository.TransactionFilter) ([]domain.Transaction, int64, error) {
	transactions, total, err := s.transactionRepo.ListTransactions(ctx, s.dbExecutor, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return transactions, total, nil
}

// Recent retrieves the user's latest transactions for the dashboard.
func (s *transactionService) Recent(ctx context.Context, userID string) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.ListRecentTransactions(ctx, s.dbExecutor, userID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}
	return transactions, nil
}

// checkCategory verifies that the category exists, belongs to the user, and
// agrees with the transaction's type.
func (s *transactionService) checkCategory(ctx context.Context, q repository.DBExecutor, categoryID int64, userID string, txType domain.TransactionType) error {
	category, err := s.categoryRepo.GetCategoryByIDAndUser(ctx, q, categoryID, userID)
	if err != nil {
		return fmt.Errorf("category %d: %w", categoryID, err)
	}
	if string(category.Type) != string(txType) {
		return fmt.Errorf("category '%s' is %s but transaction is %s: %w", category.Name, category.Type, txType, util.ErrInvalidInput)
	}
	return nil
}
