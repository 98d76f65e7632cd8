// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"time"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/pkg/db"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetActiveWalletByName(ctx context.Context, q repository.DBExecutor, userID, name string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListWalletsByUser(ctx context.Context, q repository.DBExecutor, userID string, activeOnly bool) ([]domain.Wallet, error) {
	args := m.Called(ctx, q, userID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) UpdateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) SetWalletActive(ctx context.Context, q repository.DBExecutor, id int64, active bool) error {
	args := m.Called(ctx, q, id, active)
	return args.Error(0)
}

func (m *MockWalletRepository) SetDisplayOrder(ctx context.Context, q repository.DBExecutor, id int64, displayOrder int) error {
	args := m.Called(ctx, q, id, displayOrder)
	return args.Error(0)
}

func (m *MockWalletRepository) SetCurrentBalance(ctx context.Context, q repository.DBExecutor, id int64, balance decimal.Decimal) error {
	args := m.Called(ctx, q, id, balance)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	args := m.Called(ctx, q, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetCategoryByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Category, error) {
	args := m.Called(ctx, q, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategoryByNameAndType(ctx context.Context, q repository.DBExecutor, userID, name string, categoryType domain.CategoryType) (*domain.Category, error) {
	args := m.Called(ctx, q, userID, name, categoryType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoriesByUser(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Category, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, q repository.DBExecutor, category *domain.Category) error {
	args := m.Called(ctx, q, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCategory(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) CountCategoriesByUser(ctx context.Context, q repository.DBExecutor, userID string) (int64, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Transaction, error) {
	args := m.Called(ctx, q, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, q repository.DBExecutor, filter repository.TransactionFilter) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) ListRecentTransactions(ctx context.Context, q repository.DBExecutor, userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) SumByWalletAndType(ctx context.Context, q repository.DBExecutor, walletID int64, txType domain.TransactionType) (decimal.Decimal, error) {
	args := m.Called(ctx, q, walletID, txType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SumByUserTypeAndRange(ctx context.Context, q repository.DBExecutor, userID string, txType domain.TransactionType, start, end *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID, txType, start, end)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) CategoryTotals(ctx context.Context, q repository.DBExecutor, userID string, txType *domain.TransactionType, start, end *time.Time) ([]repository.CategoryTotal, error) {
	args := m.Called(ctx, q, userID, txType, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryTotal), args.Error(1)
}

// MockTransferRepository is a mock implementation of repository.TransferRepository.
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) CreateTransfer(ctx context.Context, q repository.DBExecutor, transfer *domain.Transfer) error {
	args := m.Called(ctx, q, transfer)
	return args.Error(0)
}

func (m *MockTransferRepository) GetTransferByIDAndUser(ctx context.Context, q repository.DBExecutor, id int64, userID string) (*domain.Transfer, error) {
	args := m.Called(ctx, q, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transfer), args.Error(1)
}

func (m *MockTransferRepository) ListTransfers(ctx context.Context, q repository.DBExecutor, filter repository.TransferFilter) ([]domain.Transfer, int64, error) {
	args := m.Called(ctx, q, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Transfer), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransferRepository) DeleteTransfer(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockTransferRepository) SumIncoming(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, q, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransferRepository) SumOutgoing(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, q, walletID)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

// MockBalanceService is a mock implementation of BalanceService.
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) Recompute(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, q, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) UpdateBalance(ctx context.Context, q repository.DBExecutor, walletID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, q, walletID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockDBBeginner is a mock implementation of db.DBTxBeginner.
type MockDBBeginner struct {
	mock.Mock
}

func (m *MockDBBeginner) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	return &sqlx.Tx{}, args.Error(1)
}

// MockTxController is a mock implementation of db.TxController. It embeds
// MockDBExecutor so it also satisfies repository.DBExecutor, mirroring how a
// real *sqlx.Tx serves both roles.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// txFuncs returns begin/commit/rollback functions bound to the given mock
// controller, so service constructors can be wired without a real database.
func txFuncs(txc *MockTxController) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	begin := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return txc, nil
	}
	commit := func(tx db.TxController) error {
		return txc.Commit()
	}
	rollback := func(tx db.TxController) {
		_ = txc.Rollback()
	}
	return begin, commit, rollback
}
