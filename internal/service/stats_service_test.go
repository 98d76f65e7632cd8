// internal/service/stats_service_test.go
package service

import (
	"context"
	"testing"

	"finledger/internal/domain"
	"finledger/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsDashboard(t *testing.T) {
	userID := "firebase-uid-1"

	t.Run("AggregatesActiveWallets", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewStatsService(mockExecutor, mockWalletRepo, mockTransactionRepo)

		wallets := []domain.Wallet{
			{ID: 1, Name: "Cash", CurrentBalance: decimal.NewFromInt(100), DisplayOrder: 0},
			{ID: 2, Name: "Bank BCA", CurrentBalance: decimal.NewFromInt(250), DisplayOrder: 1},
		}

		mockWalletRepo.On("ListWalletsByUser", ctx, mockExecutor, userID, true).Return(wallets, nil).Once()
		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeIncome, mock.Anything, mock.Anything).Return(decimal.NewFromInt(500), nil).Once()
		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeExpense, mock.Anything, mock.Anything).Return(decimal.NewFromInt(180), nil).Once()
		mockTransactionRepo.On("ListRecentTransactions", ctx, mockExecutor, userID, 10).Return([]domain.Transaction{}, nil).Once()

		summary, err := svc.Dashboard(ctx, userID)

		assert.NoError(t, err)
		assert.True(t, summary.TotalBalance.Equal(decimal.NewFromInt(350)))
		assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(500)))
		assert.True(t, summary.TotalExpense.Equal(decimal.NewFromInt(180)))
		assert.True(t, summary.NetIncome.Equal(decimal.NewFromInt(320)))
		assert.Len(t, summary.Wallets, 2)

		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo)
	})

	t.Run("EmptyState", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewStatsService(mockExecutor, mockWalletRepo, mockTransactionRepo)

		mockWalletRepo.On("ListWalletsByUser", ctx, mockExecutor, userID, true).Return([]domain.Wallet{}, nil).Once()
		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeIncome, mock.Anything, mock.Anything).Return(decimal.Zero, nil).Once()
		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeExpense, mock.Anything, mock.Anything).Return(decimal.Zero, nil).Once()
		mockTransactionRepo.On("ListRecentTransactions", ctx, mockExecutor, userID, 10).Return([]domain.Transaction{}, nil).Once()

		summary, err := svc.Dashboard(ctx, userID)

		assert.NoError(t, err)
		assert.True(t, summary.TotalBalance.IsZero())
		assert.Empty(t, summary.Wallets)
	})
}

func TestStatsMonthly(t *testing.T) {
	userID := "firebase-uid-1"

	t.Run("DefaultsToSixMonths", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewStatsService(mockExecutor, mockWalletRepo, mockTransactionRepo)

		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeIncome, mock.Anything, mock.Anything).Return(decimal.NewFromInt(100), nil).Times(6)
		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeExpense, mock.Anything, mock.Anything).Return(decimal.NewFromInt(40), nil).Times(6)

		stats, err := svc.Monthly(ctx, userID, 2025, 0)

		assert.NoError(t, err)
		assert.Len(t, stats, 6)
		for _, s := range stats {
			assert.True(t, s.Net.Equal(decimal.NewFromInt(60)))
		}

		mock.AssertExpectationsForObjects(t, mockTransactionRepo)
	})

	t.Run("ExplicitWindow", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewStatsService(mockExecutor, mockWalletRepo, mockTransactionRepo)

		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeIncome, mock.Anything, mock.Anything).Return(decimal.Zero, nil).Times(3)
		mockTransactionRepo.On("SumByUserTypeAndRange", ctx, mockExecutor, userID, domain.TransactionTypeExpense, mock.Anything, mock.Anything).Return(decimal.Zero, nil).Times(3)

		stats, err := svc.Monthly(ctx, userID, 2025, 3)

		assert.NoError(t, err)
		assert.Len(t, stats, 3)
	})
}

func TestStatsByCategory(t *testing.T) {
	userID := "firebase-uid-1"

	t.Run("ReturnsTotals", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewStatsService(mockExecutor, mockWalletRepo, mockTransactionRepo)

		expenseType := domain.TransactionTypeExpense
		totals := []repository.CategoryTotal{
			{CategoryName: "Food & Drink", Type: domain.TransactionTypeExpense, TotalAmount: decimal.NewFromInt(120), Count: 4},
		}

		mockTransactionRepo.On("CategoryTotals", ctx, mockExecutor, userID, &expenseType, mock.Anything, mock.Anything).Return(totals, nil).Once()

		got, err := svc.ByCategory(ctx, userID, &expenseType, nil, nil)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.True(t, got[0].TotalAmount.Equal(decimal.NewFromInt(120)))
	})

	t.Run("RepositoryErrorSurfaces", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewStatsService(mockExecutor, mockWalletRepo, mockTransactionRepo)

		mockTransactionRepo.On("CategoryTotals", ctx, mockExecutor, userID, (*domain.TransactionType)(nil), mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		_, err := svc.ByCategory(ctx, userID, nil, nil, nil)

		assert.Error(t, err)
	})
}
