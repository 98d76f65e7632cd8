// internal/service/balance_service_test.go
package service

import (
	"context"
	"testing"

	"finledger/internal/domain"
	"finledger/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestBalanceRecompute(t *testing.T) {
	walletID := int64(1)

	t.Run("CombinesAllLedgerComponents", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTransferRepo := new(MockTransferRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewBalanceService(mockWalletRepo, mockTransactionRepo, mockTransferRepo)

		wallet := &domain.Wallet{
			ID:             walletID,
			InitialBalance: decimal.NewFromInt(1000),
			// A drifted cache must not influence the result.
			CurrentBalance: decimal.NewFromInt(-9999),
		}

		mockWalletRepo.On("GetWalletByID", ctx, mockExecutor, walletID).Return(wallet, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeIncome).Return(decimal.NewFromInt(300), nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeExpense).Return(decimal.NewFromInt(120), nil).Once()
		mockTransferRepo.On("SumIncoming", ctx, mockExecutor, walletID).Return(decimal.NewFromInt(50), nil).Once()
		mockTransferRepo.On("SumOutgoing", ctx, mockExecutor, walletID).Return(decimal.NewFromInt(80), decimal.NewFromInt(3), nil).Once()

		balance, err := svc.Recompute(ctx, mockExecutor, walletID)

		assert.NoError(t, err)
		// 1000 + 300 - 120 + 50 - 80 - 3
		assert.True(t, balance.Equal(decimal.NewFromInt(1147)), "got %s", balance)

		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo, mockTransferRepo)
	})

	t.Run("EmptyLedgerYieldsInitialBalance", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTransferRepo := new(MockTransferRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewBalanceService(mockWalletRepo, mockTransactionRepo, mockTransferRepo)

		wallet := &domain.Wallet{
			ID:             walletID,
			InitialBalance: decimal.NewFromFloat(250.75),
		}

		mockWalletRepo.On("GetWalletByID", ctx, mockExecutor, walletID).Return(wallet, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeIncome).Return(decimal.Zero, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeExpense).Return(decimal.Zero, nil).Once()
		mockTransferRepo.On("SumIncoming", ctx, mockExecutor, walletID).Return(decimal.Zero, nil).Once()
		mockTransferRepo.On("SumOutgoing", ctx, mockExecutor, walletID).Return(decimal.Zero, decimal.Zero, nil).Once()

		balance, err := svc.Recompute(ctx, mockExecutor, walletID)

		assert.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromFloat(250.75)))
	})

	t.Run("NegativeResultAllowed", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTransferRepo := new(MockTransferRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewBalanceService(mockWalletRepo, mockTransactionRepo, mockTransferRepo)

		wallet := &domain.Wallet{ID: walletID, InitialBalance: decimal.NewFromInt(100)}

		mockWalletRepo.On("GetWalletByID", ctx, mockExecutor, walletID).Return(wallet, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeIncome).Return(decimal.Zero, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeExpense).Return(decimal.NewFromInt(300), nil).Once()
		mockTransferRepo.On("SumIncoming", ctx, mockExecutor, walletID).Return(decimal.Zero, nil).Once()
		mockTransferRepo.On("SumOutgoing", ctx, mockExecutor, walletID).Return(decimal.Zero, decimal.Zero, nil).Once()

		balance, err := svc.Recompute(ctx, mockExecutor, walletID)

		assert.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(-200)))
	})

	t.Run("WalletNotFound", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTransferRepo := new(MockTransferRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewBalanceService(mockWalletRepo, mockTransactionRepo, mockTransferRepo)

		mockWalletRepo.On("GetWalletByID", ctx, mockExecutor, walletID).Return(nil, util.ErrNotFound).Once()

		_, err := svc.Recompute(ctx, mockExecutor, walletID)

		assert.ErrorIs(t, err, util.ErrNotFound)
		mockTransactionRepo.AssertNotCalled(t, "SumByWalletAndType", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestBalanceUpdateBalance(t *testing.T) {
	walletID := int64(1)

	t.Run("PersistsRecomputedBalance", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTransferRepo := new(MockTransferRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewBalanceService(mockWalletRepo, mockTransactionRepo, mockTransferRepo)

		wallet := &domain.Wallet{ID: walletID, InitialBalance: decimal.NewFromInt(100)}

		mockWalletRepo.On("GetWalletByID", ctx, mockExecutor, walletID).Return(wallet, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeIncome).Return(decimal.NewFromInt(40), nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeExpense).Return(decimal.NewFromInt(10), nil).Once()
		mockTransferRepo.On("SumIncoming", ctx, mockExecutor, walletID).Return(decimal.Zero, nil).Once()
		mockTransferRepo.On("SumOutgoing", ctx, mockExecutor, walletID).Return(decimal.Zero, decimal.Zero, nil).Once()
		mockWalletRepo.On("SetCurrentBalance", ctx, mockExecutor, walletID, mock.MatchedBy(func(b decimal.Decimal) bool {
			return b.Equal(decimal.NewFromInt(130))
		})).Return(nil).Once()

		balance, err := svc.UpdateBalance(ctx, mockExecutor, walletID)

		assert.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(130)))

		mock.AssertExpectationsForObjects(t, mockWalletRepo, mockTransactionRepo, mockTransferRepo)
	})

	t.Run("PersistFailureSurfaces", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTransferRepo := new(MockTransferRepository)
		mockExecutor := new(MockDBExecutor)

		svc := NewBalanceService(mockWalletRepo, mockTransactionRepo, mockTransferRepo)

		wallet := &domain.Wallet{ID: walletID, InitialBalance: decimal.Zero}

		mockWalletRepo.On("GetWalletByID", ctx, mockExecutor, walletID).Return(wallet, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeIncome).Return(decimal.Zero, nil).Once()
		mockTransactionRepo.On("SumByWalletAndType", ctx, mockExecutor, walletID, domain.TransactionTypeExpense).Return(decimal.Zero, nil).Once()
		mockTransferRepo.On("SumIncoming", ctx, mockExecutor, walletID).Return(decimal.Zero, nil).Once()
		mockTransferRepo.On("SumOutgoing", ctx, mockExecutor, walletID).Return(decimal.Zero, decimal.Zero, nil).Once()
		mockWalletRepo.On("SetCurrentBalance", ctx, mockExecutor, walletID, mock.Anything).Return(assert.AnError).Once()

		_, err := svc.UpdateBalance(ctx, mockExecutor, walletID)

		assert.Error(t, err)
	})
}
