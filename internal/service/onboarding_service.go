// internal/service/onboarding_service.go
package service

import (
	"context"
	"fmt"

	"finledger/internal/domain"
	"finledger/internal/repository"
	"finledger/pkg/db"

	"github.com/shopspring/decimal"
)

// OnboardingResult summarizes what was seeded for a new user.
type OnboardingResult struct {
	CategoriesCreated int            `json:"categories_created"`
	DefaultWallet     *domain.Wallet `json:"default_wallet"`
	AlreadyOnboarded  bool           `json:"already_onboarded"`
}

// OnboardingService seeds the default categories and wallet for a newly
// registered user. The identity provider owns the user record; this service
// only prepares ledger state for the opaque uid.
type OnboardingService interface {
	// SetupNewUser seeds defaults atomically. Calling it again for an already
	// onboarded user is a no-op.
	SetupNewUser(ctx context.Context, userID string) (*OnboardingResult, error)
}

// onboardingService implements the OnboardingService interface.
type onboardingService struct {
	dbBeginner   db.DBTxBeginner
	dbExecutor   repository.DBExecutor
	walletRepo   repository.WalletRepository
	categoryRepo repository.CategoryRepository
	beginTx      db.BeginTxFunc
	commitTx     db.CommitTxFunc
	rollbackTx   db.RollbackTxFunc
}

// NewOnboardingService creates a new instance of OnboardingService.
func NewOnboardingService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	categoryRepo repository.CategoryRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) OnboardingService {
	return &onboardingService{
		dbBeginner:   dbBeginner,
		dbExecutor:   dbExecutor,
		walletRepo:   walletRepo,
		categoryRepo: categoryRepo,
		beginTx:      beginTx,
		commitTx:     commitTx,
		rollbackTx:   rollbackTx,
	}
}

// SetupNewUser seeds the default income/expense categories and the default
// wallet in one database transaction.
func (s *onboardingService) SetupNewUser(ctx context.Context, userID string) (*OnboardingResult, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("setup new user: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("setup new user: transaction controller does not implement DBExecutor")
	}

	count, err := s.categoryRepo.CountCategoriesByUser(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("setup new user: failed to count categories: %w", err)
	}
	if count > 0 {
		return &OnboardingResult{AlreadyOnboarded: true}, nil
	}

	created := 0
	for _, seed := range domain.DefaultIncomeCategories {
		if err := s.seedCategory(ctx, txExecutor, userID, seed, domain.CategoryTypeIncome); err != nil {
			return nil, err
		}
		created++
	}
	for _, seed := range domain.DefaultExpenseCategories {
		if err := s.seedCategory(ctx, txExecutor, userID, seed, domain.CategoryTypeExpense); err != nil {
			return nil, err
		}
		created++
	}

	color := domain.DefaultWalletColor
	wallet := domain.NewWallet(userID, domain.DefaultWalletName, nil, &color, decimal.Zero, 0)
	if err := s.walletRepo.CreateWallet(ctx, txExecutor, wallet); err != nil {
		return nil, fmt.Errorf("setup new user: failed to create default wallet: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("setup new user: failed to commit transaction: %w", err)
	}

	return &OnboardingResult{CategoriesCreated: created, DefaultWallet: wallet}, nil
}

func (s *onboardingService) seedCategory(ctx context.Context, q repository.DBExecutor, userID string, seed domain.DefaultCategorySeed, categoryType domain.CategoryType) error {
	icon := seed.Icon
	category := domain.NewCategory(userID, seed.Name, categoryType, &icon)
	category.IsDefault = true
	if err := s.categoryRepo.CreateCategory(ctx, q, category); err != nil {
		return fmt.Errorf("setup new user: failed to seed category '%s': %w", seed.Name, err)
	}
	return nil
}
