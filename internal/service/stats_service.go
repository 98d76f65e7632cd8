// internal/service/stats_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"finledger/internal/domain"
	"finledger/internal/repository"

	"github.com/shopspring/decimal"
)

// WalletSummary is one wallet's line on the dashboard.
type WalletSummary struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Icon           *string         `json:"icon"`
	Color          *string         `json:"color"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	DisplayOrder   int             `json:"display_order"`
}

// DashboardSummary aggregates the user's overall financial position.
type DashboardSummary struct {
	TotalBalance       decimal.Decimal      `json:"total_balance"`
	TotalIncome        decimal.Decimal      `json:"total_income"`
	TotalExpense       decimal.Decimal      `json:"total_expense"`
	NetIncome          decimal.Decimal      `json:"net_income"`
	Wallets            []WalletSummary      `json:"wallets"`
	RecentTransactions []domain.Transaction `json:"recent_transactions"`
}

// MonthlyStat is one month's income-vs-expense figure.
type MonthlyStat struct {
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	MonthNumber int             `json:"month_number"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Net         decimal.Decimal `json:"net"`
}

// StatsService provides dashboard and statistics aggregations over the ledger.
type StatsService interface {
	Dashboard(ctx context.Context, userID string) (*DashboardSummary, error)
	// Monthly returns income vs expense for the last monthsCount months ending in
	// the current month of the given year.
	Monthly(ctx context.Context, userID string, year, monthsCount int) ([]MonthlyStat, error)
	// ByCategory groups transaction totals by category with optional type and date filters.
	ByCategory(ctx context.Context, userID string, txType *domain.TransactionType, start, end *time.Time) ([]repository.CategoryTotal, error)
}

// statsService implements the StatsService interface.
type statsService struct {
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
) StatsService {
	return &statsService{
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// Dashboard builds the user's summary: total balance across active wallets,
// all-time income and expense totals, per-wallet balances, and the latest
// transactions.
func (s *statsService) Dashboard(ctx context.Context, userID string) (*DashboardSummary, error) {
	wallets, err := s.walletRepo.ListWalletsByUser(ctx, s.dbExecutor, userID, true)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to list wallets: %w", err)
	}

	totalBalance := decimal.Zero
	summaries := make([]WalletSummary, 0, len(wallets))
	for _, w := range wallets {
		totalBalance = totalBalance.Add(w.CurrentBalance)
		summaries = append(summaries, WalletSummary{
			ID:             w.ID,
			Name:           w.Name,
			Icon:           w.Icon,
			Color:          w.Color,
			CurrentBalance: w.CurrentBalance,
			DisplayOrder:   w.DisplayOrder,
		})
	}

	totalIncome, err := s.transactionRepo.SumByUserTypeAndRange(ctx, s.dbExecutor, userID, domain.TransactionTypeIncome, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to sum income: %w", err)
	}
	totalExpense, err := s.transactionRepo.SumByUserTypeAndRange(ctx, s.dbExecutor, userID, domain.TransactionTypeExpense, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to sum expense: %w", err)
	}

	recent, err := s.transactionRepo.ListRecentTransactions(ctx, s.dbExecutor, userID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to list recent transactions: %w", err)
	}

	return &DashboardSummary{
		TotalBalance:       totalBalance,
		TotalIncome:        totalIncome,
		TotalExpense:       totalExpense,
		NetIncome:          totalIncome.Sub(totalExpense),
		Wallets:            summaries,
		RecentTransactions: recent,
	}, nil
}

// Monthly returns one income/expense pair per month for the trailing window.
func (s *statsService) Monthly(ctx context.Context, userID string, year, monthsCount int) ([]MonthlyStat, error) {
	if monthsCount <= 0 {
		monthsCount = 6
	}

	now := time.Now().UTC()
	stats := make([]MonthlyStat, 0, monthsCount)
	for i := monthsCount - 1; i >= 0; i-- {
		anchor := time.Date(year, now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).Add(-time.Second)

		income, err := s.transactionRepo.SumByUserTypeAndRange(ctx, s.dbExecutor, userID, domain.TransactionTypeIncome, &start, &end)
		if err != nil {
			return nil, fmt.Errorf("monthly stats: failed to sum income for %s: %w", start.Format("2006-01"), err)
		}
		expense, err := s.transactionRepo.SumByUserTypeAndRange(ctx, s.dbExecutor, userID, domain.TransactionTypeExpense, &start, &end)
		if err != nil {
			return nil, fmt.Errorf("monthly stats: failed to sum expense for %s: %w", start.Format("2006-01"), err)
		}

		stats = append(stats, MonthlyStat{
			Month:       start.Format("Jan 2006"),
			Year:        start.Year(),
			MonthNumber: int(start.Month()),
			Income:      income,
			Expense:     expense,
			Net:         income.Sub(expense),
		})
	}

	return stats, nil
}

// ByCategory groups transaction totals by category.
func (s *statsService) ByCategory(ctx context.Context, userID string, txType *domain.TransactionType, start, end *time.Time) ([]repository.CategoryTotal, error) {
	totals, err := s.transactionRepo.CategoryTotals(ctx, s.dbExecutor, userID, txType, start, end)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	return totals, nil
}
