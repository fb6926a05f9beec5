package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbudget/internal/timex"
	"github.com/shopspring/decimal"
)

const (
	DefaultTrendDays = 30
	MaxTrendDays     = 366
)

type AnalyticsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         clock
}

func NewAnalyticsService(db *sql.DB, m repomanager.RepositoryManager) *AnalyticsService {
	return &AnalyticsService{db: db, repomanager: m, now: utcNow}
}

// month resolves an optional YYYY-MM parameter into the month and its
// half-open date range.
func (s *AnalyticsService) month(month string) (string, time.Time, time.Time, error) {
	if month == "" {
		month = timex.CurrentMonth(s.now())
	}
	start, end, err := timex.MonthRange(month)
	if err != nil {
		return "", time.Time{}, time.Time{}, common.ErrInvalidMonthFormat
	}
	return month, start, end, nil
}

func (s *AnalyticsService) Summary(ctx context.Context, userID, month string) (*models.Summary, error) {
	month, start, end, err := s.month(month)
	if err != nil {
		return nil, err
	}

	income, expenses, err := s.repomanager.Analytics(s.db).Totals(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error fetching summary: %w", err)
	}

	return &models.Summary{
		Month:         month,
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetBalance:    income.Sub(expenses),
	}, nil
}

func (s *AnalyticsService) Breakdown(ctx context.Context, userID, month string) ([]*models.BreakdownItem, error) {
	_, start, end, err := s.month(month)
	if err != nil {
		return nil, err
	}

	items, err := s.repomanager.Analytics(s.db).Breakdown(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error fetching breakdown: %w", err)
	}
	return items, nil
}

// Trend returns daily expense totals over the trailing window of days,
// today included. Days without expenses are absent from the result.
func (s *AnalyticsService) Trend(ctx context.Context, userID string, days int) ([]*models.TrendPoint, error) {
	if days < 1 || days > MaxTrendDays {
		return nil, common.ErrInvalidDays
	}

	now := s.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -days)

	points, err := s.repomanager.Analytics(s.db).DailyExpenses(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error fetching trend: %w", err)
	}
	return points, nil
}

func (s *AnalyticsService) BudgetHealth(ctx context.Context, userID, month string) ([]*models.BudgetHealth, error) {
	month, start, end, err := s.month(month)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Analytics(s.db)

	spend, err := repo.CategorySpend(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("error fetching category spend: %w", err)
	}
	budgeted, err := repo.BudgetAmounts(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("error fetching budgets: %w", err)
	}

	return MergeBudgetHealth(spend, budgeted), nil
}

// MergeBudgetHealth joins per-category spend with budgeted amounts. A
// category without a budget counts as budgeted zero, and is never over
// budget. The order of spend is preserved.
func MergeBudgetHealth(spend []*models.CategorySpend, budgeted map[string]decimal.Decimal) []*models.BudgetHealth {
	result := make([]*models.BudgetHealth, 0, len(spend))
	for _, s := range spend {
		b := budgeted[s.CategoryID]
		result = append(result, &models.BudgetHealth{
			CategoryID:     s.CategoryID,
			CategoryName:   s.CategoryName,
			TotalSpent:     s.TotalSpent,
			BudgetedAmount: b,
			Remaining:      b.Sub(s.TotalSpent),
			IsOverBudget:   b.IsPositive() && s.TotalSpent.GreaterThan(b),
		})
	}
	return result
}
