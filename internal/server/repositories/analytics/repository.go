// Package analytics runs the read-only aggregate queries behind the
// analytics endpoints. All date ranges are half-open [start, end).
package analytics

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Totals(ctx context.Context, userID string, start, end time.Time) (income, expenses decimal.Decimal, err error)
	Breakdown(ctx context.Context, userID string, start, end time.Time) ([]*models.BreakdownItem, error)
	DailyExpenses(ctx context.Context, userID string, start, end time.Time) ([]*models.TrendPoint, error)
	CategorySpend(ctx context.Context, userID string, start, end time.Time) ([]*models.CategorySpend, error)
	BudgetAmounts(ctx context.Context, userID, monthYear string) (map[string]decimal.Decimal, error)
}
