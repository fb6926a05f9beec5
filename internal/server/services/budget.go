package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbudget/internal/timex"
	"github.com/shopspring/decimal"
)

// BudgetInput is the client-supplied budget. A nil Amount means the field
// was absent.
type BudgetInput struct {
	CategoryID string
	MonthYear  string
	Amount     *decimal.Decimal
}

type BudgetService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         clock
}

func NewBudgetService(db *sql.DB, m repomanager.RepositoryManager) *BudgetService {
	return &BudgetService{db: db, repomanager: m, now: utcNow}
}

// Upsert sets the budget for a category and month, replacing any amount
// already set for the same pair.
func (s *BudgetService) Upsert(ctx context.Context, userID string, in BudgetInput) (*models.Budget, error) {
	if _, _, err := timex.MonthRange(in.MonthYear); err != nil {
		return nil, common.ErrInvalidMonthFormat
	}

	if in.Amount == nil || in.Amount.IsNegative() {
		return nil, common.ErrInvalidBudget
	}
	amount := in.Amount.Round(2)
	if amount.GreaterThanOrEqual(maxAmount) {
		return nil, common.ErrInvalidBudget
	}

	if !isID(in.CategoryID) {
		return nil, common.ErrInvalidCategory
	}
	ok, err := s.repomanager.Categories(s.db).Exists(ctx, userID, in.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("error checking category: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCategory
	}

	return s.repomanager.Budgets(s.db).Upsert(ctx, &models.Budget{
		UserID:     userID,
		CategoryID: in.CategoryID,
		MonthYear:  in.MonthYear,
		Amount:     amount,
	})
}

// ListByMonth returns the caller's budgets for month, or for the current
// month when month is empty.
func (s *BudgetService) ListByMonth(ctx context.Context, userID, month string) ([]*models.Budget, error) {
	if month == "" {
		month = timex.CurrentMonth(s.now())
	}
	if _, _, err := timex.MonthRange(month); err != nil {
		return nil, common.ErrInvalidMonthFormat
	}
	return s.repomanager.Budgets(s.db).ListByMonth(ctx, userID, month)
}

func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	if !isID(id) {
		return common.ErrorNotFound
	}
	return s.repomanager.Budgets(s.db).Delete(ctx, userID, id)
}
