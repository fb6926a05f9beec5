package budgets

import (
	"context"

	"github.com/dmitrijs2005/gophbudget/internal/server/models"
)

// Repository is the ownership-scoped accessor for monthly budgets.
type Repository interface {
	Upsert(ctx context.Context, budget *models.Budget) (*models.Budget, error)
	ListByMonth(ctx context.Context, userID, monthYear string) ([]*models.Budget, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByCategory(ctx context.Context, userID, categoryID string) (int64, error)
}
