package transactions

import (
	"context"

	"github.com/dmitrijs2005/gophbudget/internal/server/models"
)

// Repository is the ownership-scoped accessor for transactions.
type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	Get(ctx context.Context, userID, id string) (*models.Transaction, error)
	List(ctx context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	DetachCategory(ctx context.Context, userID, categoryID string) (int64, error)
}
