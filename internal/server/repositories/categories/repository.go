package categories

import (
	"context"

	"github.com/dmitrijs2005/gophbudget/internal/server/models"
)

// Repository is the ownership-scoped accessor for categories. Every method
// takes the caller's user id and never touches rows owned by anyone else.
type Repository interface {
	List(ctx context.Context, userID string) ([]*models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, userID, id string) error
	Exists(ctx context.Context, userID, id string) (bool, error)
}
