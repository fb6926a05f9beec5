package rest

import (
	"context"

	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type CategoryService interface {
	List(ctx context.Context, userID string) ([]*models.Category, error)
	Create(ctx context.Context, userID, name string, typ models.EntryType) (*models.Category, error)
	Update(ctx context.Context, userID, id, name string, typ models.EntryType) (*models.Category, error)
	Delete(ctx context.Context, userID, id string) error
}

type TransactionService interface {
	Create(ctx context.Context, userID string, in services.TransactionInput) (*models.Transaction, error)
	Get(ctx context.Context, userID, id string) (*models.Transaction, error)
	List(ctx context.Context, userID string, q services.TransactionQuery) ([]*models.Transaction, error)
	Update(ctx context.Context, userID, id string, in services.TransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
}

type BudgetService interface {
	Upsert(ctx context.Context, userID string, in services.BudgetInput) (*models.Budget, error)
	ListByMonth(ctx context.Context, userID, month string) ([]*models.Budget, error)
	Delete(ctx context.Context, userID, id string) error
}

type AnalyticsService interface {
	Summary(ctx context.Context, userID, month string) (*models.Summary, error)
	Breakdown(ctx context.Context, userID, month string) ([]*models.BreakdownItem, error)
	Trend(ctx context.Context, userID string, days int) ([]*models.TrendPoint, error)
	BudgetHealth(ctx context.Context, userID, month string) ([]*models.BudgetHealth, error)
}
