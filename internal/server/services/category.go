package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/dbx"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/repomanager"
)

type CategoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCategoryService(db *sql.DB, m repomanager.RepositoryManager) *CategoryService {
	return &CategoryService{db: db, repomanager: m}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]*models.Category, error) {
	return s.repomanager.Categories(s.db).List(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID, name string, typ models.EntryType) (*models.Category, error) {
	c, err := newCategory(userID, name, typ)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Categories(s.db).Create(ctx, c)
}

func (s *CategoryService) Update(ctx context.Context, userID, id, name string, typ models.EntryType) (*models.Category, error) {
	if !isID(id) {
		return nil, common.ErrorNotFound
	}
	c, err := newCategory(userID, name, typ)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return s.repomanager.Categories(s.db).Update(ctx, c)
}

// Delete removes a category in one transaction: its budgets are deleted,
// transactions that used it are kept without a category, then the category
// row goes. Nothing changes when the category is not the caller's.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if !isID(id) {
		return common.ErrorNotFound
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Budgets(tx).DeleteByCategory(ctx, userID, id); err != nil {
			return fmt.Errorf("error deleting category budgets: %w", err)
		}
		if _, err := s.repomanager.Transactions(tx).DetachCategory(ctx, userID, id); err != nil {
			return fmt.Errorf("error detaching transactions: %w", err)
		}
		return s.repomanager.Categories(tx).Delete(ctx, userID, id)
	})
}

func newCategory(userID, name string, typ models.EntryType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrInvalidName
	}
	if typ == "" {
		typ = models.EntryTypeExpense
	}
	if !typ.Valid() {
		return nil, common.ErrInvalidType
	}
	return &models.Category{UserID: userID, Name: name, Type: typ}, nil
}
