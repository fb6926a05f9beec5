package budgets

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/dbx"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert creates the budget for (user, category, month) or replaces the
// amount of the existing one in a single statement.
func (r *PostgresRepository) Upsert(ctx context.Context, budget *models.Budget) (*models.Budget, error) {
	query :=
		`INSERT INTO budgets (user_id, category_id, month_year, amount)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, category_id, month_year)
		 DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()
		 RETURNING id, user_id, category_id, month_year, amount, created_at, updated_at
		 `

	b := &models.Budget{}
	err := r.db.QueryRowContext(ctx, query,
		budget.UserID, budget.CategoryID, budget.MonthYear, budget.Amount).
		Scan(&b.ID, &b.UserID, &b.CategoryID, &b.MonthYear, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return b, nil
}

func (r *PostgresRepository) ListByMonth(ctx context.Context, userID, monthYear string) ([]*models.Budget, error) {
	query :=
		`SELECT b.id, b.user_id, b.category_id, c.name, b.month_year, b.amount, b.created_at, b.updated_at
		 FROM budgets b
		 JOIN categories c ON c.id = b.category_id
		 WHERE b.user_id = $1 AND b.month_year = $2
		 ORDER BY c.name ASC, b.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, monthYear)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Budget, 0)
	for rows.Next() {
		b := &models.Budget{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName,
			&b.MonthYear, &b.Amount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM budgets
		 WHERE id = $1 AND user_id = $2
		 `

	n, err := r.exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// DeleteByCategory removes every budget the user set for categoryID.
func (r *PostgresRepository) DeleteByCategory(ctx context.Context, userID, categoryID string) (int64, error) {
	query :=
		`DELETE FROM budgets
		 WHERE user_id = $1 AND category_id = $2
		 `

	return r.exec(ctx, query, userID, categoryID)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
