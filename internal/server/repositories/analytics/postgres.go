package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophbudget/internal/dbx"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/timex"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func day(t time.Time) string { return t.Format(timex.DateLayout) }

func (r *PostgresRepository) Totals(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query :=
		`SELECT
		   COALESCE(SUM(CASE WHEN type = 'Income' THEN amount ELSE 0 END), 0) AS total_income,
		   COALESCE(SUM(CASE WHEN type = 'Expense' THEN amount ELSE 0 END), 0) AS total_expenses
		 FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date < $3
		 `

	var income, expenses decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, day(start), day(end)).Scan(&income, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("db error: %w", err)
	}

	return income, expenses, nil
}

// Breakdown sums expenses per category, largest first. Ties are broken by
// category name and then id so the order is stable.
func (r *PostgresRepository) Breakdown(ctx context.Context, userID string, start, end time.Time) ([]*models.BreakdownItem, error) {
	query :=
		`SELECT c.id, c.name, SUM(t.amount) AS total_spent
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.user_id = $1 AND t.type = 'Expense' AND t.date >= $2 AND t.date < $3
		 GROUP BY c.id, c.name
		 ORDER BY total_spent DESC, c.name ASC, c.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, day(start), day(end))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.BreakdownItem, 0)
	for rows.Next() {
		item := &models.BreakdownItem{}
		if err := rows.Scan(&item.CategoryID, &item.CategoryName, &item.TotalSpent); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// DailyExpenses returns one point per day that has expenses, oldest first.
func (r *PostgresRepository) DailyExpenses(ctx context.Context, userID string, start, end time.Time) ([]*models.TrendPoint, error) {
	query :=
		`SELECT to_char(date, 'YYYY-MM-DD') AS date_label, SUM(amount) AS daily_spent
		 FROM transactions
		 WHERE user_id = $1 AND type = 'Expense' AND date >= $2 AND date < $3
		 GROUP BY date
		 ORDER BY date ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, day(start), day(end))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.TrendPoint, 0)
	for rows.Next() {
		p := &models.TrendPoint{}
		if err := rows.Scan(&p.Date, &p.DailySpent); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// CategorySpend lists every category the user owns with its expense total
// in the range, zero for categories with no spending.
func (r *PostgresRepository) CategorySpend(ctx context.Context, userID string, start, end time.Time) ([]*models.CategorySpend, error) {
	query :=
		`SELECT c.id, c.name, COALESCE(SUM(t.amount), 0) AS total_spent
		 FROM categories c
		 LEFT JOIN transactions t
		   ON t.category_id = c.id
		  AND t.user_id = $1
		  AND t.type = 'Expense'
		  AND t.date >= $2 AND t.date < $3
		 WHERE c.user_id = $1
		 GROUP BY c.id, c.name
		 ORDER BY c.name ASC, c.id ASC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, day(start), day(end))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CategorySpend, 0)
	for rows.Next() {
		s := &models.CategorySpend{}
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.TotalSpent); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// BudgetAmounts maps category id to the budgeted amount for the month.
func (r *PostgresRepository) BudgetAmounts(ctx context.Context, userID, monthYear string) (map[string]decimal.Decimal, error) {
	query :=
		`SELECT category_id, amount
		 FROM budgets
		 WHERE user_id = $1 AND month_year = $2
		 `

	rows, err := r.db.QueryContext(ctx, query, userID, monthYear)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			categoryID string
			amount     decimal.Decimal
		)
		if err := rows.Scan(&categoryID, &amount); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[categoryID] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
