package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/dbx"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/timex"
)

// selectColumns projects a transaction row aliased as t joined with its
// category aliased as c.
const selectColumns = `t.id, t.user_id, t.category_id, c.name, t.type, t.amount, t.description, to_char(t.date, 'YYYY-MM-DD'), t.created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (*models.Transaction, error) {
	t := &models.Transaction{}
	err := s.Scan(&t.ID, &t.UserID, &t.CategoryID, &t.CategoryName,
		&t.Type, &t.Amount, &t.Description, &t.Date, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts tx and returns the stored row together with the name of
// its category.
func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query :=
		`WITH t AS (
		   INSERT INTO transactions (user_id, category_id, type, amount, description, date)
		   VALUES ($1, $2, $3, $4, $5, $6)
		   RETURNING id, user_id, category_id, type, amount, description, date, created_at
		 )
		 SELECT ` + selectColumns + `
		 FROM t LEFT JOIN categories c ON c.id = t.category_id
		 `

	created, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.CategoryID, tx.Type, tx.Amount, tx.Description, tx.Date))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return created, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	query :=
		`SELECT ` + selectColumns + `
		 FROM transactions t LEFT JOIN categories c ON c.id = t.category_id
		 WHERE t.id = $1 AND t.user_id = $2
		 `

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return t, nil
}

// List returns the user's transactions matching filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + selectColumns + `
		 FROM transactions t LEFT JOIN categories c ON c.id = t.category_id
		 WHERE t.user_id = $1`)
	args := []any{userID}

	where := func(column, op string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND %s %s $%d", column, op, len(args))
	}

	if filter.MonthStart != nil {
		where("t.date", ">=", filter.MonthStart.Format(timex.DateLayout))
	}
	if filter.MonthEnd != nil {
		where("t.date", "<", filter.MonthEnd.Format(timex.DateLayout))
	}
	if filter.Type != "" {
		where("t.type", "=", filter.Type)
	}
	if filter.CategoryID != "" {
		where("t.category_id", "=", filter.CategoryID)
	}
	sb.WriteString(" ORDER BY t.date DESC, t.created_at DESC, t.id DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update overwrites the mutable fields of tx. A row that does not exist or
// belongs to another user yields common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	query :=
		`WITH t AS (
		   UPDATE transactions
		   SET category_id = $1, type = $2, amount = $3, description = $4, date = $5
		   WHERE id = $6 AND user_id = $7
		   RETURNING id, user_id, category_id, type, amount, description, date, created_at
		 )
		 SELECT ` + selectColumns + `
		 FROM t LEFT JOIN categories c ON c.id = t.category_id
		 `

	updated, err := scanTransaction(r.db.QueryRowContext(ctx, query,
		tx.CategoryID, tx.Type, tx.Amount, tx.Description, tx.Date, tx.ID, tx.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM transactions
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// DetachCategory clears the category of every user transaction that points
// at categoryID and reports how many rows changed.
func (r *PostgresRepository) DetachCategory(ctx context.Context, userID, categoryID string) (int64, error) {
	query :=
		`UPDATE transactions SET category_id = NULL
		 WHERE user_id = $1 AND category_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, userID, categoryID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}
