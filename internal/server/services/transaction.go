package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophbudget/internal/timex"
	"github.com/shopspring/decimal"
)

// maxAmount is the first value that no longer fits NUMERIC(14,2).
var maxAmount = decimal.New(1, 12)

// TransactionInput is the client-supplied part of a transaction. A nil
// Amount means the field was absent.
type TransactionInput struct {
	CategoryID  *string
	Type        models.EntryType
	Amount      *decimal.Decimal
	Description string
	Date        string
}

// TransactionQuery holds the optional listing filters as received.
type TransactionQuery struct {
	Month      string
	Type       string
	CategoryID string
}

type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         clock
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager) *TransactionService {
	return &TransactionService{db: db, repomanager: m, now: utcNow}
}

func (s *TransactionService) Create(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	t, err := s.validate(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Transactions(s.db).Create(ctx, t)
}

func (s *TransactionService) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	if !isID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Transactions(s.db).Get(ctx, userID, id)
}

func (s *TransactionService) List(ctx context.Context, userID string, q TransactionQuery) ([]*models.Transaction, error) {
	var filter models.TransactionFilter

	if q.Month != "" {
		start, end, err := timex.MonthRange(q.Month)
		if err != nil {
			return nil, common.ErrInvalidMonthFormat
		}
		filter.MonthStart, filter.MonthEnd = &start, &end
	}
	if q.Type != "" {
		filter.Type = models.EntryType(q.Type)
		if !filter.Type.Valid() {
			return nil, common.ErrInvalidType
		}
	}
	if q.CategoryID != "" {
		if !isID(q.CategoryID) {
			return nil, common.ErrInvalidCategory
		}
		filter.CategoryID = q.CategoryID
	}

	return s.repomanager.Transactions(s.db).List(ctx, userID, filter)
}

// Update replaces a transaction. Ids that are malformed or not owned by the
// caller yield common.ErrorNotFound; bad input yields a validation error.
func (s *TransactionService) Update(ctx context.Context, userID, id string, in TransactionInput) (*models.Transaction, error) {
	if !isID(id) {
		return nil, common.ErrorNotFound
	}
	t, err := s.validate(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	t.ID = id
	return s.repomanager.Transactions(s.db).Update(ctx, t)
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if !isID(id) {
		return common.ErrorNotFound
	}
	return s.repomanager.Transactions(s.db).Delete(ctx, userID, id)
}

// validate checks in and turns it into a row ready to persist. Checks run
// in a fixed order: amount, type, date, category.
func (s *TransactionService) validate(ctx context.Context, userID string, in TransactionInput) (*models.Transaction, error) {
	if in.Amount == nil {
		return nil, common.ErrInvalidAmount
	}
	amount := in.Amount.Round(2)
	if !amount.IsPositive() || amount.GreaterThanOrEqual(maxAmount) {
		return nil, common.ErrInvalidAmount
	}

	if !in.Type.Valid() {
		return nil, common.ErrInvalidType
	}

	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = s.now().UTC().Format(timex.DateLayout)
	} else if _, err := time.Parse(timex.DateLayout, date); err != nil {
		return nil, common.ErrInvalidDate
	}

	var categoryID *string
	if in.CategoryID != nil && *in.CategoryID != "" {
		if !isID(*in.CategoryID) {
			return nil, common.ErrInvalidCategory
		}
		ok, err := s.repomanager.Categories(s.db).Exists(ctx, userID, *in.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("error checking category: %w", err)
		}
		if !ok {
			return nil, common.ErrInvalidCategory
		}
		id := *in.CategoryID
		categoryID = &id
	}

	return &models.Transaction{
		UserID:      userID,
		CategoryID:  categoryID,
		Type:        in.Type,
		Amount:      amount,
		Description: in.Description,
		Date:        date,
	}, nil
}
