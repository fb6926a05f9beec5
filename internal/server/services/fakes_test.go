package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophbudget/internal/common"
	"github.com/dmitrijs2005/gophbudget/internal/dbx"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/analytics"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/budgets"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/categories"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/users"
	"github.com/shopspring/decimal"
)

const (
	userA = "6f1c2a4e-8d7b-4c1e-9a55-0c3b8b7d2e10"
	userB = "0b6a3d1f-2c44-4a7e-8f1d-5e9c7a2b4d60"
	catA  = "a3e1c8d2-5b7f-4e19-9c0a-1d2e3f4a5b6c"
	txA   = "c7d8e9f0-1a2b-4c3d-8e4f-5a6b7c8d9e0f"
	budA  = "e1f2a3b4-c5d6-4e7f-8a9b-0c1d2e3f4a5b"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func fixedClock(s string) clock {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// --- users ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	created []*models.User

	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = userA
	f.created = append(f.created, u)
	if f.byEmail == nil {
		f.byEmail = map[string]*models.User{}
	}
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- categories ---

type fakeCategoriesRepo struct {
	owned map[string]string // category id -> owner

	last      *models.Category
	deleted   []string
	createErr error
	updateErr error
	deleteErr error
	existsErr error
}

func (f *fakeCategoriesRepo) List(ctx context.Context, userID string) ([]*models.Category, error) {
	out := []*models.Category{}
	for id, owner := range f.owned {
		if owner == userID {
			out = append(out, &models.Category{ID: id, UserID: owner})
		}
	}
	return out, nil
}

func (f *fakeCategoriesRepo) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = catA
	f.last = c
	return c, nil
}

func (f *fakeCategoriesRepo) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.owned[c.ID] != c.UserID {
		return nil, common.ErrorNotFound
	}
	f.last = c
	return c, nil
}

func (f *fakeCategoriesRepo) Delete(ctx context.Context, userID, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.owned[id] != userID {
		return common.ErrorNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCategoriesRepo) Exists(ctx context.Context, userID, id string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.owned[id] == userID, nil
}

// --- transactions ---

type fakeTransactionsRepo struct {
	last       *models.Transaction
	lastFilter models.TransactionFilter
	owned      map[string]string

	detached  []string
	detachErr error
	createErr error
}

func (f *fakeTransactionsRepo) Create(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	t.ID = txA
	f.last = t
	return t, nil
}

func (f *fakeTransactionsRepo) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	if f.owned[id] != userID {
		return nil, common.ErrorNotFound
	}
	return &models.Transaction{ID: id, UserID: userID}, nil
}

func (f *fakeTransactionsRepo) List(ctx context.Context, userID string, filter models.TransactionFilter) ([]*models.Transaction, error) {
	f.lastFilter = filter
	return []*models.Transaction{}, nil
}

func (f *fakeTransactionsRepo) Update(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	if f.owned[t.ID] != t.UserID {
		return nil, common.ErrorNotFound
	}
	f.last = t
	return t, nil
}

func (f *fakeTransactionsRepo) Delete(ctx context.Context, userID, id string) error {
	if f.owned[id] != userID {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeTransactionsRepo) DetachCategory(ctx context.Context, userID, categoryID string) (int64, error) {
	if f.detachErr != nil {
		return 0, f.detachErr
	}
	f.detached = append(f.detached, categoryID)
	return 1, nil
}

// --- budgets ---

type fakeBudgetsRepo struct {
	rows     map[string]*models.Budget // key: user|category|month
	owned    map[string]string
	lastList string

	deletedByCategory []string
	upsertErr         error
}

func (f *fakeBudgetsRepo) Upsert(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.rows == nil {
		f.rows = map[string]*models.Budget{}
	}
	key := b.UserID + "|" + b.CategoryID + "|" + b.MonthYear
	if existing, ok := f.rows[key]; ok {
		existing.Amount = b.Amount
		return existing, nil
	}
	b.ID = budA
	f.rows[key] = b
	return b, nil
}

func (f *fakeBudgetsRepo) ListByMonth(ctx context.Context, userID, monthYear string) ([]*models.Budget, error) {
	f.lastList = monthYear
	return []*models.Budget{}, nil
}

func (f *fakeBudgetsRepo) Delete(ctx context.Context, userID, id string) error {
	if f.owned[id] != userID {
		return common.ErrorNotFound
	}
	return nil
}

func (f *fakeBudgetsRepo) DeleteByCategory(ctx context.Context, userID, categoryID string) (int64, error) {
	f.deletedByCategory = append(f.deletedByCategory, categoryID)
	return 1, nil
}

// --- analytics ---

type fakeAnalyticsRepo struct {
	income, expenses decimal.Decimal
	breakdown        []*models.BreakdownItem
	trend            []*models.TrendPoint
	spend            []*models.CategorySpend
	budgets          map[string]decimal.Decimal

	gotStart, gotEnd time.Time
	err              error
}

func (f *fakeAnalyticsRepo) Totals(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	f.gotStart, f.gotEnd = start, end
	return f.income, f.expenses, f.err
}

func (f *fakeAnalyticsRepo) Breakdown(ctx context.Context, userID string, start, end time.Time) ([]*models.BreakdownItem, error) {
	f.gotStart, f.gotEnd = start, end
	return f.breakdown, f.err
}

func (f *fakeAnalyticsRepo) DailyExpenses(ctx context.Context, userID string, start, end time.Time) ([]*models.TrendPoint, error) {
	f.gotStart, f.gotEnd = start, end
	return f.trend, f.err
}

func (f *fakeAnalyticsRepo) CategorySpend(ctx context.Context, userID string, start, end time.Time) ([]*models.CategorySpend, error) {
	f.gotStart, f.gotEnd = start, end
	return f.spend, f.err
}

func (f *fakeAnalyticsRepo) BudgetAmounts(ctx context.Context, userID, monthYear string) (map[string]decimal.Decimal, error) {
	return f.budgets, f.err
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeCategoriesRepo
	t *fakeTransactionsRepo
	b *fakeBudgetsRepo
	a *fakeAnalyticsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository { return m.u }
func (m *fakeRepoManager) Categories(db dbx.DBTX) categories.Repository { return m.c }
func (m *fakeRepoManager) Transactions(db dbx.DBTX) transactions.Repository { return m.t }
func (m *fakeRepoManager) Budgets(db dbx.DBTX) budgets.Repository { return m.b }
func (m *fakeRepoManager) Analytics(db dbx.DBTX) analytics.Repository { return m.a }
