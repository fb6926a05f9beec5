package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophbudget/internal/logging"
	"github.com/dmitrijs2005/gophbudget/internal/server/auth"
	"github.com/dmitrijs2005/gophbudget/internal/server/config"
	"github.com/dmitrijs2005/gophbudget/internal/server/models"
	"github.com/dmitrijs2005/gophbudget/internal/server/services"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	userA      = "11111111-1111-1111-1111-111111111111"
	catA       = "22222222-2222-2222-2222-222222222222"
	txA        = "33333333-3333-3333-3333-333333333333"
	budA       = "44444444-4444-4444-4444-444444444444"
)

var errBoom = errors.New("boom")

type fakeUsers struct {
	register func(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	login    func(ctx context.Context, email, password string) (*services.AuthResult, error)
	profile  func(ctx context.Context, userID string) (*models.User, error)
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password string) (*services.AuthResult, error) {
	return f.register(ctx, name, email, password)
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUsers) Profile(ctx context.Context, userID string) (*models.User, error) {
	return f.profile(ctx, userID)
}

type fakeCategories struct {
	list   func(ctx context.Context, userID string) ([]*models.Category, error)
	create func(ctx context.Context, userID, name string, typ models.EntryType) (*models.Category, error)
	update func(ctx context.Context, userID, id, name string, typ models.EntryType) (*models.Category, error)
	del    func(ctx context.Context, userID, id string) error
}

func (f *fakeCategories) List(ctx context.Context, userID string) ([]*models.Category, error) {
	return f.list(ctx, userID)
}

func (f *fakeCategories) Create(ctx context.Context, userID, name string, typ models.EntryType) (*models.Category, error) {
	return f.create(ctx, userID, name, typ)
}

func (f *fakeCategories) Update(ctx context.Context, userID, id, name string, typ models.EntryType) (*models.Category, error) {
	return f.update(ctx, userID, id, name, typ)
}

func (f *fakeCategories) Delete(ctx context.Context, userID, id string) error {
	return f.del(ctx, userID, id)
}

type fakeTransactions struct {
	create func(ctx context.Context, userID string, in services.TransactionInput) (*models.Transaction, error)
	get    func(ctx context.Context, userID, id string) (*models.Transaction, error)
	list   func(ctx context.Context, userID string, q services.TransactionQuery) ([]*models.Transaction, error)
	update func(ctx context.Context, userID, id string, in services.TransactionInput) (*models.Transaction, error)
	del    func(ctx context.Context, userID, id string) error
}

func (f *fakeTransactions) Create(ctx context.Context, userID string, in services.TransactionInput) (*models.Transaction, error) {
	return f.create(ctx, userID, in)
}

func (f *fakeTransactions) Get(ctx context.Context, userID, id string) (*models.Transaction, error) {
	return f.get(ctx, userID, id)
}

func (f *fakeTransactions) List(ctx context.Context, userID string, q services.TransactionQuery) ([]*models.Transaction, error) {
	return f.list(ctx, userID, q)
}

func (f *fakeTransactions) Update(ctx context.Context, userID, id string, in services.TransactionInput) (*models.Transaction, error) {
	return f.update(ctx, userID, id, in)
}

func (f *fakeTransactions) Delete(ctx context.Context, userID, id string) error {
	return f.del(ctx, userID, id)
}

type fakeBudgets struct {
	upsert func(ctx context.Context, userID string, in services.BudgetInput) (*models.Budget, error)
	list   func(ctx context.Context, userID, month string) ([]*models.Budget, error)
	del    func(ctx context.Context, userID, id string) error
}

func (f *fakeBudgets) Upsert(ctx context.Context, userID string, in services.BudgetInput) (*models.Budget, error) {
	return f.upsert(ctx, userID, in)
}

func (f *fakeBudgets) ListByMonth(ctx context.Context, userID, month string) ([]*models.Budget, error) {
	return f.list(ctx, userID, month)
}

func (f *fakeBudgets) Delete(ctx context.Context, userID, id string) error {
	return f.del(ctx, userID, id)
}

type fakeAnalytics struct {
	summary      func(ctx context.Context, userID, month string) (*models.Summary, error)
	breakdown    func(ctx context.Context, userID, month string) ([]*models.BreakdownItem, error)
	trend        func(ctx context.Context, userID string, days int) ([]*models.TrendPoint, error)
	budgetHealth func(ctx context.Context, userID, month string) ([]*models.BudgetHealth, error)
}

func (f *fakeAnalytics) Summary(ctx context.Context, userID, month string) (*models.Summary, error) {
	return f.summary(ctx, userID, month)
}

func (f *fakeAnalytics) Breakdown(ctx context.Context, userID, month string) ([]*models.BreakdownItem, error) {
	return f.breakdown(ctx, userID, month)
}

func (f *fakeAnalytics) Trend(ctx context.Context, userID string, days int) ([]*models.TrendPoint, error) {
	return f.trend(ctx, userID, days)
}

func (f *fakeAnalytics) BudgetHealth(ctx context.Context, userID, month string) ([]*models.BudgetHealth, error) {
	return f.budgetHealth(ctx, userID, month)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.AuthRateLimitMax = 100
	cfg.AuthRateLimitWindow = time.Minute
	return cfg
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestServer(t *testing.T, svc Services) *Server {
	t.Helper()
	return NewServer(testConfig(), testLogger(), svc, fakePinger{})
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	return tok
}

// do sends a request to the app, authenticated as userID when it is non-empty.
func do(t *testing.T, s *Server, method, path, body, userID string) (int, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+tokenFor(t, userID))
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}
