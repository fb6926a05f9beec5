package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophbudget/internal/server/config"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoManager struct {
	repomanager.RepositoryManager
	migrateErr error
	migrated   bool
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	f.migrated = true
	return f.migrateErr
}

// stubDB points sqlOpen and newRepoManager at mocks for the duration of t.
func stubDB(t *testing.T, rm *fakeRepoManager, monitorPings bool) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(monitorPings))
	require.NoError(t, err)

	origOpen, origRM := sqlOpen, newRepoManager
	t.Cleanup(func() { sqlOpen, newRepoManager = origOpen, origRM })

	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		return db, nil
	}
	newRepoManager = func() repomanager.RepositoryManager { return rm }

	return mock
}

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = ""
	c.ShutdownTimeout = time.Second
	c.LogLevel = "error"
	return c
}

func TestNewApp_Success(t *testing.T) {
	rm := &fakeRepoManager{}
	mock := stubDB(t, rm, true)
	mock.ExpectPing()

	app, err := NewApp(testConfig())
	require.NoError(t, err)
	require.NotNil(t, app)

	assert.True(t, rm.migrated)
	assert.NotNil(t, app.services.Users)
	assert.NotNil(t, app.services.Categories)
	assert.NotNil(t, app.services.Transactions)
	assert.NotNil(t, app.services.Budgets)
	assert.NotNil(t, app.services.Analytics)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_PingError(t *testing.T) {
	rm := &fakeRepoManager{}
	mock := stubDB(t, rm, true)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	_, err := NewApp(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db ping error")
	assert.False(t, rm.migrated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_MigrationError(t *testing.T) {
	rm := &fakeRepoManager{migrateErr: errors.New("bad sql")}
	mock := stubDB(t, rm, false)
	mock.ExpectClose()

	_, err := NewApp(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewApp_OpenError(t *testing.T) {
	origOpen := sqlOpen
	t.Cleanup(func() { sqlOpen = origOpen })
	sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

	_, err := NewApp(testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db open error")
}

func TestRun_StopsOnCancelAndClosesDB(t *testing.T) {
	mock := stubDB(t, &fakeRepoManager{}, false)
	mock.ExpectClose()

	app, err := NewApp(testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
