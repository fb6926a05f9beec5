package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophbudget/internal/dbx"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/analytics"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/budgets"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/categories"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/transactions"
	"github.com/dmitrijs2005/gophbudget/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Categories(db dbx.DBTX) categories.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Budgets(db dbx.DBTX) budgets.Repository
	Analytics(db dbx.DBTX) analytics.Repository
}
