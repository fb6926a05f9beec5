// Package rest exposes the budgeting API over HTTP using Fiber. Every route
// except registration, login and health checks passes the authorization
// gate, which attaches the caller's user id to the request.
package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophbudget/internal/logging"
	"github.com/dmitrijs2005/gophbudget/internal/server/config"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIPrefix is the mount point of every API route.
const APIPrefix = "/api/v1"

// Services groups the business services the handlers call.
type Services struct {
	Users        UserService
	Categories   CategoryService
	Transactions TransactionService
	Budgets      BudgetService
	Analytics    AnalyticsService
}

// Pinger reports database reachability. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	address         string
	app             *fiber.App
	logger          logging.Logger
	services        Services
	db              Pinger
	jwtSecret       []byte
	shutdownTimeout time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, svc Services, db Pinger) *Server {
	s := &Server{
		address:         cfg.EndpointAddrHTTP,
		logger:          l.With("module", "http_server"),
		services:        svc,
		db:              db,
		jwtSecret:       []byte(cfg.SecretKey),
		shutdownTimeout: cfg.ShutdownTimeout,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "gophbudget",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(s.requestLogger)
	s.app.Use(recover.New())
	s.app.Use(corsMiddleware(cfg.CORSOrigin))

	s.routes(cfg)

	return s
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) routes(cfg *config.Config) {
	s.app.Get("/health", s.health)

	api := s.app.Group(APIPrefix)
	api.Get("/health", s.health)

	auth := api.Group("/auth", rateLimitAuth(cfg.AuthRateLimitMax, cfg.AuthRateLimitWindow))
	auth.Post("/register", s.register)
	auth.Post("/login", s.login)
	auth.Get("/profile", s.authGate, s.profile)

	api.Get("/profile", s.authGate, s.profile)

	api.Get("/categories", s.authGate, s.listCategories)
	api.Post("/categories", s.authGate, s.createCategory)
	api.Put("/categories/:id", s.authGate, s.updateCategory)
	api.Delete("/categories/:id", s.authGate, s.deleteCategory)

	api.Get("/transactions", s.authGate, s.listTransactions)
	api.Get("/transactions/:id", s.authGate, s.getTransaction)
	api.Post("/transactions", s.authGate, s.createTransaction)
	api.Put("/transactions/:id", s.authGate, s.updateTransaction)
	api.Delete("/transactions/:id", s.authGate, s.deleteTransaction)

	api.Get("/budgets", s.authGate, s.listBudgets)
	api.Post("/budgets", s.authGate, s.upsertBudget)
	api.Delete("/budgets/:id", s.authGate, s.deleteBudget)

	api.Get("/analytics/summary", s.authGate, s.summary)
	api.Get("/analytics/breakdown", s.authGate, s.breakdown)
	api.Get("/analytics/trend", s.authGate, s.trend)
	api.Get("/analytics/budget-health", s.authGate, s.budgetHealth)
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests
// for up to the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		sctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(sctx); err != nil {
			s.logger.Error(sctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.app.Listen(s.address); err != nil {
		return err
	}

	return nil
}
