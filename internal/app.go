// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "finledger/internal/api"
	"finledger/internal/api/handler"
	"finledger/internal/api/middleware"
	"finledger/internal/bootstrap"
	"finledger/internal/config"
	"finledger/internal/repository"
	"finledger/internal/repository/postgres"
	"finledger/internal/service"
	"finledger/internal/util"
	"finledger/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	WalletRepository      repository.WalletRepository
	CategoryRepository    repository.CategoryRepository
	TransactionRepository repository.TransactionRepository
	TransferRepository    repository.TransferRepository

	// Services
	BalanceService     service.BalanceService
	WalletService      service.WalletService
	CategoryService    service.CategoryService
	TransactionService service.TransactionService
	TransferService    service.TransferService
	StatsService       service.StatsService
	OnboardingService  service.OnboardingService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.CategoryRepository = postgres.NewCategoryRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.TransferRepository = postgres.NewTransferRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	// Pass the concrete db.BeginTx, db.CommitTx, db.RollbackTx functions from pkg/db
	app.BalanceService = service.NewBalanceService(
		app.WalletRepository,
		app.TransactionRepository,
		app.TransferRepository,
	)
	app.WalletService = service.NewWalletService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.WalletRepository,
		app.BalanceService,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.CategoryService = service.NewCategoryService(
		app.DB,
		app.DB,
		app.CategoryRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.TransactionService = service.NewTransactionService(
		app.DB,
		app.DB,
		app.WalletRepository,
		app.CategoryRepository,
		app.TransactionRepository,
		app.BalanceService,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.TransferService = service.NewTransferService(
		app.DB,
		app.DB,
		app.WalletRepository,
		app.TransferRepository,
		app.BalanceService,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.StatsService = service.NewStatsService(
		app.DB,
		app.WalletRepository,
		app.TransactionRepository,
	)
	app.OnboardingService = service.NewOnboardingService(
		app.DB,
		app.DB,
		app.WalletRepository,
		app.CategoryRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize Token Verifier
	verifier, err := app.newTokenVerifier(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	app.Logger.Info("Token verifier initialized.", "mode", app.Config.AuthMode)

	// 7. Initialize HTTP Handlers and Router
	handlers := router.Handlers{
		Wallet:      handler.NewWalletHandler(app.WalletService, app.Logger),
		Category:    handler.NewCategoryHandler(app.CategoryService, app.Logger),
		Transaction: handler.NewTransactionHandler(app.TransactionService, app.Logger),
		Transfer:    handler.NewTransferHandler(app.TransferService, app.Logger),
		Stats:       handler.NewStatsHandler(app.StatsService, app.Logger),
		Onboarding:  handler.NewOnboardingHandler(app.OnboardingService, app.Logger),
	}
	app.HTTPHandler = router.NewRouter(handlers, verifier, app.Config.TrustedOrigins, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// newTokenVerifier builds the verifier matching the configured auth mode.
func (app *Application) newTokenVerifier(ctx context.Context) (middleware.TokenVerifier, error) {
	switch app.Config.AuthMode {
	case config.AuthModeJWT:
		return &middleware.JWTVerifier{Secret: []byte(app.Config.JWTSecret)}, nil
	default:
		client, err := bootstrap.InitFirebase(ctx)
		if err != nil {
			return nil, err
		}
		return &middleware.FirebaseVerifier{Client: client}, nil
	}
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
