package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"

	"mughal/internal/advisor"
	"mughal/internal/auth"
	"mughal/internal/config"
	"mughal/internal/database"
	"mughal/internal/handlers"
	"mughal/internal/ids"
	"mughal/internal/ledger"
	"mughal/internal/logger"
	"mughal/internal/services"
	"mughal/internal/store"
	"mughal/internal/store/kv"
	"mughal/internal/validator"

	_ "mughal/internal/docs" // Import swagger docs
)

// @title           Mughal ERP API
// @version         1.0
// @description     Point of sale and bookkeeping for a retail and wholesale store: sales, purchases, returns, inventory, customer and supplier ledgers, expenses and reports.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ids.SetNode(appConfig.NodeID)
	validator.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, closeBackend, err := openBackend(ctx, appConfig)
	if err != nil {
		return err
	}
	defer closeBackend()

	st := store.New(backend)
	if err := st.Load(ctx); err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if appConfig.ResetState {
		log.Warn("RESET_STATE is set; discarding stored history and reseeding")
		if err := st.Reset(ctx); err != nil {
			return fmt.Errorf("failed to reset state: %w", err)
		}
	}

	directory, err := buildDirectory(appConfig)
	if err != nil {
		return err
	}

	adv, err := advisor.New(ctx, appConfig.GeminiAPIKey, appConfig.GeminiModel, appConfig.InsightsTimeout)
	if err != nil {
		return fmt.Errorf("failed to create advisor: %w", err)
	}

	// Initialize services
	now := services.Clock(time.Now)
	policy := ledger.Policy{AllowNegativeStock: appConfig.AllowNegativeStock}
	sessionService := services.NewSessionService(st, directory, now)

	// Initialize handlers
	router := newRouter(routeDeps{
		auth:     handlers.NewAuthHandler(sessionService),
		products: handlers.NewProductHandler(services.NewInventoryService(st)),
		parties:  handlers.NewPartyHandler(services.NewPartyService(st)),
		transactions: handlers.NewTransactionHandler(
			services.NewSalesService(st, policy, now),
			services.NewPurchaseService(st, now),
			services.NewReturnService(st, now),
			services.NewTransactionService(st, appConfig.BusinessName),
		),
		expenses: handlers.NewExpenseHandler(services.NewExpenseService(st, now)),
		reports: handlers.NewReportHandler(
			services.NewReportService(st, appConfig.BusinessName, appConfig.Location, now),
			services.NewInsightService(st, adv, now),
		),
		backup:       handlers.NewBackupHandler(st),
		sessions:     st,
		backupAPIKey: appConfig.BackupAPIKey,
	})

	server := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Mughal ERP server on port %s (storage: %s)", appConfig.Port, appConfig.StorageBackend)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// openBackend connects the key-value backend selected by STORAGE_BACKEND.
// The returned func releases it.
func openBackend(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	log := logger.Get()

	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Warn("Using in-memory storage; state is lost on restart")
		return kv.NewMemoryStore(), func() {}, nil

	case config.StorageGCS:
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create GCS client: %w", err)
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Warnw("GCS client close error", "error", err)
			}
		}
		return kv.NewGCSStore(client, cfg.GCSBucket, cfg.GCSPrefix), closeFn, nil

	default:
		dbManager, err := database.NewManager(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database manager: %w", err)
		}
		if err := dbManager.RunMigrations(cfg.MigrationsDir); err != nil {
			_ = dbManager.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		closeFn := func() {
			if err := dbManager.Close(); err != nil {
				log.Warnw("database close error", "error", err)
			}
		}
		return kv.NewGormStore(dbManager.DB()), closeFn, nil
	}
}

// buildDirectory loads staff accounts from AUTH_ACCOUNTS, falling back to the
// development accounts whose passwords are set in the environment.
func buildDirectory(cfg *config.Config) (*auth.StaticDirectory, error) {
	var (
		accounts []auth.Account
		err      error
	)
	if cfg.AuthAccounts != "" {
		accounts, err = auth.ParseAccounts(cfg.AuthAccounts)
	} else {
		accounts, err = auth.DevAccounts(auth.DevPasswords{
			Admin:    cfg.DevAdminPassword,
			Cashier:  cfg.DevCashierPassword,
			Salesman: cfg.DevSalesmanPassword,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staff accounts: %w", err)
	}

	directory, err := auth.NewStaticDirectory(accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff accounts: %w", err)
	}
	if directory.Len() == 0 {
		logger.Get().Warn("No staff accounts configured; set AUTH_ACCOUNTS or DEV_*_PASSWORD to allow logins")
	}
	return directory, nil
}
