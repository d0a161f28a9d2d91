package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/statefacts/core/internal/adapters/dataset"
	"github.com/statefacts/core/internal/adapters/repository"
	"github.com/statefacts/core/internal/application/services"
	"github.com/statefacts/core/internal/infrastructure/config"
	"github.com/statefacts/core/internal/infrastructure/database"
	"github.com/statefacts/core/internal/infrastructure/logger"
	"github.com/statefacts/core/internal/infrastructure/metrics"
	"github.com/statefacts/core/internal/infrastructure/server"
	"github.com/statefacts/core/internal/ports"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

const shutdownTimeout = 15 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the US States API server",
		Long:  "Load the state dataset, connect the fun facts store and serve the HTTP API until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage the postgres fun facts schema (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print StateFacts version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "StateFacts %s\n", Version)
		},
	}
}

// storage is an opened fun facts backend
type storage struct {
	repo  ports.FunFactRepository
	ping  server.Pinger
	close func(context.Context) error
}

func openStorage(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		m, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMongoFunFactRepository(m.Collection(), appLogger)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = m.Close(ctx)
			return nil, err
		}
		return &storage{repo: repo, ping: repo, close: m.Close}, nil

	case config.DriverPostgres:
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, err
		}
		return &storage{
			repo:  repository.NewPostgresFunFactRepository(db.DB, appLogger),
			ping:  server.PingFunc(db.HealthCheck),
			close: func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMemory:
		appLogger.Warn("Using in-memory fun facts storage, writes are lost on restart")
		repo := repository.NewMemoryFunFactRepository()
		return &storage{
			repo:  repo,
			ping:  repo,
			close: func(context.Context) error { return nil },
		}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	states, err := dataset.NewSource(cfg.Dataset.Path).Load()
	if err != nil {
		appLogger.Fatalw("Failed to load state dataset", "error", err)
	}

	store, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to connect to storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			appLogger.Errorw("Failed to close storage", "error", err)
		}
	}()

	catalog := services.NewCatalog(states, appLogger)
	if err := catalog.Sync(ctx, store.repo); err != nil {
		appLogger.Fatalw("Failed to join fun facts into catalog", "error", err)
	}

	opts := []services.Option{services.WithMaxAttempts(cfg.Storage.MaxWriteAttempts)}
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
		m.SetFunFactCount(catalog.FactCount())
		opts = append(opts, services.WithRecorder(m))
	}

	srv, err := server.New(cfg, server.Dependencies{
		Catalog:  catalog,
		FunFacts: services.NewFunFactService(store.repo, catalog, appLogger, opts...),
		Storage:  store.ping,
		Metrics:  m,
	}, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting US States API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"storage", cfg.Storage.Driver,
		"states", catalog.Len(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.GetAddr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Errorw("Server failed", "error", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Errorw("Graceful shutdown failed", "error", err)
		}
	}
}

func newMigrator(cfg *config.Config) (*migrate.Migrate, func(), error) {
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.Database.GetMigrationsURL(), "postgres", driver)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return m, func() { db.Close() }, nil
}

func runMigration(direction string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	m, closeDB, err := newMigrator(cfg)
	if err != nil {
		log.Fatalf("Failed to prepare migrations: %v", err)
	}
	defer closeDB()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No migrations to run")
		return
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Printf("Migration %s completed successfully\n", direction)
}

func showMigrationVersion() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	m, closeDB, err := newMigrator(cfg)
	if err != nil {
		log.Fatalf("Failed to prepare migrations: %v", err)
	}
	defer closeDB()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("No migrations applied")
		return
	}
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}
