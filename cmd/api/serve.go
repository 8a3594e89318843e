package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"pet-adoption-center/internal/adapters/storage/postgres"
	"pet-adoption-center/internal/adapters/storage/sqlite"
	"pet-adoption-center/internal/config"
	"pet-adoption-center/internal/platform/logger"
	"pet-adoption-center/internal/platform/metrics"
	"pet-adoption-center/internal/router"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	repos, db, err := openRepositories(cfg, log)
	if err != nil {
		log.Error("storage init failed", map[string]any{"driver": cfg.StorageDriver, "error": err.Error()})
		return err
	}
	if db != nil {
		defer db.Close()
	}

	h := router.NewRouter(router.Options{
		Logger:       log,
		Metrics:      metrics.New(),
		Repositories: repos,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "storage": repos.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err.Error()})
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newLogger(cfg config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

// openRepositories elige el backend según STORAGE_DRIVER. Para los
// backends SQL devuelve también el *sql.DB para cerrarlo al salir.
func openRepositories(cfg config.Config, log logger.Logger) (router.Repositories, *sql.DB, error) {
	if cfg.StorageDriver == config.DriverMemory {
		return router.MemoryRepositories(), nil, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return router.Repositories{}, nil, err
	}

	if cfg.AutoMigrate {
		if err := migrateUp(cfg, db); err != nil {
			_ = db.Close()
			return router.Repositories{}, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("migrations applied", map[string]any{"driver": cfg.StorageDriver})
	}

	if cfg.StorageDriver == config.DriverPostgres {
		return router.SQLRepositories(postgres.NewStore(db)), db, nil
	}
	return router.SQLRepositories(sqlite.NewStore(db)), db, nil
}

func openDB(cfg config.Config) (*sql.DB, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DBDSN)
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("driver %q has no database", cfg.StorageDriver)
	}
}

func migrateUp(cfg config.Config, db *sql.DB) error {
	if cfg.StorageDriver == config.DriverPostgres {
		return postgres.Migrate(db)
	}
	return sqlite.Migrate(db)
}

func migrateDown(cfg config.Config, db *sql.DB) error {
	if cfg.StorageDriver == config.DriverPostgres {
		return postgres.MigrateDown(db)
	}
	return sqlite.MigrateDown(db)
}
