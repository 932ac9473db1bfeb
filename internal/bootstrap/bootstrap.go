// Package bootstrap provides dependency initialization for the job board.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/maauso/joblisting/internal/config"
	"github.com/maauso/joblisting/internal/job"
	"github.com/maauso/joblisting/internal/server"
	"github.com/maauso/joblisting/internal/storage"
)

// Dependencies holds all initialized dependencies for the HTTP server.
type Dependencies struct {
	Store storage.Store
	Jobs  *job.Collection
	App   *server.App

	closers []io.Closer
}

// NewDependencies creates the store selected by cfg, loads the job collection
// from it and builds the application state.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...server.AppOption) (*Dependencies, error) {
	if logger == nil {
		logger = slog.Default()
	}

	deps := &Dependencies{}
	store, err := deps.initStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	adapter := job.NewAdapter(store, cfg.StoreKey, logger)
	jobs := job.OpenCollection(ctx, adapter, logger)

	deps.Store = store
	deps.Jobs = jobs
	deps.App = server.NewApp(jobs, logger, opts...)
	return deps, nil
}

// Close releases resources held by the store.
func (d *Dependencies) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// initStorage creates the storage backend named by cfg.StoreBackend.
func (d *Dependencies) initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		logger.Info("memory storage configured")
		return storage.NewMemoryStore(), nil

	case config.BackendLocal:
		localStore, err := storage.NewLocalStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("create local storage: %w", err)
		}
		logger.Info("local storage configured",
			slog.String("data_dir", localStore.Dir()),
		)
		return localStore, nil

	case config.BackendSQLite:
		sqliteStore, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("create sqlite storage: %w", err)
		}
		d.closers = append(d.closers, sqliteStore)
		logger.Info("sqlite storage configured",
			slog.String("path", cfg.SQLitePath),
		)
		return sqliteStore, nil

	case config.BackendS3:
		s3Store, err := storage.NewS3Store(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Prefix:          cfg.S3Prefix,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 storage: %w", err)
		}
		logger.Info("S3 storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil

	case config.BackendSupabase:
		supabaseStore, err := storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey, storage.DefaultSupabaseTable)
		if err != nil {
			return nil, fmt.Errorf("create supabase storage: %w", err)
		}
		logger.Info("supabase storage configured",
			slog.String("table", storage.DefaultSupabaseTable),
		)
		return supabaseStore, nil

	default:
		return nil, fmt.Errorf("%w: got %q", config.ErrUnknownBackend, cfg.StoreBackend)
	}
}
