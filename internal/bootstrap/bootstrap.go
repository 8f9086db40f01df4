// Package bootstrap holds the wiring shared by the server and CLI entry
// points: logger setup and credential store selection.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	redisadapter "github.com/ericfisherdev/professionalaize/internal/adapter/driven/redis"
	sqliteadapter "github.com/ericfisherdev/professionalaize/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/professionalaize/internal/config"
	"github.com/ericfisherdev/professionalaize/internal/domain/port/driven"
)

// NewLogger builds a JSON slog.Logger at level writing to w and installs it
// as the default logger.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// OpenStore opens the credential store selected by cfg.Store. The returned
// close function releases it and is never nil.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (driven.CredentialStore, func() error, error) {
	switch cfg.Store {
	case config.StoreRedis:
		store := redisadapter.NewStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisPrefix)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		logger.Info("credential store opened", "backend", config.StoreRedis, "addr", cfg.RedisAddr)
		return store, store.Close, nil

	case config.StoreSQLite:
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		repo := sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
		if !repo.Encrypted() {
			logger.Warn("no secret key configured, API key is stored unencrypted",
				"hint", "set "+config.EnvPrefix+"SECRET_KEY to 64 hex characters")
		}
		logger.Info("credential store opened", "backend", config.StoreSQLite, "path", db.Path())
		return repo, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
