package service

import (
	"context"
	"fmt"

	"folio/internal/config"
	"folio/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var (
	_ KVStore = (*database.Repo)(nil)
	_ KVStore = (*database.MemoryKV)(nil)
)

// OpenStore connects the configured cache backend. The returned func
// releases it.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, log *logrus.Logger) (KVStore, func(), error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case "memory":
		return database.NewMemoryKV(), func() {}, nil
	case "postgres":
		db, err = database.OpenPostgres(ctx, cfg.URL)
	case "sqlite":
		db, err = database.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, nil, err
	}

	repo := database.New(db, log)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	return repo, func() { db.Close() }, nil
}
