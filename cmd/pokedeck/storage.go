package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/file"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/memory"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/postgres"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/sqlite"
)

// openStorage builds the cart slot store selected by cfg. The returned
// func releases it.
func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.KV, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("carts are kept in memory and lost on restart")
		return memory.New(), noop, nil

	case config.DriverFile:
		s, err := file.Open(cfg.StoragePath)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.DriverSQLite:
		sqlDB, err := db.OpenSQLite(cfg.StoragePath)
		if err != nil {
			return nil, noop, err
		}
		if cfg.RunMigrations {
			if err := db.RunSQLiteMigrations(sqlDB, logger); err != nil {
				_ = sqlDB.Close()
				return nil, noop, err
			}
		}
		s := sqlite.New(sqlDB)
		return s, func() { _ = s.Close() }, nil

	case config.DriverPostgres:
		if cfg.RunMigrations {
			if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				return nil, noop, fmt.Errorf("run migrations: %w", err)
			}
		}
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		return postgres.New(pool), pool.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
