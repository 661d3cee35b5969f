package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/logging"
)

func TestOpenStorageDrivers(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "memory", cfg: config.Config{StorageDriver: config.DriverMemory}},
		{name: "file", cfg: config.Config{StorageDriver: config.DriverFile, StoragePath: filepath.Join(dir, "carts.json")}},
		{name: "sqlite", cfg: config.Config{StorageDriver: config.DriverSQLite, StoragePath: filepath.Join(dir, "nested", "carts.db"), RunMigrations: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv, closeKV, err := openStorage(ctx, tt.cfg, logging.Discard())
			require.NoError(t, err)
			defer closeKV()

			require.NoError(t, kv.Set(ctx, "visitors/a/cart", "[]"))
			got, err := kv.Get(ctx, "visitors/a/cart")
			require.NoError(t, err)
			require.Equal(t, "[]", got)
		})
	}
}

func TestOpenStorageUnknownDriver(t *testing.T) {
	_, closeKV, err := openStorage(context.Background(), config.Config{StorageDriver: "redis"}, logging.Discard())
	require.Error(t, err)
	closeKV()
}
