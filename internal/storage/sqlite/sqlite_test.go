package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/db"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage"
	"github.com/andreasstove999/ecommerce-system/pokedeck-go/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.KV {
		sqlDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "slots.db"))
		require.NoError(t, err)
		require.NoError(t, db.RunSQLiteMigrations(sqlDB, logging.Discard()))

		s := New(sqlDB)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
