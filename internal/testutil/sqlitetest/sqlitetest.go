// Package sqlitetest provisions throwaway SQLite catalogs for tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/edgeflare/tastebud/internal/testutil"
	"github.com/edgeflare/tastebud/pkg/store"
	"github.com/stretchr/testify/require"
)

// Config returns a store config for a schema-only catalog file in t.TempDir().
func Config(t testing.TB) store.Config {
	cfg := store.Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "catalog.sqlite"),
	}
	require.NoError(t, store.Migrate(cfg, 1))
	return cfg
}

// Open creates a catalog file, inserts fixtures and returns a read-only handle
// that is closed when the test ends.
func Open(t testing.TB, fixtures testutil.Fixtures) store.DB {
	cfg := Config(t)
	Seed(t, cfg, fixtures)

	db, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

// OpenFixtures is Open with testdata/catalog.json.
func OpenFixtures(t testing.TB) (store.DB, testutil.Fixtures) {
	fixtures, err := testutil.CatalogFixtures()
	require.NoError(t, err)
	return Open(t, fixtures), fixtures
}

// Seed writes fixtures through a separate read-write connection.
func Seed(t testing.TB, cfg store.Config, fixtures testutil.Fixtures) {
	db, err := sql.Open("sqlite3", cfg.DSN)
	require.NoError(t, err)
	defer db.Close()

	for _, r := range fixtures.Restaurants {
		_, err := db.Exec(`INSERT INTO restaurants ("id", "name", "cuisine", "isVeg", "hasOutdoorSeating", "isLuxury", "rating") VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Cuisine, r.IsVeg, r.HasOutdoorSeating, r.IsLuxury, r.Rating)
		require.NoError(t, err)
	}
	for _, d := range fixtures.Dishes {
		_, err := db.Exec(`INSERT INTO dishes ("id", "name", "price", "isVeg") VALUES (?, ?, ?, ?)`,
			d.ID, d.Name, d.Price, d.IsVeg)
		require.NoError(t, err)
	}
}
