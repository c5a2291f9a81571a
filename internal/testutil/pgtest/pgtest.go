package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/edgeflare/tastebud/pkg/store"
	"github.com/stretchr/testify/require"
)

// ConnString returns TEST_DATABASE or skips the test when it is unset.
func ConnString(t testing.TB) string {
	connString := os.Getenv("TEST_DATABASE")
	if connString == "" {
		t.Skip("TEST_DATABASE not set")
	}
	return connString
}

// Open migrates the TEST_DATABASE catalog (schema and sample data) and returns
// a store handle that is closed when the test ends.
func Open(t testing.TB) store.DB {
	cfg := store.Config{Driver: "postgres", DSN: ConnString(t)}
	require.NoError(t, store.Migrate(cfg, 0))

	db, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}
