package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/mattn/go-sqlite3"
)

type sqliteDB struct {
	db *sql.DB
}

// openSQLite opens the database file read-only. A missing file is an error rather
// than a freshly created empty database.
func openSQLite(ctx context.Context, path string) (*sqliteDB, error) {
	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &sqliteDB{db: db}, nil
}

// readOnlyDSN turns a path or file: URI into a file: URI opened with mode=ro.
// Other query parameters are kept; any other mode is replaced.
func readOnlyDSN(dsn string) (string, error) {
	path, rawQuery, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" {
		return "", errors.New("sqlite: database path must be provided")
	}
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("sqlite: invalid DSN parameters %q: %w", rawQuery, err)
	}
	params.Set("mode", "ro")
	return "file:" + path + "?" + params.Encode(), nil
}

func (s *sqliteDB) Dialect() Dialect { return SQLite }

func (s *sqliteDB) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return sqlRows{rows}, nil
}

func (s *sqliteDB) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *sqliteDB) Close() { s.db.Close() }

type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { r.Rows.Close() }
