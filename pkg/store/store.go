package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Dialect identifies the SQL flavour spoken by a store.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// Placeholder returns the bind parameter marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Rows is the subset of a result set the catalog consumes. pgx.Rows satisfies it
// directly; database/sql rows are adapted.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// DB is a read-only handle shared by all requests.
type DB interface {
	Dialect() Dialect
	// Query runs a parameterized statement. args are always bound, never interpolated.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// Config describes how to reach the store.
type Config struct {
	Driver         string        `mapstructure:"driver"` // sqlite | postgres
	DSN            string        `mapstructure:"dsn"`
	ConnectTimeout time.Duration `mapstructure:"connectTimeout"`
}

var (
	ErrUnknownDriver  = errors.New("store: unknown driver")
	ErrWriteStatement = errors.New("store: statement is not read-only")
)

// DefaultConfig points at the sqlite file shipped next to the binary.
func DefaultConfig() Config {
	return Config{
		Driver:         "sqlite",
		DSN:            "./database.sqlite",
		ConnectTimeout: 10 * time.Second,
	}
}

// Open connects to the configured store and pings it, retrying with exponential
// backoff until cfg.ConnectTimeout elapses. The returned handle is ready to serve.
func Open(ctx context.Context, cfg Config) (DB, error) {
	var db DB

	operation := func() error {
		var err error
		switch cfg.Driver {
		case "sqlite", "sqlite3", "":
			db, err = openSQLite(ctx, cfg.DSN)
		case "postgres", "postgresql", "pgx":
			db, err = openPostgres(ctx, cfg.DSN)
		default:
			return backoff.Permanent(fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver))
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	b.MaxElapsedTime = cfg.ConnectTimeout
	if cfg.ConnectTimeout <= 0 {
		b.MaxElapsedTime = time.Nanosecond // single attempt
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("store: open %s: %w", cfg.Driver, err)
	}
	return db, nil
}
