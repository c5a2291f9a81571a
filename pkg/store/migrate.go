package store

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the embedded schema and sample data. steps == 0 applies all
// pending migrations, a positive value applies at most that many and a
// negative value rolls back that many.
// The serving path never calls it: the store is written only by this command.
func Migrate(cfg Config, steps int) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("store: migration source: %w", err)
	}

	databaseURL, err := migrationURL(cfg)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("store: failed to create migration instance: %w", err)
	}
	defer m.Close()

	if steps != 0 {
		err = m.Steps(steps)
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("store: failed to run migrations: %w", err)
	}
	return nil
}

func migrationURL(cfg Config) (string, error) {
	switch cfg.Driver {
	case "sqlite", "sqlite3", "":
		return "sqlite3://" + strings.TrimPrefix(cfg.DSN, "file:"), nil
	case "postgres", "postgresql", "pgx":
		_, rest, ok := strings.Cut(cfg.DSN, "://")
		if !ok {
			return "", fmt.Errorf("store: postgres migrations need a URL connection string")
		}
		return "pgx5://" + rest, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
