package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	pg_query "github.com/pganalyze/pg_query_go/v5"
)

type postgresDB struct {
	pool     *pgxpool.Pool
	verified sync.Map // statement text -> struct{}
}

func openPostgres(ctx context.Context, connString string) (*postgresDB, error) {
	if connString == "" {
		return nil, errors.New("connection string must be provided")
	}

	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping connection: %w", err)
	}

	return &postgresDB{pool: pool}, nil
}

func (p *postgresDB) Dialect() Dialect { return Postgres }

func (p *postgresDB) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	if err := p.verify(query); err != nil {
		return nil, err
	}
	return p.pool.Query(ctx, query, args...)
}

func (p *postgresDB) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *postgresDB) Close() { p.pool.Close() }

// verify memoizes the read-only check per statement text; the catalog issues a
// small fixed set of statements.
func (p *postgresDB) verify(query string) error {
	if _, ok := p.verified.Load(query); ok {
		return nil
	}
	if err := ReadOnly(query); err != nil {
		return err
	}
	p.verified.Store(query, struct{}{})
	return nil
}

// ReadOnly parses query with the PostgreSQL parser and reports ErrWriteStatement
// unless every statement in it is a SELECT.
func ReadOnly(query string) error {
	result, err := pg_query.Parse(query)
	if err != nil {
		return fmt.Errorf("parse statement: %w", err)
	}
	if len(result.Stmts) == 0 {
		return fmt.Errorf("%w: empty statement", ErrWriteStatement)
	}
	for _, raw := range result.Stmts {
		if raw.GetStmt().GetSelectStmt() == nil {
			return ErrWriteStatement
		}
	}
	return nil
}
