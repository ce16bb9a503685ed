// Package store is the persistence gateway for the catalog. It owns the
// database handle, creates the schema, runs units of work inside
// transactions and maps driver failures onto the catalog error kinds.
//
// SQLite (modernc.org/sqlite) is the default store. PostgreSQL is reachable
// through pgx or lib/pq. SQL is built with goqu and scanned with sqlx.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// Backend owns the connection to the relational store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sqlx.DB
	dialect  dialect
	log      zerolog.Logger
}

// NewBackend creates a detached backend that logs through log.
// Call Attach with a Config to open the store.
func NewBackend(log zerolog.Logger) *Backend {
	return &Backend{log: log.With().Str("component", "store").Logger()}
}

// Attach opens the store described by config and creates the schema if it
// does not exist. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	d, err := dialectFor(config)
	if err != nil {
		return err
	}

	if config.Backend == types.BackendSQLite {
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sqlx.Open(d.driver, d.dsn)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", types.ErrStoreFault, config.Backend, err)
	}
	if d.singleConn {
		db.SetMaxOpenConns(1)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return classify("connect", err)
	}

	for _, stmt := range schemaDDL(config.Backend) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return classify("create schema", err)
		}
	}

	b.db = db
	b.dialect = d
	b.config = config
	b.attached = true

	b.log.Debug().
		Str("backend", config.Backend).
		Str("driver", d.driver).
		Msg("store attached")
	return nil
}

// Detach closes the connection. After Detach, all operations return
// ErrCatalogDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.log.Debug().Msg("store detached")
	return nil
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// Counts returns the number of authors, books and copies. The three counts
// are independent reads and are not taken inside one transaction.
func (b *Backend) Counts(ctx context.Context) (types.Stats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Stats{}, types.ErrCatalogDetached
	}

	var stats types.Stats
	targets := []struct {
		table string
		dst   *int64
	}{
		{types.AuthorsTable, &stats.Authors},
		{types.BooksTable, &stats.Books},
		{types.CopiesTable, &stats.Copies},
	}
	for _, t := range targets {
		n, err := count(ctx, b.db, b.dialect.sql, t.table)
		if err != nil {
			return types.Stats{}, err
		}
		*t.dst = n
	}
	return stats, nil
}

func count(ctx context.Context, q sqlx.QueryerContext, d goqu.DialectWrapper, table string) (int64, error) {
	query, args, err := d.From(table).Select(goqu.COUNT(goqu.Star())).Prepared(true).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("%w: build count: %w", types.ErrStoreFault, err)
	}
	var n int64
	if err := sqlx.GetContext(ctx, q, &n, query, args...); err != nil {
		return 0, classify("count "+table, err)
	}
	return n, nil
}
