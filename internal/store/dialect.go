package store

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// DBFileName is the SQLite database file created inside the data directory.
const DBFileName = "catalog.db"

// dialect bundles what differs between the supported stores: the
// database/sql driver, the goqu SQL dialect and how generated keys come back.
type dialect struct {
	driver string
	dsn    string
	sql    goqu.DialectWrapper

	// returning is true when INSERT ... RETURNING yields the generated key.
	// Otherwise the key is read from sql.Result.LastInsertId.
	returning bool

	// singleConn limits the pool to one connection (SQLite).
	singleConn bool
}

// dialectFor resolves the dialect for a validated config.
func dialectFor(config types.Config) (dialect, error) {
	switch config.Backend {
	case types.BackendSQLite:
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		return dialect{
			driver:     "sqlite",
			dsn:        sqliteDSN(filepath.Join(dataDir, DBFileName)),
			sql:        goqu.Dialect("sqlite3"),
			singleConn: true,
		}, nil
	case types.BackendPostgres:
		return dialect{
			driver:    config.Postgres.GetDriver(),
			dsn:       config.Postgres.DSN,
			sql:       goqu.Dialect("postgres"),
			returning: true,
		}, nil
	default:
		return dialect{}, fmt.Errorf("%w: %q", types.ErrBackendUnknown, config.Backend)
	}
}

// sqliteDSN enables foreign keys and a busy timeout on every connection.
func sqliteDSN(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	return "file:" + path + "?" + q.Encode()
}
