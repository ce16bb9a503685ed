package types

import "errors"

// Config holds backend selection and parameters for Backend.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// Postgres is only consulted when Backend is BackendPostgres.
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
}

// PostgresConfig selects the database/sql driver and connection string for
// the PostgreSQL backend.
type PostgresConfig struct {
	DSN    string `json:"dsn" yaml:"dsn"`
	Driver string `json:"driver" yaml:"driver"`
}

// Supported backend names.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Supported PostgreSQL driver names. DriverPgx is the default.
const (
	DriverPgx = "pgx"
	DriverPq  = "postgres"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDriverUnknown  = errors.New("unknown postgres driver")
	ErrDSNEmpty       = errors.New("postgres dsn must not be empty")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite:   true,
	BackendPostgres: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Backend != BackendPostgres {
		return nil
	}
	if c.Postgres.DSN == "" {
		return ErrDSNEmpty
	}
	switch c.Postgres.GetDriver() {
	case DriverPgx, DriverPq:
		return nil
	default:
		return ErrDriverUnknown
	}
}

// GetDriver returns the configured driver name, defaulting to DriverPgx.
func (p PostgresConfig) GetDriver() string {
	if p.Driver == "" {
		return DriverPgx
	}
	return p.Driver
}
