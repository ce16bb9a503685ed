package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shelf/internal/logger"
	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyPgDSN     = "postgres.dsn"
	cfgKeyPgDriver  = "postgres.driver"
	cfgKeyLogLevel  = "log.level"
	cfgKeyLogFormat = "log.format"
)

// envBindings lets SHELF_* variables override config.yaml. data_dir is
// absent: SHELF_DATA_DIR ranks below config.yaml and is read by paths.
var envBindings = map[string]string{
	cfgKeyBackend:   "SHELF_BACKEND",
	cfgKeyPgDSN:     "SHELF_POSTGRES_DSN",
	cfgKeyPgDriver:  "SHELF_POSTGRES_DRIVER",
	cfgKeyLogLevel:  "SHELF_LOG_LEVEL",
	cfgKeyLogFormat: "SHELF_LOG_FORMAT",
}

// dotEnvFile is loaded from the working directory before config is read.
var dotEnvFile = ".env"

// settings is the resolved configuration for one command run.
type settings struct {
	configDir string
	config    types.Config
	logLevel  string
	logFormat string
}

// loadSettings resolves directories, loads .env and reads config.yaml with
// viper. A missing config.yaml or .env is not an error.
func loadSettings(f rootFlags) (settings, error) {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return settings{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	configDir, err := paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return settings{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyPgDriver, types.DriverPgx)
	v.SetDefault(cfgKeyLogLevel, logger.DefaultLevel.String())
	v.SetDefault(cfgKeyLogFormat, logger.FormatConsole)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return settings{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(f.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, fmt.Errorf("resolve data dir: %w", err)
	}

	return settings{
		configDir: configDir,
		config: types.Config{
			Backend: v.GetString(cfgKeyBackend),
			DataDir: dataDir,
			Postgres: types.PostgresConfig{
				DSN:    v.GetString(cfgKeyPgDSN),
				Driver: v.GetString(cfgKeyPgDriver),
			},
		},
		logLevel:  v.GetString(cfgKeyLogLevel),
		logFormat: v.GetString(cfgKeyLogFormat),
	}, nil
}
