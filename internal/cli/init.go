package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shelf/internal/logger"
	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/internal/store"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
}

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf storage",
		Long:  "Create the configuration and data directories, then create the catalog schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	s, err := loadSettings(*flags)
	if err != nil {
		return systemError("%w", err)
	}

	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return systemError("create config directory: %w", err)
	}

	path := paths.ConfigFile(s.configDir)
	if err := writeConfigIfMissing(path, s.config); err != nil {
		return systemError("write config: %w", err)
	}

	log := logger.New(s.logLevel, s.logFormat, cmd.ErrOrStderr())
	backend := store.NewBackend(log)
	if err := backend.Attach(s.config); err != nil {
		return systemError("initialize storage: %w", err)
	}
	if err := backend.Detach(); err != nil {
		return systemError("finalize storage: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Shelf initialized (%s, config %s)\n", s.config.Backend, path)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg. An existing file is
// left alone.
func writeConfigIfMissing(path string, cfg types.Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	out := configFile{Backend: cfg.Backend}
	if cfg.Backend == types.BackendSQLite {
		out.DataDir = cfg.DataDir
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
