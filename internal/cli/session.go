package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/catalog"
	"github.com/mesh-intelligence/shelf/internal/logger"
	"github.com/mesh-intelligence/shelf/internal/store"
)

// session is an attached store and the catalog over it. The caller must
// Close it.
type session struct {
	settings settings
	log      zerolog.Logger
	backend  *store.Backend
	catalog  *catalog.Catalog
}

// openSession loads settings and attaches the configured store.
func openSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	s, err := loadSettings(*flags)
	if err != nil {
		return nil, systemError("%w", err)
	}

	log := logger.New(s.logLevel, s.logFormat, cmd.ErrOrStderr())
	backend := store.NewBackend(log)
	if err := backend.Attach(s.config); err != nil {
		return nil, systemError("attach %s store: %w", s.config.Backend, err)
	}
	log.Debug().Str("data_dir", s.config.DataDir).Str("config_dir", s.configDir).Msg("session opened")

	return &session{
		settings: s,
		log:      log,
		backend:  backend,
		catalog:  catalog.New(backend, log),
	}, nil
}

// Close detaches the store.
func (s *session) Close() error {
	return s.backend.Detach()
}
