// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, token verification)
// that domain systems require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/takeoff/internal/config"
	"github.com/JaimeStill/takeoff/pkg/auth"
	"github.com/JaimeStill/takeoff/pkg/database"
	"github.com/JaimeStill/takeoff/pkg/lifecycle"
	"github.com/JaimeStill/takeoff/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
// Verifier is nil when bearer-token auth is disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Verifier  auth.Verifier
}

// New creates an Infrastructure from the application configuration, logging to stderr.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithOutput(cfg, os.Stderr)
}

// NewWithOutput creates an Infrastructure whose logger writes to w.
// It initializes all systems but does not start them; call Start separately.
func NewWithOutput(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := cfg.Logging.NewLogger(w).With("service", "takeoff", "env", cfg.Env())

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	var verifier auth.Verifier
	if cfg.API.Auth.Enabled {
		verifier = auth.NewVerifier(lc.Context(), &cfg.API.Auth)
		logger.Info("bearer token verification enabled", "issuer", cfg.API.Auth.Issuer)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Verifier:  verifier,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}
