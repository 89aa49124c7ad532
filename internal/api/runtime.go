package api

import (
	"github.com/JaimeStill/takeoff/internal/config"
	"github.com/JaimeStill/takeoff/internal/infrastructure"
	"github.com/JaimeStill/takeoff/internal/resolver"
	"github.com/JaimeStill/takeoff/pkg/pagination"
)

// Runtime extends Infrastructure with the resolver engine and the
// API-specific settings domain systems share.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination   pagination.Config
	Resolver     *resolver.Resolver
	Gate         resolver.Gate
	WastePercent float64
	Concurrency  int
	MaxListSize  int32
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Verifier:  infra.Verifier,
		},
		Pagination:   cfg.API.Pagination,
		Resolver:     resolver.New(logger),
		Gate:         resolver.NewGate(cfg.Resolver.CutoffTime()),
		WastePercent: cfg.Resolver.WastePercent(),
		Concurrency:  cfg.Resolver.Concurrency,
		MaxListSize:  cfg.Storage.MaxListSize,
	}
}
