// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/takeoff/internal/config"
	"github.com/JaimeStill/takeoff/internal/infrastructure"
	"github.com/JaimeStill/takeoff/pkg/auth"
	"github.com/JaimeStill/takeoff/pkg/middleware"
	"github.com/JaimeStill/takeoff/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Bearer-token auth wraps every route when the infrastructure carries a verifier.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.Recover(runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	if runtime.Verifier != nil {
		m.Use(auth.Middleware(runtime.Verifier, runtime.Logger))
	}

	return m, nil
}
