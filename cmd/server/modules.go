package main

import (
	"net/http"

	"github.com/JaimeStill/takeoff/internal/api"
	"github.com/JaimeStill/takeoff/internal/config"
	"github.com/JaimeStill/takeoff/internal/infrastructure"
	"github.com/JaimeStill/takeoff/pkg/handlers"
	"github.com/JaimeStill/takeoff/pkg/middleware"
	"github.com/JaimeStill/takeoff/pkg/module"
	"github.com/JaimeStill/takeoff/web/scalar"
)

// Modules holds the HTTP modules mounted on the root router.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

// NewModules creates every mounted module.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", cfg.API.BasePath+"/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

// Mount attaches every module to router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

type readiness struct {
	Status  string          `json:"status"`
	Systems map[string]bool `json:"systems"`
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.Use(middleware.Recover(infra.Logger))

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, readiness{
				Status:  "not ready",
				Systems: infra.Lifecycle.Status(),
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, readiness{
			Status:  "ready",
			Systems: infra.Lifecycle.Status(),
		})
	})

	return router
}
