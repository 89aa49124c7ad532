package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/takeoff/internal/config"
	"github.com/JaimeStill/takeoff/pkg/openapi"
	"github.com/JaimeStill/takeoff/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Projects.Handler().Routes(),
		domain.Estimates.Handler().Routes(),
		domain.Blueprints.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
		domain.Quantities.Routes(),
		newStorageHandler(runtime.Storage, runtime.Logger, runtime.MaxListSize).routes(),
	}

	specBytes, err := buildSpec(cfg, groups)
	if err != nil {
		return err
	}

	routes.Register(mux, groups...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}

func buildSpec(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	if cfg.API.Auth.Enabled {
		spec.RequireBearer()
	}

	for _, group := range groups {
		group.AddToSpec("", spec)
	}

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return specBytes, nil
}
