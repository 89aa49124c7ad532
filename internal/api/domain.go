package api

import (
	"github.com/JaimeStill/takeoff/internal/blueprints"
	"github.com/JaimeStill/takeoff/internal/estimates"
	"github.com/JaimeStill/takeoff/internal/projects"
	"github.com/JaimeStill/takeoff/internal/resolver"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Projects   projects.System
	Estimates  estimates.System
	Blueprints blueprints.System
	Quantities *resolver.Handler
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	projectsSystem := projects.New(
		runtime.Database.Connection(),
		runtime.Gate,
		runtime.Logger,
		runtime.Pagination,
	)

	estimatesSystem := estimates.New(
		runtime.Database.Connection(),
		runtime.Resolver,
		projectsSystem,
		runtime.WastePercent,
		runtime.Concurrency,
		runtime.Logger,
		runtime.Pagination,
	)

	blueprintsSystem := blueprints.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Projects:   projectsSystem,
		Estimates:  estimatesSystem,
		Blueprints: blueprintsSystem,
		Quantities: resolver.NewHandler(
			runtime.Resolver,
			runtime.Gate,
			runtime.WastePercent,
			runtime.Logger,
		),
	}
}
