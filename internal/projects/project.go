// Package projects implements the project domain: the construction jobs
// estimates belong to, and the quantity logic version each one uses.
package projects

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/internal/resolver"
)

// Project is a construction job. QuantityLogicVersion pins the quantity
// logic explicitly; when nil the creation date decides.
type Project struct {
	ID                   uuid.UUID `json:"id"`
	Name                 string    `json:"name"`
	Description          *string   `json:"description"`
	QuantityLogicVersion *int      `json:"quantity_logic_version"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a project.
type CreateCommand struct {
	Name                 string  `json:"name"`
	Description          *string `json:"description"`
	QuantityLogicVersion *int    `json:"quantity_logic_version"`
}

// UpdateCommand carries the data needed to update a project.
type UpdateCommand struct {
	Name                 string  `json:"name"`
	Description          *string `json:"description"`
	QuantityLogicVersion *int    `json:"quantity_logic_version"`
}

func (c *CreateCommand) validate() error {
	return validateFields(&c.Name, c.QuantityLogicVersion)
}

func (c *UpdateCommand) validate() error {
	return validateFields(&c.Name, c.QuantityLogicVersion)
}

func validateFields(name *string, version *int) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProject)
	}
	if version != nil && *version != resolver.VersionLegacy && *version != resolver.VersionResolver {
		return fmt.Errorf("%w: quantity_logic_version must be %d or %d",
			ErrInvalidProject, resolver.VersionLegacy, resolver.VersionResolver)
	}
	return nil
}
