// Package estimates implements the estimate domain: material lists measured
// for a project, their resolved quantities, and the manual overrides that
// replace automatic resolution.
package estimates

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/takeoff/internal/resolver"
)

// Source records who produced an estimate's measurements.
type Source string

const (
	SourceManual Source = "manual"
	SourceAI     Source = "ai"
)

// Estimate is a measured material list for a project. Summary and
// ResolvedAt are set once the estimate has been resolved.
type Estimate struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    uuid.UUID  `json:"project_id"`
	Label        string     `json:"label"`
	Source       Source     `json:"source"`
	BaseArea     float64    `json:"base_area"`
	WastePercent float64    `json:"waste_percent"`
	Summary      *string    `json:"summary"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `json:"created_at"`
	Materials    []Material `json:"materials"`
}

// Material is one line of an estimate. Result holds the last resolution.
type Material struct {
	ID              uuid.UUID                `json:"id"`
	Position        int                      `json:"position"`
	Name            string                   `json:"name"`
	MaterialType    resolver.Category        `json:"material_type,omitempty"`
	BaseQuantity    *float64                 `json:"base_quantity,omitempty"`
	Unit            string                   `json:"unit"`
	CoverageRate    *float64                 `json:"coverage_rate,omitempty"`
	ContainerUnit   string                   `json:"container_unit,omitempty"`
	ThicknessInches *float64                 `json:"thickness_inches,omitempty"`
	ManualOverride  *resolver.ManualOverride `json:"manual_override,omitempty"`
	Result          *resolver.Output         `json:"result,omitempty"`
}

// Resolvable converts the material into the resolver's batch input.
func (m Material) Resolvable() resolver.Material {
	return resolver.Material{
		Name:            m.Name,
		MaterialType:    m.MaterialType,
		BaseQuantity:    m.BaseQuantity,
		Unit:            m.Unit,
		CoverageRate:    m.CoverageRate,
		ContainerUnit:   m.ContainerUnit,
		ThicknessInches: m.ThicknessInches,
		ManualOverride:  m.ManualOverride,
	}
}

// Resolvables converts the estimate's materials in position order.
func (e Estimate) Resolvables() []resolver.Material {
	out := make([]resolver.Material, len(e.Materials))
	for i, m := range e.Materials {
		out[i] = m.Resolvable()
	}
	return out
}

// CreateCommand carries the data needed to create an estimate.
// WastePercent falls back to the configured default when nil.
type CreateCommand struct {
	ProjectID    uuid.UUID           `json:"project_id"`
	Label        string              `json:"label"`
	BaseArea     float64             `json:"base_area"`
	WastePercent *float64            `json:"waste_percent,omitempty"`
	Materials    []resolver.Material `json:"materials"`
}

// ImportCommand carries raw upstream takeoff content for an AI-sourced
// estimate. Content is parsed with ParseTakeoff.
type ImportCommand struct {
	ProjectID    uuid.UUID `json:"project_id"`
	Label        string    `json:"label"`
	WastePercent *float64  `json:"waste_percent,omitempty"`
	Content      string    `json:"content"`
}

// OverrideCommand carries a manual quantity decision for one material.
// ResolvedBy falls back to the authenticated subject.
type OverrideCommand struct {
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Reason     string  `json:"reason"`
	ResolvedBy string  `json:"resolved_by,omitempty"`
}

// Override validates the command and builds the override record stamped
// with now.
func (c OverrideCommand) Override(subject string, now time.Time) (resolver.ManualOverride, error) {
	if math.IsNaN(c.Quantity) || math.IsInf(c.Quantity, 0) || c.Quantity <= 0 {
		return resolver.ManualOverride{}, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidOverride)
	}

	unit := strings.TrimSpace(c.Unit)
	if unit == "" {
		return resolver.ManualOverride{}, fmt.Errorf("%w: unit is required", ErrInvalidOverride)
	}

	reason := strings.TrimSpace(c.Reason)
	if reason == "" {
		return resolver.ManualOverride{}, fmt.Errorf("%w: reason is required", ErrInvalidOverride)
	}

	by := strings.TrimSpace(c.ResolvedBy)
	if by == "" {
		by = subject
	}

	return resolver.ManualOverride{
		Override:   true,
		Quantity:   c.Quantity,
		Unit:       unit,
		Reason:     reason,
		ResolvedBy: by,
		Timestamp:  now.UTC(),
	}, nil
}

// ResolveSummary reports the outcome of resolving one estimate.
type ResolveSummary struct {
	EstimateID uuid.UUID `json:"estimate_id"`
	Label      string    `json:"label"`
	Resolved   int       `json:"resolved"`
	Failed     int       `json:"failed"`
	Summary    string    `json:"summary"`
}

func (c *CreateCommand) validate(defaultWaste float64) error {
	c.Label = strings.TrimSpace(c.Label)
	if c.Label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidEstimate)
	}
	if c.ProjectID == uuid.Nil {
		return fmt.Errorf("%w: project_id is required", ErrInvalidEstimate)
	}
	if c.WastePercent == nil {
		c.WastePercent = &defaultWaste
	}
	if err := validMeasure("base_area", c.BaseArea); err != nil {
		return err
	}
	if err := validMeasure("waste_percent", *c.WastePercent); err != nil {
		return err
	}

	for i := range c.Materials {
		m := &c.Materials[i]
		m.Name = strings.TrimSpace(m.Name)
		if m.Name == "" && m.MaterialType == "" {
			return fmt.Errorf("%w: material %d needs a name or material_type", ErrInvalidEstimate, i)
		}
		measures := []struct {
			field string
			value *float64
		}{
			{"base_quantity", m.BaseQuantity},
			{"coverage_rate", m.CoverageRate},
			{"thickness_inches", m.ThicknessInches},
		}
		for _, ms := range measures {
			if ms.value == nil {
				continue
			}
			if err := validMeasure(fmt.Sprintf("material %d %s", i, ms.field), *ms.value); err != nil {
				return err
			}
		}
		if m.ManualOverride != nil && !m.ManualOverride.Override {
			m.ManualOverride = nil
		}
		if m.ManualOverride != nil {
			if err := m.ManualOverride.Validate(); err != nil {
				return fmt.Errorf("%w: material %d: %v", ErrInvalidEstimate, i, err)
			}
		}
	}

	return nil
}

func validMeasure(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidEstimate, field)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidEstimate, field)
	}
	return nil
}
