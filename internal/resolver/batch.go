package resolver

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ManualOverride is a human decision that replaces automatic resolution.
type ManualOverride struct {
	Override   bool      `json:"override"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	Reason     string    `json:"reason"`
	ResolvedBy string    `json:"resolved_by"`
	Timestamp  time.Time `json:"timestamp"`
}

// Validate rejects an override that cannot stand in for a resolved quantity.
func (o ManualOverride) Validate() error {
	if math.IsNaN(o.Quantity) || math.IsInf(o.Quantity, 0) || o.Quantity <= 0 {
		return fmt.Errorf("%w: override quantity must be greater than zero", ErrInvalidInput)
	}
	return nil
}

// Material is one line of a material list submitted for batch resolution.
// BaseQuantity falls back to the batch base area when nil.
type Material struct {
	Name            string          `json:"name"`
	MaterialType    Category        `json:"material_type,omitempty"`
	BaseQuantity    *float64        `json:"base_quantity,omitempty"`
	Unit            string          `json:"unit,omitempty"`
	CoverageRate    *float64        `json:"coverage_rate,omitempty"`
	ContainerUnit   string          `json:"container_unit,omitempty"`
	ThicknessInches *float64        `json:"thickness_inches,omitempty"`
	ManualOverride  *ManualOverride `json:"manual_override,omitempty"`
}

// Overridden reports whether the material carries an active manual override.
func (m Material) Overridden() bool {
	return m.ManualOverride != nil && m.ManualOverride.Override
}

// Validate checks the material as it would be resolved against the batch
// base area and waste percent, including an active manual override.
func (m Material) Validate(baseArea, wastePercent float64) error {
	if err := m.input(baseArea, wastePercent).Validate(); err != nil {
		return err
	}
	if m.Overridden() {
		return m.ManualOverride.Validate()
	}
	return nil
}

// ResolvedMaterial pairs a material with its resolution.
type ResolvedMaterial struct {
	Material
	Result Output `json:"result"`
}

// BatchResult partitions a material list into resolved and failed items,
// each in input order.
type BatchResult struct {
	Resolved []ResolvedMaterial `json:"resolved"`
	Failed   []ResolvedMaterial `json:"failed"`
	Summary  string             `json:"summary"`
}

// ResolveBatch resolves every material against a shared base area and waste
// percent. Materials with a manual override are copied through untouched.
// A partial failure never aborts the batch.
func (r *Resolver) ResolveBatch(materials []Material, baseArea, wastePercent float64) BatchResult {
	return Partition(materials, r.ResolveEach(materials, baseArea, wastePercent))
}

// ResolveEach resolves every material and returns the outputs aligned with
// the input slice.
func (r *Resolver) ResolveEach(materials []Material, baseArea, wastePercent float64) []Output {
	outputs := make([]Output, len(materials))
	failed := 0

	for i, m := range materials {
		if m.Overridden() {
			outputs[i] = overrideOutput(*m.ManualOverride)
		} else {
			outputs[i] = r.Resolve(m.input(baseArea, wastePercent))
		}
		if !outputs[i].Success {
			failed++
		}
	}

	r.logger.Info("batch resolved",
		"materials", len(materials),
		"resolved", len(materials)-failed,
		"failed", failed,
	)

	return outputs
}

// Partition splits aligned materials and outputs into a BatchResult.
func Partition(materials []Material, outputs []Output) BatchResult {
	result := BatchResult{
		Resolved: make([]ResolvedMaterial, 0, len(materials)),
		Failed:   make([]ResolvedMaterial, 0),
	}

	for i, m := range materials {
		item := ResolvedMaterial{Material: m, Result: outputs[i]}
		if outputs[i].Success {
			result.Resolved = append(result.Resolved, item)
		} else {
			result.Failed = append(result.Failed, item)
		}
	}

	result.Summary = fmt.Sprintf(
		"Resolved %d/%d materials. %d require manual input.",
		len(result.Resolved), len(materials), len(result.Failed),
	)

	return result
}

func (m Material) input(baseArea, wastePercent float64) Input {
	value := baseArea
	if m.BaseQuantity != nil {
		value = *m.BaseQuantity
	}

	unit := strings.TrimSpace(m.Unit)
	if unit == "" {
		unit = UnitSquareFeet
	}

	waste := wastePercent
	return Input{
		MaterialName:    m.Name,
		MaterialType:    m.MaterialType,
		InputUnit:       unit,
		InputValue:      value,
		CoverageRate:    m.CoverageRate,
		ContainerUnit:   m.ContainerUnit,
		WastePercent:    &waste,
		ThicknessInches: m.ThicknessInches,
	}
}

func overrideOutput(o ManualOverride) Output {
	quantity := o.Quantity
	gross := o.Quantity

	by := o.ResolvedBy
	if by == "" {
		by = "unknown user"
	}

	return Output{
		Success:          true,
		ResolvedQuantity: &quantity,
		ResolvedUnit:     o.Unit,
		GrossQuantity:    &gross,
		Method:           MethodPassthrough,
		Confidence:       ConfidenceHigh,
		Trace:            fmt.Sprintf("Manual override by %s: %s", by, o.Reason),
	}
}
