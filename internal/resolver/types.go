// Package resolver converts raw site measurements into procurement-ready
// material quantities. A material name is classified into a physical
// category, routed to either a closed-form physics formula or the
// coverage-rate table, and rounded up with a waste allowance. Resolution
// never approximates: when a quantity cannot be derived from known data the
// result is an explicit failure that asks for human input.
package resolver

import (
	"encoding/json"
	"slices"
	"strings"
)

// Category is the physical material family that decides how a quantity is derived.
type Category string

// Material categories. CategoryUnknown is a failure state, never a default.
const (
	CategoryPaint          Category = "paint"
	CategoryFlooring       Category = "flooring"
	CategoryDrywall        Category = "drywall"
	CategoryInsulation     Category = "insulation"
	CategoryTile           Category = "tile"
	CategoryTrim           Category = "trim"
	CategoryUnderlayment   Category = "underlayment"
	CategoryAdhesive       Category = "adhesive"
	CategoryGrout          Category = "grout"
	CategoryPrimer         Category = "primer"
	CategorySealant        Category = "sealant"
	CategoryLumber         Category = "lumber"
	CategoryConcreteVolume Category = "concrete_volume"
	CategoryAreaDirect     Category = "area_direct"
	CategoryRoofing        Category = "roofing"
	CategoryUnknown        Category = "unknown"
)

var categories = []Category{
	CategoryPaint,
	CategoryFlooring,
	CategoryDrywall,
	CategoryInsulation,
	CategoryTile,
	CategoryTrim,
	CategoryUnderlayment,
	CategoryAdhesive,
	CategoryGrout,
	CategoryPrimer,
	CategorySealant,
	CategoryLumber,
	CategoryConcreteVolume,
	CategoryAreaDirect,
	CategoryRoofing,
	CategoryUnknown,
}

// Categories returns every material category.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory validates a string as a known category.
// Returns ErrInvalidCategory if the value is not recognized.
func ParseCategory(s string) (Category, error) {
	v := Category(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(categories, v) {
		return "", ErrInvalidCategory
	}
	return v, nil
}

// UnmarshalJSON accepts an empty string (no explicit category) or a known category.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if strings.TrimSpace(raw) == "" {
		*c = ""
		return nil
	}
	v, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Method records how a quantity was derived.
type Method string

const (
	MethodAreaToLiquid   Method = "area_to_liquid"
	MethodAreaToBoxes    Method = "area_to_boxes"
	MethodAreaToSheets   Method = "area_to_sheets"
	MethodAreaToRolls    Method = "area_to_rolls"
	MethodAreaToBags     Method = "area_to_bags"
	MethodAreaToVolume   Method = "area_to_volume"
	MethodAreaDirect     Method = "area_direct"
	MethodLinearToPieces Method = "linear_to_pieces"
	MethodPassthrough    Method = "passthrough"
	MethodManualRequired Method = "manual_required"
)

// Confidence grades a resolution. Only ConfidenceHigh and ConfidenceFailed
// are produced today; medium and low are reserved.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceFailed Confidence = "failed"
)

// Input is a single measurement to resolve.
// MaterialType overrides the classifier when set. CoverageRate and
// ContainerUnit override the registry field by field. WastePercent defaults
// to 10 and ThicknessInches to 4 (concrete only) when nil.
type Input struct {
	MaterialName    string   `json:"material_name"`
	MaterialType    Category `json:"material_type,omitempty"`
	InputUnit       string   `json:"input_unit"`
	InputValue      float64  `json:"input_value"`
	CoverageRate    *float64 `json:"coverage_rate,omitempty"`
	ContainerUnit   string   `json:"container_unit,omitempty"`
	WastePercent    *float64 `json:"waste_percent,omitempty"`
	ThicknessInches *float64 `json:"thickness_inches,omitempty"`
}

// Output is the result of resolving one Input.
// ResolvedQuantity is the net amount and GrossQuantity includes waste.
// Neither is set when Success is false.
type Output struct {
	Success          bool       `json:"success"`
	ResolvedQuantity *float64   `json:"resolved_quantity,omitempty"`
	ResolvedUnit     string     `json:"resolved_unit,omitempty"`
	GrossQuantity    *float64   `json:"gross_quantity,omitempty"`
	Method           Method     `json:"resolution_method"`
	Confidence       Confidence `json:"confidence"`
	ErrorCode        ErrorCode  `json:"error_code,omitempty"`
	ErrorMessage     string     `json:"error_message,omitempty"`
	Trace            string     `json:"calculation_trace,omitempty"`
}

// Err returns nil for a successful output, otherwise the sentinel error for
// its ErrorCode wrapped with the error message.
func (o Output) Err() error {
	if o.Success {
		return nil
	}
	return o.ErrorCode.wrap(o.ErrorMessage)
}
