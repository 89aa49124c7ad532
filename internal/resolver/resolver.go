package resolver

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
)

// Resolver turns measurements into procurement quantities. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	logger *slog.Logger
}

// New creates a Resolver. A nil logger discards diagnostics.
func New(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{logger: logger.With("system", "resolver")}
}

// Resolve derives the net and gross quantity for a single input. Failures
// are returned as an Output with Success false, never as an error.
func (r *Resolver) Resolve(in Input) Output {
	mult := wasteMultiplier(in.WastePercent)

	category := in.MaterialType
	if category == "" {
		category = Classify(in.MaterialName)
		r.logger.Debug("material classified", "material", in.MaterialName, "category", category)
	}

	var out Output
	switch category {
	case CategoryUnknown:
		out = failure(
			CodeUnknownMaterialType,
			fmt.Sprintf("unable to classify material %q; select a material type or enter the quantity manually", in.MaterialName),
		)
	case CategoryAreaDirect:
		out = resolveAreaDirect(in, mult)
	case CategoryConcreteVolume:
		out = resolveConcrete(in, mult)
	default:
		out = resolveStandard(in, category, mult)
	}

	if out.Success {
		r.logger.Debug("quantity resolved",
			"material", in.MaterialName,
			"method", out.Method,
			"gross", *out.GrossQuantity,
			"unit", out.ResolvedUnit,
		)
	} else {
		r.logger.Warn("quantity requires manual input",
			"material", in.MaterialName,
			"category", category,
			"code", out.ErrorCode,
		)
	}

	return out
}

// Validate rejects inputs that cannot describe a physical measurement.
func (in Input) Validate() error {
	if strings.TrimSpace(in.MaterialName) == "" && in.MaterialType == "" {
		return fmt.Errorf("%w: material_name or material_type is required", ErrInvalidInput)
	}
	if err := nonNegative("input_value", &in.InputValue); err != nil {
		return err
	}
	if err := nonNegative("coverage_rate", in.CoverageRate); err != nil {
		return err
	}
	if err := nonNegative("waste_percent", in.WastePercent); err != nil {
		return err
	}
	return nonNegative("thickness_inches", in.ThicknessInches)
}

func nonNegative(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, field)
	}
	if *v < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, field)
	}
	return nil
}
