package resolver

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Terminal container units. Inputs already in one of these skip coverage
// conversion and only receive waste.
var passthroughUnits = map[string]struct{}{
	"gallon": {}, "gallons": {},
	"box": {}, "boxes": {},
	"sheet": {}, "sheets": {},
	"roll": {}, "rolls": {},
	"piece": {}, "pieces": {},
	"bag": {}, "bags": {},
	"bundle": {}, "bundles": {},
	"cubic yard": {}, "cubic yards": {},
}

// IsPassthroughUnit reports whether unit is a terminal container unit.
func IsPassthroughUnit(unit string) bool {
	_, ok := passthroughUnits[strings.ToLower(strings.TrimSpace(unit))]
	return ok
}

func resolveStandard(in Input, category Category, mult decimal.Decimal) Output {
	if IsPassthroughUnit(in.InputUnit) {
		return resolvePassthrough(in, mult)
	}

	rate, unit, source := coverageFor(in, category)
	if rate == nil || *rate <= 0 || unit == "" {
		return failure(
			CodeCoverageRateUnavailable,
			fmt.Sprintf("no coverage rate available for %q (category %s); supply a coverage rate and container unit or enter the quantity manually", in.MaterialName, category),
		)
	}

	value := decimal.NewFromFloat(in.InputValue)
	r := decimal.NewFromFloat(*rate)
	raw := value.Div(r)
	net := raw.Ceil()
	withWaste := net.Mul(mult)
	gross := withWaste.Ceil()

	trace := fmt.Sprintf(
		"Coverage (%s): %s %s / %s per %s = %s, net = ceil(%s) = %s %s; gross = ceil(%s x %s = %s) = %s %s",
		source,
		value.StringFixed(2), in.InputUnit, r.StringFixed(2), unit, raw.StringFixed(2),
		raw.StringFixed(2), net.String(), unit,
		net.String(), mult.StringFixed(2), withWaste.StringFixed(2), gross.String(), unit,
	)

	return success(net, gross, unit, methodForUnit(unit), trace)
}

func resolvePassthrough(in Input, mult decimal.Decimal) Output {
	value := decimal.NewFromFloat(in.InputValue)
	net := value.Ceil()
	withWaste := value.Mul(mult)
	gross := withWaste.Ceil()

	trace := fmt.Sprintf(
		"Passthrough: %s %s already in container units, net = ceil(%s) = %s; gross = ceil(%s x %s = %s) = %s %s",
		value.StringFixed(2), in.InputUnit,
		value.StringFixed(2), net.String(),
		value.StringFixed(2), mult.StringFixed(2), withWaste.StringFixed(2), gross.String(), in.InputUnit,
	)

	return success(net, gross, in.InputUnit, MethodPassthrough, trace)
}

// coverageFor merges caller overrides over the registry field by field.
// The returned source names where the rate came from for the trace.
func coverageFor(in Input, category Category) (*float64, string, string) {
	var (
		rate   *float64
		unit   string
		source = "caller override"
	)

	if key, ok := CoverageKey(category, in.MaterialName); ok {
		if entry, found := LookupCoverage(key); found {
			r := entry.Rate
			rate = &r
			unit = entry.OutputUnit
			source = "registry " + key
		}
	}

	if in.CoverageRate != nil {
		rate = in.CoverageRate
		source = "caller override"
	}
	if u := strings.TrimSpace(in.ContainerUnit); u != "" {
		unit = u
	}

	return rate, unit, source
}

func methodForUnit(unit string) Method {
	u := strings.ToLower(unit)
	switch {
	case strings.Contains(u, "gallon"):
		return MethodAreaToLiquid
	case strings.Contains(u, "box"):
		return MethodAreaToBoxes
	case strings.Contains(u, "sheet"):
		return MethodAreaToSheets
	case strings.Contains(u, "roll"):
		return MethodAreaToRolls
	case strings.Contains(u, "bag"):
		return MethodAreaToBags
	case strings.Contains(u, "piece"):
		return MethodLinearToPieces
	default:
		return MethodPassthrough
	}
}
