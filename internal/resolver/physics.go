package resolver

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// DefaultWastePercent applies when an input carries no waste percent.
	DefaultWastePercent = 10.0

	// DefaultThicknessInches is a standard slab.
	DefaultThicknessInches = 4.0
)

// 27 cu ft per cu yd times 12 in per ft.
var concreteDivisor = decimal.NewFromInt(324)

var hundred = decimal.NewFromInt(100)

// wasteMultiplier returns 1 + waste/100.
func wasteMultiplier(wastePercent *float64) decimal.Decimal {
	waste := DefaultWastePercent
	if wastePercent != nil {
		waste = *wastePercent
	}
	return decimal.NewFromInt(1).Add(decimal.NewFromFloat(waste).Div(hundred))
}

func resolveAreaDirect(in Input, mult decimal.Decimal) Output {
	area := decimal.NewFromFloat(in.InputValue)
	net := area.Ceil()
	withWaste := area.Mul(mult)
	gross := withWaste.Ceil()

	trace := fmt.Sprintf(
		"Area direct: %s sq ft, net = ceil(%s) = %s sq ft; gross = ceil(%s x %s = %s) = %s sq ft",
		area.StringFixed(2),
		area.StringFixed(2), net.String(),
		area.StringFixed(2), mult.StringFixed(2), withWaste.StringFixed(2), gross.String(),
	)

	return success(net, gross, UnitSquareFeet, MethodAreaDirect, trace)
}

func resolveConcrete(in Input, mult decimal.Decimal) Output {
	thickness := DefaultThicknessInches
	if in.ThicknessInches != nil && *in.ThicknessInches > 0 {
		thickness = *in.ThicknessInches
	}

	area := decimal.NewFromFloat(in.InputValue)
	depth := decimal.NewFromFloat(thickness)
	yards := area.Mul(depth).Div(concreteDivisor)
	net := yards.Ceil()
	withWaste := net.Mul(mult)
	gross := withWaste.Ceil()

	trace := fmt.Sprintf(
		"Concrete volume: (%s sq ft x %s in) / 324 = %s cubic yards, net = ceil(%s) = %s; gross = ceil(%s x %s = %s) = %s cubic yard",
		area.StringFixed(2), depth.StringFixed(2), yards.StringFixed(2),
		yards.StringFixed(2), net.String(),
		net.String(), mult.StringFixed(2), withWaste.StringFixed(2), gross.String(),
	)

	return success(net, gross, UnitCubicYard, MethodAreaToVolume, trace)
}

func success(net, gross decimal.Decimal, unit string, method Method, trace string) Output {
	n := net.InexactFloat64()
	g := gross.InexactFloat64()
	return Output{
		Success:          true,
		ResolvedQuantity: &n,
		ResolvedUnit:     unit,
		GrossQuantity:    &g,
		Method:           method,
		Confidence:       ConfidenceHigh,
		Trace:            trace,
	}
}

func failure(code ErrorCode, msg string) Output {
	return Output{
		Success:      false,
		Method:       MethodManualRequired,
		Confidence:   ConfidenceFailed,
		ErrorCode:    code,
		ErrorMessage: msg,
	}
}
