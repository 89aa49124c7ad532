package resolver_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/JaimeStill/takeoff/internal/resolver"
)

func ptr[T any](v T) *T { return &v }

func newResolver() *resolver.Resolver {
	return resolver.New(nil)
}

func assertQuantities(t *testing.T, out resolver.Output, net, gross float64, unit string) {
	t.Helper()
	if !out.Success {
		t.Fatalf("expected success, got failure: %s", out.ErrorMessage)
	}
	if out.ResolvedQuantity == nil || *out.ResolvedQuantity != net {
		t.Errorf("resolved quantity = %v, want %v", out.ResolvedQuantity, net)
	}
	if out.GrossQuantity == nil || *out.GrossQuantity != gross {
		t.Errorf("gross quantity = %v, want %v", out.GrossQuantity, gross)
	}
	if out.ResolvedUnit != unit {
		t.Errorf("resolved unit = %q, want %q", out.ResolvedUnit, unit)
	}
	if out.Confidence != resolver.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", out.Confidence)
	}
	if out.Trace == "" {
		t.Error("missing calculation trace")
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := newResolver()
	inputs := []resolver.Input{
		{MaterialName: "Ceramic Tile", InputUnit: "sq ft", InputValue: 200},
		{MaterialName: "ready mix concrete", InputUnit: "sq ft", InputValue: 500},
		{MaterialName: "Unobtainium Sealant", InputUnit: "sq ft", InputValue: 50},
		{MaterialName: "xyz-unrecognized-compound", InputUnit: "sq ft", InputValue: 10},
	}

	for _, in := range inputs {
		first := r.Resolve(in)
		for range 5 {
			if got := r.Resolve(in); !reflect.DeepEqual(first, got) {
				t.Fatalf("Resolve(%q) not deterministic: %+v != %+v", in.MaterialName, first, got)
			}
		}
	}
}

func TestResolveAreaDirect(t *testing.T) {
	r := newResolver()
	names := []string{"vapor barrier", "rebar mesh", "Poly Sheeting", "welded wire mesh"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			out := r.Resolve(resolver.Input{
				MaterialName: name,
				InputUnit:    "sq ft",
				InputValue:   1000,
				WastePercent: ptr(10.0),
			})

			assertQuantities(t, out, 1000, 1100, "sq ft")
			if out.Method != resolver.MethodAreaDirect {
				t.Errorf("method = %s, want area_direct", out.Method)
			}
		})
	}
}

func TestResolveAreaDirectFractional(t *testing.T) {
	out := newResolver().Resolve(resolver.Input{
		MaterialName: "vapor barrier",
		InputUnit:    "sq ft",
		InputValue:   100.2,
	})

	// net = ceil(100.2), gross = ceil(110.22)
	assertQuantities(t, out, 101, 111, "sq ft")
}

func TestResolveConcrete(t *testing.T) {
	tests := []struct {
		name      string
		thickness *float64
		net       float64
		gross     float64
	}{
		{"default thickness", nil, 7, 8},
		{"six inch slab", ptr(6.0), 10, 11},
		{"non-positive thickness uses default", ptr(0.0), 7, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newResolver().Resolve(resolver.Input{
				MaterialName:    "ready mix concrete",
				InputUnit:       "sq ft",
				InputValue:      500,
				ThicknessInches: tt.thickness,
			})

			assertQuantities(t, out, tt.net, tt.gross, "cubic yard")
			if out.Method != resolver.MethodAreaToVolume {
				t.Errorf("method = %s, want area_to_volume", out.Method)
			}
		})
	}
}

func TestResolvePassthrough(t *testing.T) {
	out := newResolver().Resolve(resolver.Input{
		MaterialName: "Interior Paint",
		InputUnit:    "gallons",
		InputValue:   5,
		WastePercent: ptr(0.0),
	})

	assertQuantities(t, out, 5, 5, "gallons")
	if out.Method != resolver.MethodPassthrough {
		t.Errorf("method = %s, want passthrough", out.Method)
	}
}

func TestResolvePassthroughUnits(t *testing.T) {
	units := []string{"Gallon", "boxes", "SHEET", "rolls", "piece", "Bags", "bundle", "cubic yards"}

	for _, unit := range units {
		t.Run(unit, func(t *testing.T) {
			if !resolver.IsPassthroughUnit(unit) {
				t.Fatalf("IsPassthroughUnit(%q) = false", unit)
			}

			out := newResolver().Resolve(resolver.Input{
				MaterialName: "Architectural Shingles",
				InputUnit:    unit,
				InputValue:   10,
			})
			assertQuantities(t, out, 10, 11, unit)
		})
	}

	if resolver.IsPassthroughUnit("sq ft") {
		t.Error("sq ft must not be a passthrough unit")
	}
}

func TestResolveCoverage(t *testing.T) {
	tests := []struct {
		name   string
		input  resolver.Input
		net    float64
		gross  float64
		unit   string
		method resolver.Method
	}{
		{
			name:   "tile to boxes",
			input:  resolver.Input{MaterialName: "Ceramic Tile", InputUnit: "sq ft", InputValue: 200},
			net:    20,
			gross:  22,
			unit:   "box",
			method: resolver.MethodAreaToBoxes,
		},
		{
			name:   "fractional boxes round up",
			input:  resolver.Input{MaterialName: "Ceramic Tile", InputUnit: "sq ft", InputValue: 205},
			net:    21,
			gross:  24,
			unit:   "box",
			method: resolver.MethodAreaToBoxes,
		},
		{
			name:   "paint to gallons",
			input:  resolver.Input{MaterialName: "Interior Paint", InputUnit: "sq ft", InputValue: 700},
			net:    2,
			gross:  3,
			unit:   "gallon",
			method: resolver.MethodAreaToLiquid,
		},
		{
			name:   "drywall to sheets",
			input:  resolver.Input{MaterialName: "Drywall 4x12", InputUnit: "sq ft", InputValue: 480},
			net:    10,
			gross:  11,
			unit:   "sheet",
			method: resolver.MethodAreaToSheets,
		},
		{
			name:   "underlayment to rolls",
			input:  resolver.Input{MaterialName: "Foam Underlayment", InputUnit: "sq ft", InputValue: 250},
			net:    3,
			gross:  4,
			unit:   "roll",
			method: resolver.MethodAreaToRolls,
		},
		{
			name:   "insulation to bags",
			input:  resolver.Input{MaterialName: "R-13 Insulation", InputUnit: "sq ft", InputValue: 400},
			net:    10,
			gross:  11,
			unit:   "bag",
			method: resolver.MethodAreaToBags,
		},
		{
			name:   "baseboard to pieces",
			input:  resolver.Input{MaterialName: "Baseboard", InputUnit: "linear ft", InputValue: 120},
			net:    15,
			gross:  17,
			unit:   "piece",
			method: resolver.MethodLinearToPieces,
		},
		{
			name:   "zero waste",
			input:  resolver.Input{MaterialName: "Ceramic Tile", InputUnit: "sq ft", InputValue: 200, WastePercent: ptr(0.0)},
			net:    20,
			gross:  20,
			unit:   "box",
			method: resolver.MethodAreaToBoxes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newResolver().Resolve(tt.input)
			assertQuantities(t, out, tt.net, tt.gross, tt.unit)
			if out.Method != tt.method {
				t.Errorf("method = %s, want %s", out.Method, tt.method)
			}
		})
	}
}

func TestResolveCallerCoverageOverride(t *testing.T) {
	t.Run("rate and unit supplied for unregistered material", func(t *testing.T) {
		out := newResolver().Resolve(resolver.Input{
			MaterialName:  "Unobtainium Sealant",
			InputUnit:     "sq ft",
			InputValue:    50,
			CoverageRate:  ptr(30.0),
			ContainerUnit: "tube",
		})

		assertQuantities(t, out, 2, 3, "tube")
		if out.Method != resolver.MethodPassthrough {
			t.Errorf("method = %s, want passthrough label for unrecognized container", out.Method)
		}
	})

	t.Run("rate overrides registry", func(t *testing.T) {
		out := newResolver().Resolve(resolver.Input{
			MaterialName: "Ceramic Tile",
			InputUnit:    "sq ft",
			InputValue:   200,
			CoverageRate: ptr(15.0),
		})

		assertQuantities(t, out, 14, 16, "box")
		if !strings.Contains(out.Trace, "caller override") {
			t.Errorf("trace should note the caller override: %s", out.Trace)
		}
	})

	t.Run("rate without unit fails", func(t *testing.T) {
		out := newResolver().Resolve(resolver.Input{
			MaterialName: "Unobtainium Sealant",
			InputUnit:    "sq ft",
			InputValue:   50,
			CoverageRate: ptr(30.0),
		})

		if out.Success {
			t.Fatal("expected failure without a container unit")
		}
	})

	t.Run("zero rate fails", func(t *testing.T) {
		out := newResolver().Resolve(resolver.Input{
			MaterialName: "Ceramic Tile",
			InputUnit:    "sq ft",
			InputValue:   200,
			CoverageRate: ptr(0.0),
		})

		if out.Success {
			t.Fatal("expected failure for zero coverage rate")
		}
	})
}

func TestResolveExplicitMaterialType(t *testing.T) {
	out := newResolver().Resolve(resolver.Input{
		MaterialName: "Product SKU 88-1",
		MaterialType: resolver.CategoryTile,
		InputUnit:    "sq ft",
		InputValue:   200,
	})

	assertQuantities(t, out, 20, 22, "box")
}

func TestResolveFailHard(t *testing.T) {
	tests := []struct {
		name  string
		input resolver.Input
		code  resolver.ErrorCode
		err   error
	}{
		{
			name:  "unrecognized material",
			input: resolver.Input{MaterialName: "xyz-unrecognized-compound", InputUnit: "sq ft", InputValue: 100},
			code:  resolver.CodeUnknownMaterialType,
			err:   resolver.ErrUnknownMaterialType,
		},
		{
			name:  "explicit unknown type",
			input: resolver.Input{MaterialName: "Ceramic Tile", MaterialType: resolver.CategoryUnknown, InputUnit: "sq ft", InputValue: 100},
			code:  resolver.CodeUnknownMaterialType,
			err:   resolver.ErrUnknownMaterialType,
		},
		{
			name:  "no coverage rate",
			input: resolver.Input{MaterialName: "Unobtainium Sealant", InputUnit: "sq ft", InputValue: 50},
			code:  resolver.CodeCoverageRateUnavailable,
			err:   resolver.ErrCoverageRateUnavailable,
		},
		{
			name:  "shingles need a manufacturer rate",
			input: resolver.Input{MaterialName: "Architectural Shingles", InputUnit: "sq ft", InputValue: 1500},
			code:  resolver.CodeCoverageRateUnavailable,
			err:   resolver.ErrCoverageRateUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := newResolver().Resolve(tt.input)

			if out.Success {
				t.Fatal("expected failure")
			}
			if out.ResolvedQuantity != nil || out.GrossQuantity != nil {
				t.Error("failure must not carry quantities")
			}
			if out.Method != resolver.MethodManualRequired {
				t.Errorf("method = %s, want manual_required", out.Method)
			}
			if out.Confidence != resolver.ConfidenceFailed {
				t.Errorf("confidence = %s, want failed", out.Confidence)
			}
			if out.ErrorCode != tt.code {
				t.Errorf("error code = %s, want %s", out.ErrorCode, tt.code)
			}
			if !strings.Contains(out.ErrorMessage, tt.input.MaterialName) {
				t.Errorf("error message %q should name the material", out.ErrorMessage)
			}
			if !errors.Is(out.Err(), tt.err) {
				t.Errorf("Err() = %v, want %v", out.Err(), tt.err)
			}
		})
	}
}

func TestOutputErrNilOnSuccess(t *testing.T) {
	out := newResolver().Resolve(resolver.Input{MaterialName: "Ceramic Tile", InputUnit: "sq ft", InputValue: 10})
	if err := out.Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestGrossNeverBelowNet(t *testing.T) {
	r := newResolver()
	for _, value := range []float64{0, 0.5, 1, 9.99, 33.3, 250, 1234.56} {
		for _, name := range []string{"Ceramic Tile", "vapor barrier", "ready mix concrete", "Interior Paint", "Baseboard"} {
			out := r.Resolve(resolver.Input{MaterialName: name, InputUnit: "sq ft", InputValue: value})
			if !out.Success {
				t.Fatalf("%s %v: unexpected failure %s", name, value, out.ErrorMessage)
			}
			if *out.GrossQuantity < *out.ResolvedQuantity {
				t.Errorf("%s %v: gross %v < net %v", name, value, *out.GrossQuantity, *out.ResolvedQuantity)
			}
			if *out.ResolvedQuantity != math.Ceil(*out.ResolvedQuantity) || *out.GrossQuantity != math.Ceil(*out.GrossQuantity) {
				t.Errorf("%s %v: quantities must be whole numbers", name, value)
			}
		}
	}
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   resolver.Input
		wantErr bool
	}{
		{"valid", resolver.Input{MaterialName: "Tile", InputValue: 10}, false},
		{"type without name", resolver.Input{MaterialType: resolver.CategoryTile, InputValue: 10}, false},
		{"missing name and type", resolver.Input{InputValue: 10}, true},
		{"negative value", resolver.Input{MaterialName: "Tile", InputValue: -1}, true},
		{"nan value", resolver.Input{MaterialName: "Tile", InputValue: math.NaN()}, true},
		{"infinite value", resolver.Input{MaterialName: "Tile", InputValue: math.Inf(1)}, true},
		{"negative waste", resolver.Input{MaterialName: "Tile", InputValue: 10, WastePercent: ptr(-5.0)}, true},
		{"negative rate", resolver.Input{MaterialName: "Tile", InputValue: 10, CoverageRate: ptr(-1.0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, resolver.ErrInvalidInput) {
				t.Errorf("error %v should wrap ErrInvalidInput", err)
			}
		})
	}
}
