package resolver_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/JaimeStill/takeoff/internal/resolver"
)

func TestResolveBatchScenario(t *testing.T) {
	materials := []resolver.Material{
		{Name: "Ceramic Tile", BaseQuantity: ptr(200.0), Unit: "sq ft"},
		{Name: "Unobtainium Sealant", BaseQuantity: ptr(50.0), Unit: "sq ft"},
	}

	result := newResolver().ResolveBatch(materials, 0, 10)

	if len(result.Resolved) != 1 || len(result.Failed) != 1 {
		t.Fatalf("resolved=%d failed=%d, want 1 and 1", len(result.Resolved), len(result.Failed))
	}

	tile := result.Resolved[0]
	if tile.Name != "Ceramic Tile" {
		t.Errorf("resolved name = %q", tile.Name)
	}
	assertQuantities(t, tile.Result, 20, 22, "box")

	sealant := result.Failed[0]
	if sealant.Name != "Unobtainium Sealant" {
		t.Errorf("failed name = %q", sealant.Name)
	}
	if !errors.Is(sealant.Result.Err(), resolver.ErrCoverageRateUnavailable) {
		t.Errorf("sealant error = %v, want coverage rate unavailable", sealant.Result.Err())
	}

	want := "Resolved 1/2 materials. 1 require manual input."
	if result.Summary != want {
		t.Errorf("summary = %q, want %q", result.Summary, want)
	}
}

func TestResolveBatchOverride(t *testing.T) {
	stamp := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	override := &resolver.ManualOverride{
		Override:   true,
		Quantity:   7.5,
		Unit:       "tube",
		Reason:     "matches supplier quote",
		ResolvedBy: "estimator@example.com",
		Timestamp:  stamp,
	}

	materials := []resolver.Material{
		{Name: "xyz-unrecognized-compound", ManualOverride: override},
		{Name: "Ceramic Tile", BaseQuantity: ptr(200.0), ManualOverride: &resolver.ManualOverride{
			Override: true, Quantity: 3, Unit: "pallet", Reason: "bulk order",
		}},
	}

	result := newResolver().ResolveBatch(materials, 100, 10)

	if len(result.Resolved) != 2 || len(result.Failed) != 0 {
		t.Fatalf("resolved=%d failed=%d, want 2 and 0", len(result.Resolved), len(result.Failed))
	}

	first := result.Resolved[0].Result
	if *first.ResolvedQuantity != 7.5 || *first.GrossQuantity != 7.5 {
		t.Errorf("override quantity altered: net=%v gross=%v", *first.ResolvedQuantity, *first.GrossQuantity)
	}
	if first.ResolvedUnit != "tube" {
		t.Errorf("unit = %q, want tube", first.ResolvedUnit)
	}
	if first.Confidence != resolver.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", first.Confidence)
	}
	if !strings.Contains(first.Trace, "matches supplier quote") || !strings.Contains(first.Trace, "estimator@example.com") {
		t.Errorf("trace should note the override: %q", first.Trace)
	}
	if got := result.Resolved[0].ManualOverride; got != override {
		t.Error("override must be carried through verbatim")
	}

	second := result.Resolved[1].Result
	if *second.GrossQuantity != 3 || second.ResolvedUnit != "pallet" {
		t.Errorf("tile override recomputed: %v %s", *second.GrossQuantity, second.ResolvedUnit)
	}
}

func TestResolveBatchInactiveOverride(t *testing.T) {
	materials := []resolver.Material{
		{Name: "Ceramic Tile", BaseQuantity: ptr(200.0), ManualOverride: &resolver.ManualOverride{Override: false, Quantity: 1}},
	}

	result := newResolver().ResolveBatch(materials, 0, 10)
	assertQuantities(t, result.Resolved[0].Result, 20, 22, "box")
}

func TestMaterialValidate(t *testing.T) {
	override := func(q float64) *resolver.ManualOverride {
		return &resolver.ManualOverride{Override: true, Quantity: q, Unit: "box", Reason: "counted"}
	}

	tests := []struct {
		name     string
		material resolver.Material
		baseArea float64
		wantErr  bool
	}{
		{"valid", resolver.Material{Name: "Ceramic Tile", BaseQuantity: ptr(200.0)}, 0, false},
		{"base area fallback", resolver.Material{Name: "Ceramic Tile"}, 100, false},
		{"negative base quantity", resolver.Material{Name: "Ceramic Tile", BaseQuantity: ptr(-200.0)}, 100, true},
		{"negative coverage rate", resolver.Material{Name: "Ceramic Tile", CoverageRate: ptr(-1.0)}, 100, true},
		{"negative thickness", resolver.Material{Name: "ready mix", ThicknessInches: ptr(-4.0)}, 100, true},
		{"nameless", resolver.Material{BaseQuantity: ptr(10.0)}, 0, true},
		{"positive override", resolver.Material{Name: "Ceramic Tile", ManualOverride: override(3)}, 0, false},
		{"zero override", resolver.Material{Name: "Ceramic Tile", ManualOverride: override(0)}, 0, true},
		{"negative override", resolver.Material{Name: "Ceramic Tile", ManualOverride: override(-3)}, 0, true},
		{"inactive override", resolver.Material{
			Name:           "Ceramic Tile",
			ManualOverride: &resolver.ManualOverride{Override: false, Quantity: -1},
		}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.material.Validate(tt.baseArea, 10)
			if tt.wantErr {
				if !errors.Is(err, resolver.ErrInvalidInput) {
					t.Errorf("got %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveBatchBaseAreaFallback(t *testing.T) {
	materials := []resolver.Material{
		{Name: "Interior Paint"},
		{Name: "Interior Paint", BaseQuantity: ptr(350.0)},
	}

	result := newResolver().ResolveBatch(materials, 1400, 10)

	if len(result.Resolved) != 2 {
		t.Fatalf("resolved=%d, want 2", len(result.Resolved))
	}
	assertQuantities(t, result.Resolved[0].Result, 4, 5, "gallon")
	assertQuantities(t, result.Resolved[1].Result, 1, 2, "gallon")
}

func TestResolveBatchCompleteness(t *testing.T) {
	names := []string{
		"Ceramic Tile", "Unobtainium Sealant", "vapor barrier", "xyz",
		"ready mix concrete", "Drywall", "Shingles", "Baseboard", "",
	}

	r := newResolver()
	for n := 0; n <= len(names); n++ {
		materials := make([]resolver.Material, n)
		for i := range n {
			materials[i] = resolver.Material{Name: names[i]}
		}

		result := r.ResolveBatch(materials, 120, 10)
		if got := len(result.Resolved) + len(result.Failed); got != n {
			t.Errorf("n=%d: resolved+failed = %d", n, got)
		}
		if result.Resolved == nil || result.Failed == nil {
			t.Errorf("n=%d: partitions must be non-nil", n)
		}
	}
}

func TestResolveBatchPreservesOrder(t *testing.T) {
	materials := []resolver.Material{
		{Name: "xyz-1"},
		{Name: "Ceramic Tile"},
		{Name: "xyz-2"},
		{Name: "Interior Paint"},
		{Name: "xyz-3"},
	}

	result := newResolver().ResolveBatch(materials, 100, 10)

	wantResolved := []string{"Ceramic Tile", "Interior Paint"}
	wantFailed := []string{"xyz-1", "xyz-2", "xyz-3"}

	for i, m := range result.Resolved {
		if m.Name != wantResolved[i] {
			t.Errorf("resolved[%d] = %q, want %q", i, m.Name, wantResolved[i])
		}
	}
	for i, m := range result.Failed {
		if m.Name != wantFailed[i] {
			t.Errorf("failed[%d] = %q, want %q", i, m.Name, wantFailed[i])
		}
	}
	if result.Summary != "Resolved 2/5 materials. 3 require manual input." {
		t.Errorf("summary = %q", result.Summary)
	}
}

func TestResolveEachAligned(t *testing.T) {
	materials := []resolver.Material{
		{Name: "xyz-1"},
		{Name: "Ceramic Tile"},
		{Name: "Interior Paint"},
	}

	outputs := newResolver().ResolveEach(materials, 100, 10)

	if len(outputs) != len(materials) {
		t.Fatalf("outputs = %d, want %d", len(outputs), len(materials))
	}

	want := []bool{false, true, true}
	for i, out := range outputs {
		if out.Success != want[i] {
			t.Errorf("outputs[%d].Success = %v, want %v", i, out.Success, want[i])
		}
	}

	result := resolver.Partition(materials, outputs)
	if len(result.Resolved) != 2 || len(result.Failed) != 1 {
		t.Errorf("partition resolved=%d failed=%d", len(result.Resolved), len(result.Failed))
	}
}
