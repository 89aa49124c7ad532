package estimates_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/JaimeStill/takeoff/internal/estimates"
	"github.com/JaimeStill/takeoff/internal/resolver"
)

func ptr[T any](v T) *T { return &v }

func TestParseTakeoff(t *testing.T) {
	t.Run("fenced model output", func(t *testing.T) {
		content := "Here is the takeoff:\n```json\n" + `{
			"confirmed_area": 240,
			"materials": [
				{"material_name": "Ceramic Tile", "quantity_or_area": 200, "unit": "sq ft"},
				{"name": "Interior Paint", "unit": "sq ft"},
				{"material_name": "  ", "quantity_or_area": 5}
			]
		}` + "\n```"

		got, err := estimates.ParseTakeoff(content)
		if err != nil {
			t.Fatalf("ParseTakeoff: %v", err)
		}

		if got.ConfirmedArea != 240 {
			t.Errorf("confirmed area = %v, want 240", got.ConfirmedArea)
		}
		if len(got.Materials) != 2 {
			t.Fatalf("materials = %d, want 2", len(got.Materials))
		}

		tile := got.Materials[0]
		if tile.Name != "Ceramic Tile" || tile.BaseQuantity == nil || *tile.BaseQuantity != 200 || tile.Unit != "sq ft" {
			t.Errorf("tile = %+v", tile)
		}

		paint := got.Materials[1]
		if paint.Name != "Interior Paint" || paint.BaseQuantity != nil {
			t.Errorf("paint = %+v, want name fallback and no quantity", paint)
		}
	})

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "the photo was too blurry"},
		{"missing area", `{"materials": [{"name": "Paint"}]}`},
		{"negative area", `{"confirmed_area": -1, "materials": [{"name": "Paint"}]}`},
		{"negative quantity", `{"confirmed_area": 10, "materials": [{"name": "Paint", "quantity_or_area": -3}]}`},
		{"no materials", `{"confirmed_area": 10, "materials": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := estimates.ParseTakeoff(tt.content)
			if !errors.Is(err, estimates.ErrInvalidTakeoff) {
				t.Errorf("err = %v, want ErrInvalidTakeoff", err)
			}
		})
	}
}

func TestOverrideCommand(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))

	t.Run("defaults to subject and stamps utc", func(t *testing.T) {
		cmd := estimates.OverrideCommand{Quantity: 4, Unit: " pallet ", Reason: "supplier quote"}

		got, err := cmd.Override("estimator@example.com", now)
		if err != nil {
			t.Fatalf("Override: %v", err)
		}

		if !got.Override || got.Quantity != 4 || got.Unit != "pallet" {
			t.Errorf("override = %+v", got)
		}
		if got.ResolvedBy != "estimator@example.com" {
			t.Errorf("resolved_by = %q", got.ResolvedBy)
		}
		if !got.Timestamp.Equal(now) || got.Timestamp.Location() != time.UTC {
			t.Errorf("timestamp = %v, want %v in UTC", got.Timestamp, now)
		}
	})

	t.Run("explicit resolved_by wins", func(t *testing.T) {
		cmd := estimates.OverrideCommand{Quantity: 1, Unit: "tube", Reason: "r", ResolvedBy: "lead"}
		got, err := cmd.Override("estimator@example.com", now)
		if err != nil {
			t.Fatalf("Override: %v", err)
		}
		if got.ResolvedBy != "lead" {
			t.Errorf("resolved_by = %q, want lead", got.ResolvedBy)
		}
	})

	invalid := []struct {
		name string
		cmd  estimates.OverrideCommand
	}{
		{"zero quantity", estimates.OverrideCommand{Quantity: 0, Unit: "box", Reason: "r"}},
		{"negative quantity", estimates.OverrideCommand{Quantity: -2, Unit: "box", Reason: "r"}},
		{"nan quantity", estimates.OverrideCommand{Quantity: math.NaN(), Unit: "box", Reason: "r"}},
		{"missing unit", estimates.OverrideCommand{Quantity: 1, Reason: "r"}},
		{"missing reason", estimates.OverrideCommand{Quantity: 1, Unit: "box", Reason: "  "}},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cmd.Override("x", now)
			if !errors.Is(err, estimates.ErrInvalidOverride) {
				t.Errorf("err = %v, want ErrInvalidOverride", err)
			}
		})
	}
}

func TestResolvablesFeedResolver(t *testing.T) {
	est := estimates.Estimate{
		BaseArea:     200,
		WastePercent: 10,
		Materials: []estimates.Material{
			{Position: 0, Name: "Ceramic Tile", Unit: "sq ft"},
			{Position: 1, Name: "xyz-unrecognized-compound", Unit: "sq ft"},
			{Position: 2, Name: "Mystery Mastic", Unit: "sq ft", ManualOverride: &resolver.ManualOverride{
				Override: true, Quantity: 2, Unit: "bucket", Reason: "site count",
			}},
		},
	}

	materials := est.Resolvables()
	if len(materials) != 3 {
		t.Fatalf("resolvables = %d, want 3", len(materials))
	}

	outputs := resolver.New(nil).ResolveEach(materials, est.BaseArea, est.WastePercent)

	if !outputs[0].Success || *outputs[0].GrossQuantity != 22 || outputs[0].ResolvedUnit != "box" {
		t.Errorf("tile output = %+v", outputs[0])
	}
	if outputs[1].Success {
		t.Errorf("unknown material resolved: %+v", outputs[1])
	}
	if !outputs[2].Success || *outputs[2].GrossQuantity != 2 || outputs[2].Method != resolver.MethodPassthrough {
		t.Errorf("override output = %+v", outputs[2])
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{estimates.ErrNotFound, 404},
		{estimates.ErrMaterialNotFound, 404},
		{estimates.ErrLegacyProject, 409},
		{estimates.ErrInvalidEstimate, 400},
		{estimates.ErrInvalidOverride, 400},
		{estimates.ErrInvalidTakeoff, 422},
		{errors.New("boom"), 500},
	}

	for _, tt := range tests {
		if got := estimates.MapHTTPStatus(tt.err); got != tt.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
