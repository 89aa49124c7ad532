package estimates

import (
	"fmt"
	"math"
	"strings"

	"github.com/JaimeStill/takeoff/internal/resolver"
	"github.com/JaimeStill/takeoff/pkg/formatting"
)

// Takeoff is the measurement set produced by the upstream photo and
// blueprint analysis.
type Takeoff struct {
	ConfirmedArea float64             `json:"confirmed_area"`
	Materials     []resolver.Material `json:"materials"`
}

type takeoffItem struct {
	MaterialName   string   `json:"material_name"`
	Name           string   `json:"name"`
	QuantityOrArea *float64 `json:"quantity_or_area"`
	Unit           string   `json:"unit"`
}

type takeoffContent struct {
	ConfirmedArea *float64      `json:"confirmed_area"`
	Materials     []takeoffItem `json:"materials"`
}

// ParseTakeoff reads raw model output, which may wrap its JSON in a
// markdown code fence or surrounding prose. Items without a name are
// dropped. A missing quantity falls back to the confirmed area during
// resolution.
func ParseTakeoff(content string) (Takeoff, error) {
	raw, err := formatting.Parse[takeoffContent](content)
	if err != nil {
		return Takeoff{}, fmt.Errorf("%w: %v", ErrInvalidTakeoff, err)
	}

	if raw.ConfirmedArea == nil {
		return Takeoff{}, fmt.Errorf("%w: confirmed_area is required", ErrInvalidTakeoff)
	}
	area := *raw.ConfirmedArea
	if math.IsNaN(area) || math.IsInf(area, 0) || area < 0 {
		return Takeoff{}, fmt.Errorf("%w: confirmed_area must be a non-negative number", ErrInvalidTakeoff)
	}

	t := Takeoff{
		ConfirmedArea: area,
		Materials:     make([]resolver.Material, 0, len(raw.Materials)),
	}

	for _, item := range raw.Materials {
		name := strings.TrimSpace(item.MaterialName)
		if name == "" {
			name = strings.TrimSpace(item.Name)
		}
		if name == "" {
			continue
		}

		qty := item.QuantityOrArea
		if qty != nil && (math.IsNaN(*qty) || math.IsInf(*qty, 0) || *qty < 0) {
			return Takeoff{}, fmt.Errorf("%w: quantity_or_area for %q must be a non-negative number", ErrInvalidTakeoff, name)
		}

		t.Materials = append(t.Materials, resolver.Material{
			Name:         name,
			BaseQuantity: qty,
			Unit:         strings.TrimSpace(item.Unit),
		})
	}

	if len(t.Materials) == 0 {
		return Takeoff{}, fmt.Errorf("%w: no materials", ErrInvalidTakeoff)
	}

	return t, nil
}
