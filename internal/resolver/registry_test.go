package resolver_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/JaimeStill/takeoff/internal/resolver"
)

func TestCoverageKey(t *testing.T) {
	tests := []struct {
		name     string
		category resolver.Category
		material string
		want     string
		wantOK   bool
	}{
		{"generic flooring defaults to laminate", resolver.CategoryFlooring, "Flooring", "laminate", true},
		{"hardwood flooring", resolver.CategoryFlooring, "Oak Hardwood Flooring", "hardwood", true},
		{"vinyl plank", resolver.CategoryFlooring, "Luxury Vinyl Plank", "vinyl_plank", true},
		{"carpet", resolver.CategoryFlooring, "Berber Carpet", "carpet", true},
		{"generic drywall defaults to 4x8", resolver.CategoryDrywall, "Drywall", "drywall_4x8", true},
		{"drywall 4x12", resolver.CategoryDrywall, "Drywall 4x12", "drywall_4x12", true},
		{"drywall 4 x 10", resolver.CategoryDrywall, "Drywall 4 x 10", "drywall_4x10", true},
		{"generic insulation defaults to r13", resolver.CategoryInsulation, "Insulation", "insulation_r13", true},
		{"insulation r-30", resolver.CategoryInsulation, "R-30 Insulation", "insulation_r30", true},
		{"insulation r19", resolver.CategoryInsulation, "R19 Batts", "insulation_r19", true},
		{"generic trim defaults to baseboard", resolver.CategoryTrim, "Trim", "trim_baseboard", true},
		{"crown", resolver.CategoryTrim, "Crown Molding", "trim_crown", true},
		{"casing", resolver.CategoryTrim, "Door Casing", "trim_casing", true},
		{"generic roofing defaults to shingles", resolver.CategoryRoofing, "Roofing", "roofing_shingles", true},
		{"metal roofing", resolver.CategoryRoofing, "Metal Roofing", "roofing_metal", true},
		{"roofing felt", resolver.CategoryRoofing, "Roofing Felt", "roofing_felt", true},
		{"lumber", resolver.CategoryLumber, "2x4 Stud", "lumber", true},
		{"plywood", resolver.CategoryLumber, "Plywood", "lumber_sheathing", true},
		{"tile uses category", resolver.CategoryTile, "Ceramic Tile", "tile", true},
		{"sealant uses category", resolver.CategorySealant, "Sealant", "sealant", true},
		{"area direct has no key", resolver.CategoryAreaDirect, "Vapor Barrier", "", false},
		{"concrete has no key", resolver.CategoryConcreteVolume, "Concrete Mix", "", false},
		{"unknown has no key", resolver.CategoryUnknown, "xyz", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolver.CoverageKey(tt.category, tt.material)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CoverageKey(%s, %q) = (%q, %v), want (%q, %v)", tt.category, tt.material, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLookupCoverage(t *testing.T) {
	entry, ok := resolver.LookupCoverage("tile")
	if !ok {
		t.Fatal("tile entry missing")
	}
	if entry.Rate != 10 || entry.OutputUnit != "box" || entry.InputUnit != resolver.UnitSquareFeet {
		t.Errorf("tile entry = %+v", entry)
	}

	for _, key := range []string{"sealant", "roofing_shingles", "granite"} {
		if _, ok := resolver.LookupCoverage(key); ok {
			t.Errorf("LookupCoverage(%q) found an entry, want none", key)
		}
	}
}

func TestCoverageTable(t *testing.T) {
	table := resolver.CoverageTable()
	if len(table) == 0 {
		t.Fatal("empty coverage table")
	}

	sorted := slices.IsSortedFunc(table, func(a, b resolver.KeyedCoverage) int {
		return strings.Compare(a.Key, b.Key)
	})
	if !sorted {
		t.Error("coverage table not sorted by key")
	}

	for _, e := range table {
		if e.Rate <= 0 {
			t.Errorf("%s: rate %v must be positive", e.Key, e.Rate)
		}
		if e.OutputUnit == "" {
			t.Errorf("%s: missing output unit", e.Key)
		}
	}
}

func TestEveryDefaultKeyIsRegisteredExceptShingles(t *testing.T) {
	defaults := map[resolver.Category]string{
		resolver.CategoryPaint:        "Paint",
		resolver.CategoryPrimer:       "Primer",
		resolver.CategoryFlooring:     "Flooring",
		resolver.CategoryTile:         "Tile",
		resolver.CategoryDrywall:      "Drywall",
		resolver.CategoryInsulation:   "Insulation",
		resolver.CategoryUnderlayment: "Underlayment",
		resolver.CategoryTrim:         "Trim",
		resolver.CategoryAdhesive:     "Adhesive",
		resolver.CategoryGrout:        "Grout",
		resolver.CategoryLumber:       "Lumber",
	}

	for category, name := range defaults {
		key, ok := resolver.CoverageKey(category, name)
		if !ok {
			t.Errorf("%s: no coverage key", category)
			continue
		}
		if _, found := resolver.LookupCoverage(key); !found {
			t.Errorf("%s: default key %q not registered", category, key)
		}
	}
}
