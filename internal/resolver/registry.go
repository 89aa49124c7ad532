package resolver

import (
	"slices"
	"strings"
)

// Units used by the coverage registry and the physics paths.
const (
	UnitSquareFeet = "sq ft"
	UnitLinearFeet = "linear ft"
	UnitCubicYard  = "cubic yard"
)

// CoverageEntry states how much input measure one container covers.
type CoverageEntry struct {
	Rate       float64 `json:"rate"`
	InputUnit  string  `json:"input_unit"`
	OutputUnit string  `json:"output_unit"`
}

// KeyedCoverage pairs a registry key with its entry for listings.
type KeyedCoverage struct {
	Key string `json:"key"`
	CoverageEntry
}

// Manufacturer and industry coverage figures. Shingles and sealants are
// deliberately absent: bundle counts per square and bead coverage vary by
// product, so those materials need a caller-supplied rate.
var coverageRates = map[string]CoverageEntry{
	"paint":  {Rate: 350, InputUnit: UnitSquareFeet, OutputUnit: "gallon"},
	"primer": {Rate: 300, InputUnit: UnitSquareFeet, OutputUnit: "gallon"},

	"laminate":    {Rate: 20, InputUnit: UnitSquareFeet, OutputUnit: "box"},
	"hardwood":    {Rate: 20, InputUnit: UnitSquareFeet, OutputUnit: "box"},
	"vinyl_plank": {Rate: 24, InputUnit: UnitSquareFeet, OutputUnit: "box"},
	"carpet":      {Rate: 120, InputUnit: UnitSquareFeet, OutputUnit: "roll"},

	"tile": {Rate: 10, InputUnit: UnitSquareFeet, OutputUnit: "box"},

	"drywall_4x8":  {Rate: 32, InputUnit: UnitSquareFeet, OutputUnit: "sheet"},
	"drywall_4x10": {Rate: 40, InputUnit: UnitSquareFeet, OutputUnit: "sheet"},
	"drywall_4x12": {Rate: 48, InputUnit: UnitSquareFeet, OutputUnit: "sheet"},

	"insulation_r13": {Rate: 40, InputUnit: UnitSquareFeet, OutputUnit: "bag"},
	"insulation_r19": {Rate: 49, InputUnit: UnitSquareFeet, OutputUnit: "bag"},
	"insulation_r30": {Rate: 31, InputUnit: UnitSquareFeet, OutputUnit: "bag"},

	"underlayment": {Rate: 100, InputUnit: UnitSquareFeet, OutputUnit: "roll"},

	"trim_baseboard": {Rate: 8, InputUnit: UnitLinearFeet, OutputUnit: "piece"},
	"trim_crown":     {Rate: 8, InputUnit: UnitLinearFeet, OutputUnit: "piece"},
	"trim_casing":    {Rate: 7, InputUnit: UnitLinearFeet, OutputUnit: "piece"},

	"adhesive": {Rate: 40, InputUnit: UnitSquareFeet, OutputUnit: "gallon"},
	"grout":    {Rate: 100, InputUnit: UnitSquareFeet, OutputUnit: "bag"},

	"roofing_metal": {Rate: 36, InputUnit: UnitSquareFeet, OutputUnit: "sheet"},
	"roofing_felt":  {Rate: 400, InputUnit: UnitSquareFeet, OutputUnit: "roll"},

	"lumber":           {Rate: 8, InputUnit: UnitLinearFeet, OutputUnit: "piece"},
	"lumber_sheathing": {Rate: 32, InputUnit: UnitSquareFeet, OutputUnit: "sheet"},
}

// LookupCoverage returns the registry entry for key.
func LookupCoverage(key string) (CoverageEntry, bool) {
	e, ok := coverageRates[key]
	return e, ok
}

// CoverageTable returns a copy of the registry sorted by key.
func CoverageTable() []KeyedCoverage {
	table := make([]KeyedCoverage, 0, len(coverageRates))
	for k, e := range coverageRates {
		table = append(table, KeyedCoverage{Key: k, CoverageEntry: e})
	}
	slices.SortFunc(table, func(a, b KeyedCoverage) int {
		return strings.Compare(a.Key, b.Key)
	})
	return table
}

// CoverageKey derives the registry key for a material. Categories with
// manufactured variants pick a variant by keyword and fall back to a fixed
// default. Physics categories and CategoryUnknown have no key.
func CoverageKey(category Category, name string) (string, bool) {
	n := strings.ToLower(name)

	switch category {
	case CategoryAreaDirect, CategoryConcreteVolume, CategoryUnknown, "":
		return "", false
	case CategoryFlooring:
		return flooringKey(n), true
	case CategoryDrywall:
		return drywallKey(n), true
	case CategoryInsulation:
		return insulationKey(n), true
	case CategoryTrim:
		return trimKey(n), true
	case CategoryRoofing:
		return roofingKey(n), true
	case CategoryLumber:
		return lumberKey(n), true
	default:
		return string(category), true
	}
}

func flooringKey(n string) string {
	switch {
	case strings.Contains(n, "hardwood"), strings.Contains(n, "engineered wood"):
		return "hardwood"
	case strings.Contains(n, "vinyl"), strings.Contains(n, "lvp"):
		return "vinyl_plank"
	case strings.Contains(n, "carpet"):
		return "carpet"
	default:
		return "laminate"
	}
}

func drywallKey(n string) string {
	switch {
	case strings.Contains(n, "4x12"), strings.Contains(n, "4 x 12"):
		return "drywall_4x12"
	case strings.Contains(n, "4x10"), strings.Contains(n, "4 x 10"):
		return "drywall_4x10"
	default:
		return "drywall_4x8"
	}
}

func insulationKey(n string) string {
	switch {
	case strings.Contains(n, "r-30"), strings.Contains(n, "r30"):
		return "insulation_r30"
	case strings.Contains(n, "r-19"), strings.Contains(n, "r19"):
		return "insulation_r19"
	default:
		return "insulation_r13"
	}
}

func trimKey(n string) string {
	switch {
	case strings.Contains(n, "crown"):
		return "trim_crown"
	case strings.Contains(n, "casing"):
		return "trim_casing"
	default:
		return "trim_baseboard"
	}
}

func roofingKey(n string) string {
	switch {
	case strings.Contains(n, "metal"):
		return "roofing_metal"
	case strings.Contains(n, "felt"):
		return "roofing_felt"
	default:
		return "roofing_shingles"
	}
}

func lumberKey(n string) string {
	switch {
	case strings.Contains(n, "plywood"), strings.Contains(n, "osb"), strings.Contains(n, "sheathing"):
		return "lumber_sheathing"
	default:
		return "lumber"
	}
}
