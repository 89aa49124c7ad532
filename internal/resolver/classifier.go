package resolver

import "strings"

type rule struct {
	category Category
	matches  func(name string) bool
}

// rules are evaluated in order and the first match wins. Area-direct and
// concrete keywords run before every generic family because their names
// routinely contain generic substrings ("concrete mix for vapor barrier bed").
var rules = []rule{
	{CategoryAreaDirect, containsAny(
		"vapor barrier", "vapour barrier",
		"poly sheeting", "polyethylene sheeting", "plastic sheeting",
		"rebar", "wire mesh", "welded mesh", "welded wire",
	)},
	{CategoryConcreteVolume, containsAny("concrete mix", "ready-mix", "ready mix", "readymix", "cement")},
	{CategoryPrimer, containsAny("primer")},
	{CategorySealant, containsAny("sealant", "sealer", "caulk")},
	{CategoryPaint, containsAny("paint", "stain")},
	{CategoryFlooring, containsAny(
		"flooring", "laminate", "hardwood", "engineered wood",
		"vinyl plank", "vinyl floor", "lvp", "carpet",
	)},
	{CategoryTile, isTile},
	{CategoryDrywall, containsAny("drywall", "gypsum", "sheetrock", "wallboard", "plasterboard")},
	{CategoryUnderlayment, containsAny("underlayment", "underlay", "backer board", "backerboard")},
	{CategoryInsulation, containsAny(
		"insulation", "batt", "fiberglass", "mineral wool", "rockwool",
		"r-13", "r-19", "r-30",
	)},
	{CategoryTrim, containsAny("trim", "baseboard", "molding", "moulding", "casing", "crown")},
	{CategoryGrout, containsAny("grout")},
	{CategoryAdhesive, containsAny("adhesive", "thinset", "thin-set", "mortar", "mastic", "glue")},
	{CategoryRoofing, containsAny("shingle", "roofing", "roof")},
	{CategoryLumber, containsAny(
		"lumber", "2x4", "2x6", "2x8", "2x10", "2x12",
		"stud", "joist", "framing", "plywood", "osb", "sheathing",
	)},
}

// Classify maps a free-text material name to a category using
// case-insensitive substring rules. It returns CategoryUnknown when no
// rule matches.
func Classify(name string) Category {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return CategoryUnknown
	}
	for _, r := range rules {
		if r.matches(n) {
			return r.category
		}
	}
	return CategoryUnknown
}

// ClassificationOrder returns the categories in the order their rules are evaluated.
func ClassificationOrder() []Category {
	order := make([]Category, len(rules))
	for i, r := range rules {
		order[i] = r.category
	}
	return order
}

func containsAny(keywords ...string) func(string) bool {
	return func(name string) bool {
		for _, k := range keywords {
			if strings.Contains(name, k) {
				return true
			}
		}
		return false
	}
}

// "ceiling tile" is acoustic panelling, not the tile family.
func isTile(name string) bool {
	return strings.Contains(name, "tile") && !strings.Contains(name, "ceiling tile")
}
