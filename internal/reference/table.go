package reference

import "strings"

// SROIRange is the reference SROI band for a project type.
type SROIRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Mid float64 `json:"mid"`
}

// Table is a read-only lookup of economic and social constants. It is built
// once at startup and shared by every calculator; concurrent reads need no
// synchronization because nothing mutates it after construction.
type Table struct {
	version          string
	values           map[string]map[string]float64
	categoryDefaults map[string]float64
	sroiRanges       map[string]SROIRange
	fallbackRange    SROIRange
}

// Default returns the table backed by the bundled dataset.
func Default() *Table {
	return &Table{
		version:          defaultVersion,
		values:           defaultValues,
		categoryDefaults: categoryDefaults,
		sroiRanges:       defaultSROIRanges,
		fallbackRange:    fallbackSROIRange,
	}
}

// NewTable builds a table from an alternate dataset. Used by tests that need
// to score against a different reference version.
func NewTable(version string, values map[string]map[string]float64, ranges map[string]SROIRange) *Table {
	return &Table{
		version:          version,
		values:           values,
		categoryDefaults: categoryDefaults,
		sroiRanges:       ranges,
		fallbackRange:    fallbackSROIRange,
	}
}

// Version returns the dataset stamp.
func (t *Table) Version() string {
	return t.version
}

// Lookup returns the constant for category/key. A missing key resolves to the
// category default (zero if the category has none); a calculator can therefore
// never fail on a reference miss.
func (t *Table) Lookup(category, key string) float64 {
	if vals, ok := t.values[category]; ok {
		if v, ok := vals[normalizeKey(key)]; ok {
			return v
		}
	}
	return t.categoryDefaults[category]
}

// RangeForProjectType returns the SROI reference band for a project type,
// falling back to a generic band for unknown types.
func (t *Table) RangeForProjectType(projectType string) SROIRange {
	if r, ok := t.sroiRanges[normalizeKey(projectType)]; ok {
		return r
	}
	return t.fallbackRange
}

// RestorationCostPerHectare returns the per-hectare restoration cost for a
// biome or restoration method tag.
func (t *Table) RestorationCostPerHectare(tag string) float64 {
	return t.Lookup(CategoryEnvironment, "restoration_cost_"+normalizeKey(tag))
}

// HasRestorationCost reports whether an explicit cost exists for the tag.
// Used to decide whether a restoration-method override applies.
func (t *Table) HasRestorationCost(tag string) bool {
	vals, ok := t.values[CategoryEnvironment]
	if !ok {
		return false
	}
	_, ok = vals["restoration_cost_"+normalizeKey(tag)]
	return ok
}

// CrimeCost returns the estimated economic cost of one crime of the given
// category.
func (t *Table) CrimeCost(crimeCategory string) float64 {
	return t.Lookup(CategoryCrime, crimeCategory+"_cost")
}

// AnnualInmateCost returns the yearly cost of one state-system inmate.
func (t *Table) AnnualInmateCost() float64 {
	return t.Lookup(CategoryIncarceration, "state_inmate_cost_year")
}

// AnnualTaxYieldPerWorker returns the estimated yearly government revenue from
// one formal worker earning roughly the given multiple of the minimum wage.
func (t *Table) AnnualTaxYieldPerWorker(wageMultiple int) float64 {
	switch {
	case wageMultiple <= 1:
		return t.Lookup(CategoryLabor, "tax_yield_one_wage_year")
	case wageMultiple <= 5:
		return t.Lookup(CategoryLabor, "tax_yield_five_wages_year")
	default:
		return t.Lookup(CategoryLabor, "tax_yield_ten_wages_year")
	}
}

// AnnualFamilySubsidySaving returns the yearly saving when one family exits
// the income-transfer program.
func (t *Table) AnnualFamilySubsidySaving() float64 {
	return t.Lookup(CategorySocialPrograms, "family_subsidy_cost_year")
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_")
}
