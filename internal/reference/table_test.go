package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupKnownKeys(t *testing.T) {
	table := Default()

	assert.Equal(t, 1000000.00, table.Lookup(CategoryCrime, "homicide_cost"))
	assert.Equal(t, 8196.00, table.AnnualFamilySubsidySaving())
	assert.Equal(t, 27978.00, table.AnnualInmateCost())
	assert.Equal(t, 10.0, table.Lookup(CategoryEnvironment, "sequestration_tons_per_hectare_year"))
}

func TestLookupMissingKeyUsesCategoryDefault(t *testing.T) {
	table := Default()

	// Crime category falls back to a generic per-crime cost.
	assert.Equal(t, 50000.00, table.Lookup(CategoryCrime, "arson_cost"))
	// Environment falls back to the full-planting cost.
	assert.Equal(t, 2500.00, table.RestorationCostPerHectare("tundra"))
	// Categories without a documented default resolve to zero, never an error.
	assert.Equal(t, 0.0, table.Lookup(CategoryLabor, "nonexistent"))
	assert.Equal(t, 0.0, table.Lookup("no_such_category", "anything"))
}

func TestLookupNormalizesKeys(t *testing.T) {
	table := Default()

	assert.Equal(t, 2100.00, table.RestorationCostPerHectare("Atlantic Forest"))
	assert.True(t, table.HasRestorationCost("full_planting"))
	assert.False(t, table.HasRestorationCost("terraforming"))
}

func TestRangeForProjectType(t *testing.T) {
	table := Default()

	edu := table.RangeForProjectType("education")
	assert.Equal(t, SROIRange{Min: 1.5, Max: 3.5, Mid: 2.5}, edu)

	unknown := table.RangeForProjectType("space_program")
	assert.Equal(t, SROIRange{Min: 1.0, Max: 3.0, Mid: 2.0}, unknown)
}

func TestAnnualTaxYieldBuckets(t *testing.T) {
	table := Default()

	assert.Equal(t, 5004.00, table.AnnualTaxYieldPerWorker(1))
	assert.Equal(t, 21804.00, table.AnnualTaxYieldPerWorker(2))
	assert.Equal(t, 21804.00, table.AnnualTaxYieldPerWorker(5))
	assert.Equal(t, 49420.00, table.AnnualTaxYieldPerWorker(8))
}

func TestVersionStamp(t *testing.T) {
	assert.Equal(t, "2025-12", Default().Version())

	custom := NewTable("2026-01", map[string]map[string]float64{}, map[string]SROIRange{})
	assert.Equal(t, "2026-01", custom.Version())
}
