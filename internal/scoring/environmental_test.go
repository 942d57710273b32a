package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"impact-ledger/impact-portal-backend/internal/reference"
)

func TestEnvironmentalImpactFullStreams(t *testing.T) {
	calc := NewEnvironmentalImpactCalculator(reference.Default())

	result := calc.Calculate(EnvironmentalImpactInput{
		Investment:    200000,
		Hectares:      50,
		Biome:         "atlantic_forest",
		HorizonYears:  10,
		IncludeCarbon: true,
		IncludePES:    true,
	})

	assert.InDelta(t, 2100.0, result.CostPerHectare, 0.01)
	// 50 ha × 10 t/ha/yr × 10 yrs.
	assert.InDelta(t, 5000.0, result.TonsCO2, 0.01)
	// 5,000 t × 25 USD × 5.75 FX.
	assert.InDelta(t, 718750.0, result.CarbonValue, 0.01)
	// Midpoint of 500..1850 per ha per year.
	assert.InDelta(t, 587500.0, result.PESValue, 0.01)
	assert.InDelta(t, 250000.0, result.BiodiversityValue, 0.01)
	assert.InDelta(t, 1556250.0, result.TotalBenefit, 0.01)
	assert.InDelta(t, 6.78, result.ReturnRatio, 0.001)
}

func TestEnvironmentalHorizonFloor(t *testing.T) {
	calc := NewEnvironmentalImpactCalculator(reference.Default())

	short := calc.Calculate(EnvironmentalImpactInput{
		Investment: 100000, Hectares: 20, Biome: "cerrado",
		HorizonYears: 3, IncludeCarbon: true, IncludePES: true,
	})
	floor := calc.Calculate(EnvironmentalImpactInput{
		Investment: 100000, Hectares: 20, Biome: "cerrado",
		HorizonYears: MinEnvironmentalHorizonYears, IncludeCarbon: true, IncludePES: true,
	})

	// Benefit streams are always modeled over at least ten years.
	assert.Equal(t, floor.TotalBenefit, short.TotalBenefit)
	assert.Equal(t, floor.TonsCO2, short.TonsCO2)
}

func TestEnvironmentalMethodOverridesBiomeCost(t *testing.T) {
	calc := NewEnvironmentalImpactCalculator(reference.Default())

	byBiome := calc.Calculate(EnvironmentalImpactInput{
		Investment: 50000, Hectares: 10, Biome: "amazon", HorizonYears: 10,
	})
	assert.InDelta(t, 2000.0, byBiome.CostPerHectare, 0.01)

	byMethod := calc.Calculate(EnvironmentalImpactInput{
		Investment: 50000, Hectares: 10, Biome: "amazon",
		RestorationMethod: "natural_regeneration", HorizonYears: 10,
	})
	assert.InDelta(t, 800.0, byMethod.CostPerHectare, 0.01)

	unknownMethod := calc.Calculate(EnvironmentalImpactInput{
		Investment: 50000, Hectares: 10, Biome: "amazon",
		RestorationMethod: "terraforming", HorizonYears: 10,
	})
	assert.InDelta(t, 2000.0, unknownMethod.CostPerHectare, 0.01)

	unknownBiome := calc.Calculate(EnvironmentalImpactInput{
		Investment: 50000, Hectares: 10, Biome: "steppe", HorizonYears: 10,
	})
	assert.InDelta(t, 2500.0, unknownBiome.CostPerHectare, 0.01)
}

func TestEnvironmentalOptionalStreams(t *testing.T) {
	calc := NewEnvironmentalImpactCalculator(reference.Default())

	result := calc.Calculate(EnvironmentalImpactInput{
		Investment:   100000,
		Hectares:     40,
		Biome:        "pantanal",
		HorizonYears: 10,
	})

	// Carbon and PES excluded; biodiversity always counts.
	assert.Equal(t, 0.0, result.CarbonValue)
	assert.Equal(t, 0.0, result.PESValue)
	assert.Equal(t, 0.0, result.TonsCO2)
	assert.InDelta(t, 200000.0, result.BiodiversityValue, 0.01)
	assert.InDelta(t, 200000.0, result.TotalBenefit, 0.01)
	assert.InDelta(t, 1.0, result.ReturnRatio, 0.001)
}
