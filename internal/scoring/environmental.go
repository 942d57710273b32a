package scoring

import (
	"fmt"

	"impact-ledger/impact-portal-backend/internal/reference"
)

// EnvironmentalImpactInput carries the signals consumed by the environmental
// calculation. Investment is the pre-allocated environmental sub-budget.
// HorizonYears below the minimum is raised to it: environmental benefit
// streams are modeled over a longer horizon than typical program duration.
type EnvironmentalImpactInput struct {
	Investment        float64
	Hectares          float64
	Biome             string
	RestorationMethod string
	HorizonYears      int
	IncludeCarbon     bool
	IncludePES        bool
}

// MinEnvironmentalHorizonYears is the floor applied to the benefit horizon.
const MinEnvironmentalHorizonYears = 10

// EnvironmentalImpactCalculator estimates restoration cost, carbon value,
// payment-for-ecosystem-services value and biodiversity value for a restored
// area.
type EnvironmentalImpactCalculator struct {
	ref *reference.Table
}

// NewEnvironmentalImpactCalculator creates an environmental calculator backed
// by ref.
func NewEnvironmentalImpactCalculator(ref *reference.Table) *EnvironmentalImpactCalculator {
	return &EnvironmentalImpactCalculator{ref: ref}
}

// Calculate values the benefit streams over the horizon. Carbon and PES are
// optional streams; biodiversity is always included.
func (c *EnvironmentalImpactCalculator) Calculate(in EnvironmentalImpactInput) EnvironmentalImpactResult {
	var notes []Note

	horizon := in.HorizonYears
	if horizon < MinEnvironmentalHorizonYears {
		horizon = MinEnvironmentalHorizonYears
	}
	years := float64(horizon)

	costPerHectare := c.ref.RestorationCostPerHectare(in.Biome)
	if in.RestorationMethod != "" && c.ref.HasRestorationCost(in.RestorationMethod) {
		costPerHectare = c.ref.RestorationCostPerHectare(in.RestorationMethod)
	}

	var carbonValue, tonsCO2 float64
	if in.IncludeCarbon {
		sequestration := c.ref.Lookup(reference.CategoryEnvironment, "sequestration_tons_per_hectare_year")
		priceLocal := c.ref.Lookup(reference.CategoryEnvironment, "carbon_price_usd") *
			c.ref.Lookup(reference.CategoryMacro, "usd_fx_rate")
		tonsCO2 = in.Hectares * sequestration * years
		carbonValue = tonsCO2 * priceLocal
		notes = append(notes, Note{
			Code:    NoteCarbonSequestration,
			Message: fmt.Sprintf("%.0f tCO2 sequestered over %d years", tonsCO2, horizon),
		})
	}

	var pesValue float64
	if in.IncludePES {
		perHectareYear := (c.ref.Lookup(reference.CategoryEnvironment, "pes_per_hectare_year_min") +
			c.ref.Lookup(reference.CategoryEnvironment, "pes_per_hectare_year_max")) / 2
		pesValue = in.Hectares * perHectareYear * years
		notes = append(notes, Note{
			Code:    NotePESRate,
			Message: fmt.Sprintf("ecosystem-service payments valued at %.2f per hectare per year", perHectareYear),
		})
	}

	biodiversityValue := in.Hectares * c.ref.Lookup(reference.CategoryEnvironment, "biodiversity_per_hectare_year") * years

	totalBenefit := carbonValue + pesValue + biodiversityValue

	var ratio float64
	if in.Investment > 0 {
		ratio = (totalBenefit - in.Investment) / in.Investment
	}

	notes = append(notes, Note{
		Code:    NoteRestorationCost,
		Message: fmt.Sprintf("restoration cost %.2f per hectare (%s)", costPerHectare, in.Biome),
	})

	return EnvironmentalImpactResult{
		Investment:        in.Investment,
		Hectares:          in.Hectares,
		Biome:             in.Biome,
		CostPerHectare:    costPerHectare,
		CarbonValue:       carbonValue,
		PESValue:          pesValue,
		BiodiversityValue: biodiversityValue,
		TotalBenefit:      totalBenefit,
		ReturnRatio:       round2(ratio),
		TonsCO2:           tonsCO2,
		Notes:             notes,
	}
}
