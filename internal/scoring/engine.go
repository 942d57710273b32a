package scoring

import (
	"fmt"
	"math"

	"impact-ledger/impact-portal-backend/internal/reference"
)

// Weights are the policy constants combining the sub-calculator outputs into
// the composite index and the recommended credit quantity. They are injected
// rather than hard-coded so allocation policy can evolve without touching the
// algorithm.
type Weights struct {
	SROIWeight               float64 `json:"sroi_weight"`
	FiscalWeight             float64 `json:"fiscal_weight"`
	PeopleDivisor            float64 `json:"people_divisor"`
	CrimeBonusFactor         float64 `json:"crime_bonus_factor"`
	EnvironmentalBonusFactor float64 `json:"environmental_bonus_factor"`
	CreditScaleFactor        float64 `json:"credit_scale_factor"`
	CreditFloor              int     `json:"credit_floor"`
	CrimeBudgetShare         float64 `json:"crime_budget_share"`
	EnvironmentalBudgetShare float64 `json:"environmental_budget_share"`
	EnableCrimeImpact        bool    `json:"enable_crime_impact"`
	EnableEnvironmental      bool    `json:"enable_environmental"`
}

// DefaultWeights returns the current allocation policy. Fiscal return is
// weighted as the most decision-relevant signal, social return second, with
// people scale and the bonus dimensions as secondary adjustments.
func DefaultWeights() Weights {
	return Weights{
		SROIWeight:               2.0,
		FiscalWeight:             3.0,
		PeopleDivisor:            100.0,
		CrimeBonusFactor:         0.5,
		EnvironmentalBonusFactor: 0.5,
		CreditScaleFactor:        0.3,
		CreditFloor:              100,
		CrimeBudgetShare:         0.3,
		EnvironmentalBudgetShare: 0.4,
		EnableCrimeImpact:        true,
		EnableEnvironmental:      true,
	}
}

// Engine orchestrates the sub-calculators and holds sole decision authority
// over which of them run and how their outputs combine. Score is a pure
// function of the fact set and the reference table; engines are safe for
// concurrent use.
type Engine struct {
	ref           *reference.Table
	weights       Weights
	social        *SocialReturnCalculator
	crime         *CrimeImpactCalculator
	environmental *EnvironmentalImpactCalculator
	fiscal        *FiscalReturnCalculator
}

// NewEngine creates a scoring engine over the given reference table and
// policy weights.
func NewEngine(ref *reference.Table, weights Weights) *Engine {
	return &Engine{
		ref:           ref,
		weights:       weights,
		social:        NewSocialReturnCalculator(ref),
		crime:         NewCrimeImpactCalculator(ref),
		environmental: NewEnvironmentalImpactCalculator(ref),
		fiscal:        NewFiscalReturnCalculator(ref),
	}
}

// ReferenceVersion returns the version stamp of the engine's reference table.
func (e *Engine) ReferenceVersion() string {
	return e.ref.Version()
}

// Score runs the full pipeline for one fact set. It returns a
// *ValidationError for structurally invalid facts and otherwise always yields
// a complete result: missing signals degrade to baseline estimates, they
// never fail the request.
func (e *Engine) Score(facts ProjectFacts) (*CompositeResult, error) {
	if err := facts.Validate(); err != nil {
		return nil, err
	}

	// Capability flags are computed once here, not re-derived inside the
	// calculators.
	includeCrime := e.weights.EnableCrimeImpact && facts.YouthsServed > 0
	includeEnvironmental := e.weights.EnableEnvironmental && facts.HectaresRestored > 0

	social := e.social.Calculate(SocialReturnInput{
		Investment:            facts.Investment,
		ProjectType:           facts.ProjectType,
		Beneficiaries:         facts.Beneficiaries,
		DurationYears:         facts.DurationYears,
		JobsCreated:           facts.JobsCreated,
		FamiliesExitedSubsidy: facts.FamiliesExitedSubsidy,
		StudentsRetained:      facts.StudentsRetained,
		HectaresRestored:      facts.HectaresRestored,
	})

	var crime *CrimeImpactResult
	if includeCrime {
		result := e.crime.Calculate(CrimeImpactInput{
			Investment:    facts.Investment * e.weights.CrimeBudgetShare,
			YouthsServed:  facts.YouthsServed,
			DurationYears: facts.DurationYears,
			AreaType:      facts.AreaType,
		})
		crime = &result
	}

	horizon := facts.DurationYears
	if horizon < MinEnvironmentalHorizonYears {
		horizon = MinEnvironmentalHorizonYears
	}

	var environmental *EnvironmentalImpactResult
	if includeEnvironmental {
		result := e.environmental.Calculate(EnvironmentalImpactInput{
			Investment:        facts.Investment * e.weights.EnvironmentalBudgetShare,
			Hectares:          facts.HectaresRestored,
			Biome:             facts.Biome,
			RestorationMethod: facts.RestorationMethod,
			HorizonYears:      horizon,
			IncludeCarbon:     true,
			IncludePES:        true,
		})
		environmental = &result
	}

	var crimesAvoided int
	if crime != nil {
		crimesAvoided = crime.TotalAvoidedCrimes()
	}
	fiscal := e.fiscal.Calculate(FiscalReturnInput{
		Investment:              facts.Investment,
		JobsCreated:             facts.JobsCreated,
		FamiliesExitedSubsidy:   facts.FamiliesExitedSubsidy,
		CrimesAvoided:           crimesAvoided,
		HospitalizationsAvoided: facts.HospitalizationsAvoided,
		HorizonYears:            horizon,
	})

	familyImpact := int(math.Floor(float64(facts.Beneficiaries) * e.ref.Lookup(reference.CategoryMultipliers, "family")))
	totalPeople := int(math.Floor(float64(familyImpact) * e.ref.Lookup(reference.CategoryMultipliers, "community")))

	var crimeBonus, environmentalBonus float64
	if crime != nil {
		crimeBonus = crime.ReturnRatio * e.weights.CrimeBonusFactor
	}
	if environmental != nil {
		environmentalBonus = environmental.ReturnRatio * e.weights.EnvironmentalBonusFactor
	}

	uisv := round2(social.SROI*e.weights.SROIWeight +
		fiscal.ReturnRatio*e.weights.FiscalWeight +
		float64(totalPeople)/e.weights.PeopleDivisor +
		crimeBonus + environmentalBonus)

	credits := int(math.Floor(uisv * e.weights.CreditScaleFactor * (facts.Investment / 10000)))
	if credits < e.weights.CreditFloor {
		credits = e.weights.CreditFloor
	}

	tier := e.classify(uisv)

	result := &CompositeResult{
		ProjectName:         facts.Name,
		ReferenceVersion:    e.ref.Version(),
		TotalInvestment:     facts.Investment,
		DirectBeneficiaries: facts.Beneficiaries,
		FamilyImpact:        familyImpact,
		TotalPeopleImpact:   totalPeople,
		Social:              social,
		Crime:               crime,
		Environmental:       environmental,
		Fiscal:              fiscal,
		UISV:                uisv,
		RecommendedCredits:  credits,
		Tier:                tier,
	}
	result.Recommendations = e.recommend(result)
	result.Notes = []Note{
		{Code: NoteClassification, Message: fmt.Sprintf("tier %s: %s", tier, tier.Label())},
		{Code: NoteSocialMultiplier, Message: fmt.Sprintf("%d direct beneficiaries reach %d people through family and community multipliers", facts.Beneficiaries, totalPeople)},
		{Code: NoteCreditRecommendation, Message: fmt.Sprintf("UISV %.2f recommends %d social-impact credits", uisv, credits)},
	}
	return result, nil
}

// classify maps the composite index onto the ordinal tiers. Thresholds are
// evaluated top-down; a boundary value belongs to the higher tier.
func (e *Engine) classify(uisv float64) Tier {
	switch {
	case uisv >= e.ref.Lookup(reference.CategoryScoring, "tier_a_threshold"):
		return TierA
	case uisv >= e.ref.Lookup(reference.CategoryScoring, "tier_b_threshold"):
		return TierB
	case uisv >= e.ref.Lookup(reference.CategoryScoring, "tier_c_threshold"):
		return TierC
	default:
		return TierD
	}
}
