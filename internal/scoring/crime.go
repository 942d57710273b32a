package scoring

import (
	"fmt"
	"math"

	"impact-ledger/impact-portal-backend/internal/reference"
)

// Avoided-crime category keys.
const (
	CrimeHomicide    = "homicide"
	CrimeRobbery     = "robbery"
	CrimeTheft       = "theft"
	CrimeTrafficking = "trafficking"
	CrimeOther       = "other"
)

// CrimeImpactInput carries the signals consumed by the crime-impact
// calculation. Investment is the pre-allocated security sub-budget, not the
// full project investment. A zero ReductionRate uses the reference default.
type CrimeImpactInput struct {
	Investment    float64
	YouthsServed  int
	DurationYears int
	AreaType      string
	ReductionRate float64
}

// CrimeImpactCalculator estimates crimes avoided and the associated avoided
// public cost from a count of at-risk youth served.
type CrimeImpactCalculator struct {
	ref *reference.Table
}

// NewCrimeImpactCalculator creates a crime-impact calculator backed by ref.
func NewCrimeImpactCalculator(ref *reference.Table) *CrimeImpactCalculator {
	return &CrimeImpactCalculator{ref: ref}
}

// Calculate distributes the avoided criminal involvement across fixed
// category proportions and monetizes each category. The homicide count is
// forced to at least one whenever any involvement is avoided, so a non-zero
// reduction never produces a zero-impact headline.
func (c *CrimeImpactCalculator) Calculate(in CrimeImpactInput) CrimeImpactResult {
	var notes []Note

	baseRate := c.ref.Lookup(reference.CategoryCrime, "rural_involvement_rate")
	if in.AreaType == "" || in.AreaType == AreaUrban {
		baseRate = c.ref.Lookup(reference.CategoryCrime, "urban_involvement_rate")
	}
	reduction := in.ReductionRate
	if reduction <= 0 {
		reduction = c.ref.Lookup(reference.CategoryCrime, "reduction_effectiveness")
	}

	avoided := int(math.Floor(float64(in.YouthsServed) * baseRate * reduction))

	share := func(key string) int {
		return int(math.Floor(float64(avoided) * c.ref.Lookup(reference.CategoryCrime, key)))
	}
	crimes := map[string]int{
		CrimeHomicide:    share("homicide_share"),
		CrimeRobbery:     share("robbery_share"),
		CrimeTheft:       share("theft_share"),
		CrimeTrafficking: share("trafficking_share"),
		CrimeOther:       share("other_share"),
	}
	if avoided > 0 && crimes[CrimeHomicide] < 1 {
		crimes[CrimeHomicide] = 1
	}

	crimeCost := float64(crimes[CrimeHomicide])*c.ref.CrimeCost(CrimeHomicide) +
		float64(crimes[CrimeRobbery])*c.ref.CrimeCost(CrimeRobbery) +
		float64(crimes[CrimeTheft])*c.ref.CrimeCost(CrimeTheft) +
		float64(crimes[CrimeTrafficking])*c.ref.CrimeCost(CrimeTrafficking) +
		float64(crimes[CrimeOther])*c.ref.Lookup(reference.CategoryCrime, "other_crime_cost")

	// Incarceration savings are capped at a fixed horizon regardless of
	// project duration.
	incarcerated := int(math.Floor(float64(avoided) * c.ref.Lookup(reference.CategoryIncarceration, "incarceration_share")))
	horizonCap := int(c.ref.Lookup(reference.CategoryIncarceration, "savings_horizon_cap"))
	horizon := in.DurationYears
	if horizon > horizonCap {
		horizon = horizonCap
	}
	incarcerationSavings := float64(incarcerated) * c.ref.AnnualInmateCost() * float64(horizon)

	securitySavings := crimeCost * c.ref.Lookup(reference.CategoryCrime, "security_overhead_rate")

	healthSavings := float64(crimes[CrimeHomicide]) * c.ref.Lookup(reference.CategoryCrime, "homicide_health_cost")
	healthSavings += float64(crimes[CrimeRobbery]+crimes[CrimeOther]) * c.ref.Lookup(reference.CategoryCrime, "minor_crime_health_cost")

	total := crimeCost + incarcerationSavings + securitySavings + healthSavings

	var ratio float64
	if in.Investment > 0 {
		ratio = total / in.Investment
	}

	notes = append(notes,
		Note{Code: NoteYouthsServed, Message: fmt.Sprintf("%d at-risk youths served", in.YouthsServed)},
		Note{Code: NoteAvoidedInvolvement, Message: fmt.Sprintf("%d youths avoid criminal involvement", avoided)},
		Note{Code: NoteIncarcerationAvoided, Message: fmt.Sprintf("%d incarcerations avoided", incarcerated)},
	)

	return CrimeImpactResult{
		Investment:           in.Investment,
		AvoidedInvolvement:   avoided,
		AvoidedCrimes:        crimes,
		CrimeCostAvoided:     crimeCost,
		IncarcerationSavings: incarcerationSavings,
		SecuritySavings:      securitySavings,
		HealthSavings:        healthSavings,
		TotalAvoidedCost:     total,
		ReturnRatio:          round2(ratio),
		Notes:                notes,
	}
}
