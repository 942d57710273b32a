package scoring

import (
	"math"

	"impact-ledger/impact-portal-backend/internal/reference"
)

// NoteCode tags a narrative note so the report layer can localize or format
// it without parsing strings.
type NoteCode string

const (
	NoteJobsValue            NoteCode = "jobs_value"
	NoteSubsidyExit          NoteCode = "subsidy_exit"
	NoteDropoutPrevention    NoteCode = "dropout_prevention"
	NoteLandRestoration      NoteCode = "land_restoration"
	NoteBaselineEstimate     NoteCode = "baseline_estimate"
	NoteYouthsServed         NoteCode = "youths_served"
	NoteAvoidedInvolvement   NoteCode = "avoided_involvement"
	NoteIncarcerationAvoided NoteCode = "incarceration_avoided"
	NoteCarbonSequestration  NoteCode = "carbon_sequestration"
	NotePESRate              NoteCode = "pes_rate"
	NoteRestorationCost      NoteCode = "restoration_cost"
	NoteUndefinedPayback     NoteCode = "undefined_payback"
	NoteClassification       NoteCode = "classification"
	NoteSocialMultiplier     NoteCode = "social_multiplier"
	NoteCreditRecommendation NoteCode = "credit_recommendation"
)

// Note is one tagged narrative entry in a result record.
type Note struct {
	Code    NoteCode `json:"code"`
	Message string   `json:"message"`
}

// Tier is the ordinal impact classification.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// Label returns the human-readable description of the tier.
func (t Tier) Label() string {
	switch t {
	case TierA:
		return "very high impact"
	case TierB:
		return "high impact"
	case TierC:
		return "medium impact"
	default:
		return "low impact - revisit strategy"
	}
}

// Recommendation is one entry of the ranked recommendation list.
type Recommendation struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SocialReturnResult is the output of the social-return calculator. SROI is
// always clamped into [floor×range.Min, ceiling×range.Max].
type SocialReturnResult struct {
	Investment       float64             `json:"investment"`
	GrossSocialValue float64             `json:"gross_social_value"`
	NetSocialValue   float64             `json:"net_social_value"`
	SROI             float64             `json:"sroi"`
	ReferenceRange   reference.SROIRange `json:"reference_range"`
	Components       map[string]float64  `json:"components"`
	Notes            []Note              `json:"notes"`
}

// CrimeImpactResult is the output of the crime-impact calculator.
type CrimeImpactResult struct {
	Investment           float64        `json:"investment"`
	AvoidedInvolvement   int            `json:"avoided_involvement"`
	AvoidedCrimes        map[string]int `json:"avoided_crimes"`
	CrimeCostAvoided     float64        `json:"crime_cost_avoided"`
	IncarcerationSavings float64        `json:"incarceration_savings"`
	SecuritySavings      float64        `json:"security_savings"`
	HealthSavings        float64        `json:"health_savings"`
	TotalAvoidedCost     float64        `json:"total_avoided_cost"`
	ReturnRatio          float64        `json:"return_ratio"`
	Notes                []Note         `json:"notes"`
}

// TotalAvoidedCrimes sums the per-category avoided-crime counts.
func (r *CrimeImpactResult) TotalAvoidedCrimes() int {
	var total int
	for _, n := range r.AvoidedCrimes {
		total += n
	}
	return total
}

// EnvironmentalImpactResult is the output of the environmental calculator.
type EnvironmentalImpactResult struct {
	Investment        float64 `json:"investment"`
	Hectares          float64 `json:"hectares"`
	Biome             string  `json:"biome"`
	CostPerHectare    float64 `json:"cost_per_hectare"`
	CarbonValue       float64 `json:"carbon_value"`
	PESValue          float64 `json:"pes_value"`
	BiodiversityValue float64 `json:"biodiversity_value"`
	TotalBenefit      float64 `json:"total_benefit"`
	ReturnRatio       float64 `json:"return_ratio"`
	TonsCO2           float64 `json:"tons_co2_sequestered"`
	Notes             []Note  `json:"notes"`
}

// FiscalReturnResult is the output of the fiscal-return calculator.
// PaybackYears is nil when the annualized return is zero; an undefined
// payback is a designed sentinel, never a division fault.
type FiscalReturnResult struct {
	PublicInvestment     float64  `json:"public_investment"`
	RevenueGenerated     float64  `json:"revenue_generated"`
	SocialProgramSavings float64  `json:"social_program_savings"`
	HealthSavings        float64  `json:"health_savings"`
	SecuritySavings      float64  `json:"security_savings"`
	TotalReturn          float64  `json:"total_return"`
	ReturnRatio          float64  `json:"return_ratio"`
	PaybackYears         *float64 `json:"payback_years"`
	Notes                []Note   `json:"notes"`
}

// CompositeResult is the immutable output of one scoring request. Crime and
// Environmental are present only when their calculator ran.
type CompositeResult struct {
	ProjectName         string                     `json:"project_name"`
	ReferenceVersion    string                     `json:"reference_version"`
	TotalInvestment     float64                    `json:"total_investment"`
	DirectBeneficiaries int                        `json:"direct_beneficiaries"`
	FamilyImpact        int                        `json:"family_impact"`
	TotalPeopleImpact   int                        `json:"total_people_impact"`
	Social              SocialReturnResult         `json:"social"`
	Crime               *CrimeImpactResult         `json:"crime,omitempty"`
	Environmental       *EnvironmentalImpactResult `json:"environmental,omitempty"`
	Fiscal              FiscalReturnResult         `json:"fiscal"`
	UISV                float64                    `json:"uisv"`
	RecommendedCredits  int                        `json:"recommended_credits"`
	Tier                Tier                       `json:"tier"`
	Recommendations     []Recommendation           `json:"recommendations"`
	Notes               []Note                     `json:"notes"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
