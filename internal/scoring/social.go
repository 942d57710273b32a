package scoring

import (
	"fmt"

	"impact-ledger/impact-portal-backend/internal/reference"
)

// Component keys in SocialReturnResult.Components.
const (
	ComponentJobs              = "jobs_created"
	ComponentSubsidyExit       = "subsidy_exit"
	ComponentDropoutPrevention = "dropout_prevention"
	ComponentLandRestoration   = "land_restoration"
	ComponentDirectBeneficiary = "direct_beneficiary_value"
)

// SocialReturnInput carries the signals consumed by the SROI calculation.
type SocialReturnInput struct {
	Investment            float64
	ProjectType           string
	Beneficiaries         int
	DurationYears         int
	JobsCreated           int
	FamiliesExitedSubsidy int
	StudentsRetained      int
	HectaresRestored      float64
}

// SocialReturnCalculator monetizes whichever impact signals are present and
// derives a clamped SROI ratio from them.
type SocialReturnCalculator struct {
	ref *reference.Table
}

// NewSocialReturnCalculator creates a social-return calculator backed by ref.
func NewSocialReturnCalculator(ref *reference.Table) *SocialReturnCalculator {
	return &SocialReturnCalculator{ref: ref}
}

// Calculate never fails: every missing signal has a defined fallback, and the
// resulting SROI is clamped into the reference band so no single signal can
// dominate the composite index.
func (c *SocialReturnCalculator) Calculate(in SocialReturnInput) SocialReturnResult {
	var notes []Note
	components := make(map[string]float64)

	band := c.ref.RangeForProjectType(in.ProjectType)
	duration := float64(in.DurationYears)

	if in.JobsCreated > 0 {
		yieldPerJob := c.ref.AnnualTaxYieldPerWorker(2)
		value := float64(in.JobsCreated) * yieldPerJob * duration
		components[ComponentJobs] = value
		notes = append(notes, Note{
			Code:    NoteJobsValue,
			Message: fmt.Sprintf("%d formal jobs generating %.2f in tax revenue", in.JobsCreated, value),
		})
	}

	if in.FamiliesExitedSubsidy > 0 {
		saving := c.ref.AnnualFamilySubsidySaving()
		value := float64(in.FamiliesExitedSubsidy) * saving * duration
		components[ComponentSubsidyExit] = value
		notes = append(notes, Note{
			Code:    NoteSubsidyExit,
			Message: fmt.Sprintf("%d families exit the income-transfer program", in.FamiliesExitedSubsidy),
		})
	}

	if in.StudentsRetained > 0 {
		dropoutCost := c.ref.Lookup(reference.CategoryEducation, "dropout_cost_avoided")
		share := c.ref.Lookup(reference.CategoryEducation, "dropout_value_share")
		value := float64(in.StudentsRetained) * dropoutCost * share
		components[ComponentDropoutPrevention] = value
		notes = append(notes, Note{
			Code:    NoteDropoutPrevention,
			Message: fmt.Sprintf("%d students avoid dropping out", in.StudentsRetained),
		})
	}

	if in.HectaresRestored > 0 {
		sequestration := c.ref.Lookup(reference.CategoryEnvironment, "sequestration_tons_per_hectare_year")
		carbonPrice := c.ref.Lookup(reference.CategoryEnvironment, "carbon_price_usd")
		fx := c.ref.Lookup(reference.CategoryMacro, "usd_fx_rate")
		value := in.HectaresRestored * sequestration * carbonPrice * fx * duration
		components[ComponentLandRestoration] = value
		notes = append(notes, Note{
			Code:    NoteLandRestoration,
			Message: fmt.Sprintf("%.1f hectares restored", in.HectaresRestored),
		})
	}

	// With no signal present, fall back to a reference-anchored minimum value
	// proportional to the beneficiary count.
	if len(components) == 0 {
		perBeneficiary := in.Investment * band.Mid / float64(in.Beneficiaries)
		value := float64(in.Beneficiaries) * perBeneficiary * 0.5
		components[ComponentDirectBeneficiary] = value
		notes = append(notes, Note{
			Code:    NoteBaselineEstimate,
			Message: "no specific impact signal present; social value estimated from the reference SROI band",
		})
	}

	var gross float64
	for _, v := range components {
		gross += v
	}
	net := gross - in.Investment
	raw := net / in.Investment

	floor := band.Min * c.ref.Lookup(reference.CategoryScoring, "sroi_floor_multiplier")
	ceiling := band.Max * c.ref.Lookup(reference.CategoryScoring, "sroi_ceiling_multiplier")
	clamped := raw
	if clamped < floor {
		clamped = floor
	}
	if clamped > ceiling {
		clamped = ceiling
	}

	return SocialReturnResult{
		Investment:       in.Investment,
		GrossSocialValue: gross,
		NetSocialValue:   net,
		SROI:             round2(clamped),
		ReferenceRange:   band,
		Components:       components,
		Notes:            notes,
	}
}
