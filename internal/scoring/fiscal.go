package scoring

import (
	"fmt"

	"impact-ledger/impact-portal-backend/internal/reference"
)

// FiscalReturnInput carries the signals consumed by the fiscal-return
// calculation. Investment is the full public investment; CrimesAvoided is the
// aggregate count from the crime calculator, zero when it did not run.
type FiscalReturnInput struct {
	Investment              float64
	JobsCreated             int
	FamiliesExitedSubsidy   int
	CrimesAvoided           int
	HospitalizationsAvoided int
	HorizonYears            int
}

// FiscalReturnCalculator estimates government revenue and savings streams and
// the payback horizon of the public investment.
type FiscalReturnCalculator struct {
	ref *reference.Table
}

// NewFiscalReturnCalculator creates a fiscal-return calculator backed by ref.
func NewFiscalReturnCalculator(ref *reference.Table) *FiscalReturnCalculator {
	return &FiscalReturnCalculator{ref: ref}
}

// Calculate sums the independent revenue and savings streams. A zero
// annualized return leaves PaybackYears nil rather than dividing by zero.
func (c *FiscalReturnCalculator) Calculate(in FiscalReturnInput) FiscalReturnResult {
	var notes []Note

	horizon := in.HorizonYears
	if horizon < 1 {
		horizon = 1
	}
	years := float64(horizon)

	var revenue float64
	if in.JobsCreated > 0 {
		revenue = float64(in.JobsCreated) * c.ref.AnnualTaxYieldPerWorker(2) * years
		notes = append(notes, Note{
			Code:    NoteJobsValue,
			Message: fmt.Sprintf("%d jobs yielding %.2f in tax revenue", in.JobsCreated, revenue),
		})
	}

	var programSavings float64
	if in.FamiliesExitedSubsidy > 0 {
		programSavings = float64(in.FamiliesExitedSubsidy) * c.ref.AnnualFamilySubsidySaving() * years
		notes = append(notes, Note{
			Code:    NoteSubsidyExit,
			Message: fmt.Sprintf("%d families exit the income-transfer program saving %.2f", in.FamiliesExitedSubsidy, programSavings),
		})
	}

	var securitySavings float64
	if in.CrimesAvoided > 0 {
		securitySavings = float64(in.CrimesAvoided) * c.ref.Lookup(reference.CategoryMacro, "avg_crime_cost")
	}

	var healthSavings float64
	if in.HospitalizationsAvoided > 0 {
		healthSavings = float64(in.HospitalizationsAvoided) * c.ref.Lookup(reference.CategoryMacro, "avg_hospitalization_cost")
	}

	total := revenue + programSavings + securitySavings + healthSavings
	ratio := total / in.Investment

	var payback *float64
	annualized := total / years
	if annualized > 0 {
		p := round1(in.Investment / annualized)
		payback = &p
	} else {
		notes = append(notes, Note{
			Code:    NoteUndefinedPayback,
			Message: "annualized fiscal return is zero; payback horizon undefined",
		})
	}

	return FiscalReturnResult{
		PublicInvestment:     in.Investment,
		RevenueGenerated:     revenue,
		SocialProgramSavings: programSavings,
		HealthSavings:        healthSavings,
		SecuritySavings:      securitySavings,
		TotalReturn:          total,
		ReturnRatio:          round2(ratio),
		PaybackYears:         payback,
		Notes:                notes,
	}
}
