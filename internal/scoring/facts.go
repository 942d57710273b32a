package scoring

import "fmt"

// Area types recognized by the crime-impact calculator. Anything other than
// urban uses the lower base involvement rate.
const (
	AreaUrban     = "urban"
	AreaPeriurban = "periurban"
	AreaRural     = "rural"
)

// ProjectFacts is the validated input record for one scoring request. The
// engine never mutates it; optional signals left at zero simply skip their
// calculator or component.
type ProjectFacts struct {
	Name          string  `json:"name"`
	Investment    float64 `json:"investment"`
	ProjectType   string  `json:"project_type"`
	Beneficiaries int     `json:"beneficiaries"`
	DurationYears int     `json:"duration_years"`

	// Optional impact signals.
	JobsCreated             int     `json:"jobs_created"`
	FamiliesExitedSubsidy   int     `json:"families_exited_subsidy"`
	StudentsRetained        int     `json:"students_retained"`
	YouthsServed            int     `json:"youths_served"`
	HospitalizationsAvoided int     `json:"hospitalizations_avoided"`
	HectaresRestored        float64 `json:"hectares_restored"`
	Biome                   string  `json:"biome"`
	RestorationMethod       string  `json:"restoration_method"`
	AreaType                string  `json:"area_type"`
}

// ValidationError reports a structurally invalid fact set. It is the only
// error the engine ever returns; every other condition degrades to a fallback.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid project facts: %s %s", e.Field, e.Message)
}

// Validate checks the fact-set invariants. It runs before any calculator.
func (f *ProjectFacts) Validate() error {
	if f.Investment <= 0 {
		return &ValidationError{Field: "investment", Message: "must be greater than zero"}
	}
	if f.Beneficiaries < 1 {
		return &ValidationError{Field: "beneficiaries", Message: "must be at least 1"}
	}
	if f.DurationYears < 1 {
		return &ValidationError{Field: "duration_years", Message: "must be at least 1"}
	}
	counts := map[string]int{
		"jobs_created":             f.JobsCreated,
		"families_exited_subsidy":  f.FamiliesExitedSubsidy,
		"students_retained":        f.StudentsRetained,
		"youths_served":            f.YouthsServed,
		"hospitalizations_avoided": f.HospitalizationsAvoided,
	}
	for field, v := range counts {
		if v < 0 {
			return &ValidationError{Field: field, Message: "must not be negative"}
		}
	}
	if f.HectaresRestored < 0 {
		return &ValidationError{Field: "hectares_restored", Message: "must not be negative"}
	}
	return nil
}
