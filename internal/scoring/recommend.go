package scoring

import (
	"fmt"

	"impact-ledger/impact-portal-backend/internal/reference"
)

// Recommendation codes, in evaluation order.
const (
	RecOptimizeSROI           = "optimize_sroi"
	RecRevisitStrategy        = "revisit_strategy"
	RecExpandReach            = "expand_reach"
	RecAccelerateFiscalReturn = "accelerate_fiscal_return"
	RecHighlightSecurity      = "highlight_security_impact"
	RecCarbonCertification    = "pursue_carbon_certification"
	RecTokenization           = "eligible_for_tokenization"
	RecMaintainStrategy       = "maintain_strategy"
)

// paybackAlertYears is the payback horizon above which fiscal return is
// flagged as slow. An undefined payback counts as slow.
const paybackAlertYears = 5.0

type recommendationRule struct {
	code    string
	applies func(*CompositeResult) bool
	message func(*CompositeResult) string
}

// rules are evaluated independently and in order; each match contributes
// exactly one recommendation.
var rules = []recommendationRule{
	{
		code: RecOptimizeSROI,
		applies: func(r *CompositeResult) bool {
			return r.Social.SROI < r.Social.ReferenceRange.Min
		},
		message: func(r *CompositeResult) string {
			return fmt.Sprintf("SROI %.2f is below the reference floor of %.1f; consider reaching more beneficiaries or adding higher-impact components such as vocational training", r.Social.SROI, r.Social.ReferenceRange.Min)
		},
	},
	{
		code: RecRevisitStrategy,
		applies: func(r *CompositeResult) bool {
			return r.Tier == TierD
		},
		message: func(r *CompositeResult) string {
			return "the project shows low composite impact; revisit the theory of change and the outcome indicators"
		},
	},
	{
		code: RecExpandReach,
		applies: func(r *CompositeResult) bool {
			return r.Tier == TierC
		},
		message: func(r *CompositeResult) string {
			return "the project has room to broaden its impact; consider strategic partnerships and a wider coverage area"
		},
	},
	{
		code: RecAccelerateFiscalReturn,
		applies: func(r *CompositeResult) bool {
			return r.Fiscal.PaybackYears == nil || *r.Fiscal.PaybackYears > paybackAlertYears
		},
		message: func(r *CompositeResult) string {
			return "the fiscal payback horizon is long; prioritize job and income generation to accelerate public return"
		},
	},
	{
		code: RecHighlightSecurity,
		applies: func(r *CompositeResult) bool {
			return r.Crime != nil && r.Crime.ReturnRatio > 2
		},
		message: func(r *CompositeResult) string {
			return "strong crime-prevention return; highlight the security impact in public-safety funding calls"
		},
	},
	{
		code: RecCarbonCertification,
		applies: func(r *CompositeResult) bool {
			return r.Environmental != nil && r.Environmental.ReturnRatio > 1
		},
		message: func(r *CompositeResult) string {
			return "the environmental component returns positive value; pursue certification for carbon credit sales"
		},
	},
}

// recommend evaluates the rule list against a finished result. The list is
// never empty: when no rule fires, the default maintain-strategy entry is
// emitted.
func (e *Engine) recommend(result *CompositeResult) []Recommendation {
	threshold := int(e.ref.Lookup(reference.CategoryScoring, "tokenization_threshold"))
	ordered := append([]recommendationRule{}, rules...)
	ordered = append(ordered, recommendationRule{
		code: RecTokenization,
		applies: func(r *CompositeResult) bool {
			return r.RecommendedCredits > threshold
		},
		message: func(r *CompositeResult) string {
			return fmt.Sprintf("with %d recommended credits the project is eligible for tokenization and impact-investment fundraising", r.RecommendedCredits)
		},
	})

	var recs []Recommendation
	for _, rule := range ordered {
		if rule.applies(result) {
			recs = append(recs, Recommendation{Code: rule.code, Message: rule.message(result)})
		}
	}
	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Code:    RecMaintainStrategy,
			Message: "the project performs well across all indicators; keep the current approach under continuous monitoring",
		})
	}
	return recs
}
