package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"impact-ledger/impact-portal-backend/internal/scoring"
)

// tierNarratives maps tiers onto the phrasing used in report prose.
var tierNarratives = map[scoring.Tier]string{
	scoring.TierA: "very high social impact",
	scoring.TierB: "high social impact",
	scoring.TierC: "medium social impact",
	scoring.TierD: "low social impact, requiring review",
}

// MarkdownBuilder renders assessment results as Markdown documents.
type MarkdownBuilder struct {
	organization string
	now          func() time.Time
}

func NewMarkdownBuilder(organization string) *MarkdownBuilder {
	return &MarkdownBuilder{
		organization: organization,
		now:          time.Now,
	}
}

// ExecutiveReport renders the full impact report for one scored project.
func (b *MarkdownBuilder) ExecutiveReport(result *scoring.CompositeResult) string {
	var sb strings.Builder

	issued := b.now().Format("2006-01-02 15:04")

	sb.WriteString("# SOCIAL IMPACT EXECUTIVE REPORT\n\n")
	fmt.Fprintf(&sb, "## %s\n\n", result.ProjectName)
	fmt.Fprintf(&sb, "**Issued:** %s\n", issued)
	fmt.Fprintf(&sb, "**Reference data version:** %s\n", result.ReferenceVersion)
	fmt.Fprintf(&sb, "**Prepared by:** %s\n\n", b.organization)
	sb.WriteString("---\n\n")

	sb.WriteString("## EXECUTIVE SUMMARY\n\n")
	sb.WriteString("| Indicator | Value |\n|-----------|-------|\n")
	fmt.Fprintf(&sb, "| **Total Investment** | %s |\n", money(result.TotalInvestment))
	fmt.Fprintf(&sb, "| **Direct Beneficiaries** | %d people |\n", result.DirectBeneficiaries)
	fmt.Fprintf(&sb, "| **Total Impact (multiplier)** | %d people |\n", result.TotalPeopleImpact)
	fmt.Fprintf(&sb, "| **SROI** | %.2f |\n", result.Social.SROI)
	fmt.Fprintf(&sb, "| **UISV** | %.2f |\n", result.UISV)
	fmt.Fprintf(&sb, "| **Recommended Credits** | %d |\n", result.RecommendedCredits)
	fmt.Fprintf(&sb, "| **Classification** | %s |\n\n", result.Tier)
	sb.WriteString("---\n\n")

	sb.WriteString("## IMPACT ANALYSIS\n\n")
	sb.WriteString("### Social Return on Investment (SROI)\n\n")
	fmt.Fprintf(&sb, "The project reports an SROI of **%.2f**: each unit of currency invested generates %.2f in social value.\n\n", result.Social.SROI, result.Social.SROI)
	sb.WriteString(b.sroiAnalysis(result))

	sb.WriteString("### Fiscal Impact\n\n")
	sb.WriteString("| Component | Value |\n|------------|-------|\n")
	fmt.Fprintf(&sb, "| Tax revenue generated | %s |\n", money(result.Fiscal.RevenueGenerated))
	fmt.Fprintf(&sb, "| Social program savings | %s |\n", money(result.Fiscal.SocialProgramSavings))
	fmt.Fprintf(&sb, "| Public security savings | %s |\n", money(result.Fiscal.SecuritySavings))
	fmt.Fprintf(&sb, "| Health savings | %s |\n", money(result.Fiscal.HealthSavings))
	fmt.Fprintf(&sb, "| **Total Fiscal Return** | %s |\n", money(result.Fiscal.TotalReturn))
	fmt.Fprintf(&sb, "| **Fiscal ROI** | %.2f |\n", result.Fiscal.ReturnRatio)
	if result.Fiscal.PaybackYears != nil {
		fmt.Fprintf(&sb, "| **Payback** | %.1f years |\n\n", *result.Fiscal.PaybackYears)
	} else {
		sb.WriteString("| **Payback** | not defined |\n\n")
	}

	if result.Crime != nil {
		sb.WriteString(b.crimeSection(result.Crime))
	}
	if result.Environmental != nil {
		sb.WriteString(b.environmentalSection(result.Environmental))
	}

	sb.WriteString("---\n\n")
	sb.WriteString("## SOCIAL IMPACT CREDITS\n\n")
	fmt.Fprintf(&sb, "Based on this assessment, the issuance of **%d credits** is recommended for this project.\n\n", result.RecommendedCredits)

	sb.WriteString("### UISV Composition\n\n")
	sb.WriteString("| Component | Contribution |\n|------------|--------------|\n")
	fmt.Fprintf(&sb, "| SROI (weight 2x) | %.2f |\n", result.Social.SROI*2)
	fmt.Fprintf(&sb, "| Fiscal ROI (weight 3x) | %.2f |\n", result.Fiscal.ReturnRatio*3)
	fmt.Fprintf(&sb, "| People impact | %.2f |\n", float64(result.TotalPeopleImpact)/100)
	crimeContribution := 0.0
	if result.Crime != nil {
		crimeContribution = result.Crime.ReturnRatio * 0.5
	}
	environmentalContribution := 0.0
	if result.Environmental != nil {
		environmentalContribution = result.Environmental.ReturnRatio * 0.5
	}
	fmt.Fprintf(&sb, "| Security bonus | %.2f |\n", crimeContribution)
	fmt.Fprintf(&sb, "| Environmental bonus | %.2f |\n", environmentalContribution)
	fmt.Fprintf(&sb, "| **Total UISV** | **%.2f** |\n\n", result.UISV)

	sb.WriteString("### Credit Formula\n\n")
	sb.WriteString("```\ncredits = UISV x 0.3 x (investment / 10,000)\n")
	fmt.Fprintf(&sb, "credits = %.2f x 0.3 x (%s / 10,000)\ncredits = %d\n```\n\n", result.UISV, money(result.TotalInvestment), result.RecommendedCredits)
	sb.WriteString("---\n\n")

	sb.WriteString("## RECOMMENDATIONS\n\n")
	for i, rec := range result.Recommendations {
		fmt.Fprintf(&sb, "%d. %s\n\n", i+1, rec.Message)
	}
	sb.WriteString("---\n\n")

	sb.WriteString("## FINAL CONSIDERATIONS\n\n")
	sb.WriteString(b.finalConsiderations(result))

	sb.WriteString("---\n\n")
	sb.WriteString("## METHODOLOGY\n\n")
	sb.WriteString("This report values social impact by monetizing outcome signals against a versioned reference table of public-sector costs and sector SROI benchmarks, combining social, fiscal, security and environmental dimensions into a single composite index (UISV).\n\n")
	fmt.Fprintf(&sb, "- Reference data version: %s\n\n", result.ReferenceVersion)
	fmt.Fprintf(&sb, "---\n\n*Generated by %s on %s*\n", b.organization, issued)

	return sb.String()
}

// sroiAnalysis qualifies the SROI against the project type's reference band.
func (b *MarkdownBuilder) sroiAnalysis(result *scoring.CompositeResult) string {
	var sb strings.Builder

	sroi := result.Social.SROI
	band := result.Social.ReferenceRange

	var qualification, remark string
	switch {
	case sroi >= band.Max:
		qualification = "exceptional"
		remark = "significantly above the sector benchmarks"
	case sroi >= (band.Min+band.Max)/2:
		qualification = "very good"
		remark = "above average for similar projects"
	case sroi >= band.Min:
		qualification = "adequate"
		remark = "within the expected range for this project type"
	default:
		qualification = "below expectations"
		remark = "suggesting a need for optimization"
	}

	fmt.Fprintf(&sb, "The SROI of %.2f is considered **%s**, %s.\n\n", sroi, qualification, remark)
	fmt.Fprintf(&sb, "The reference band for projects of this nature is %.1f to %.1f.\n\n", band.Min, band.Max)

	if len(result.Social.Components) > 0 {
		sb.WriteString("**Social value components:**\n\n")
		keys := make([]string, 0, len(result.Social.Components))
		for k := range result.Social.Components {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s: %s\n", titleCase(k), money(result.Social.Components[k]))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (b *MarkdownBuilder) crimeSection(crime *scoring.CrimeImpactResult) string {
	var sb strings.Builder

	sb.WriteString("### Public Security Impact\n\n")
	sb.WriteString("The project shows crime-reduction potential:\n\n")
	sb.WriteString("| Indicator | Value |\n|-----------|-------|\n")
	fmt.Fprintf(&sb, "| Youths diverted from crime | %d |\n", crime.AvoidedInvolvement)
	fmt.Fprintf(&sb, "| Homicides avoided | %d |\n", crime.AvoidedCrimes[scoring.CrimeHomicide])
	fmt.Fprintf(&sb, "| Total crimes avoided | %d |\n", crime.TotalAvoidedCrimes())
	fmt.Fprintf(&sb, "| Incarceration savings | %s |\n", money(crime.IncarcerationSavings))
	fmt.Fprintf(&sb, "| **Total savings** | %s |\n", money(crime.TotalAvoidedCost))
	fmt.Fprintf(&sb, "| **Security ROI** | %.2f |\n\n", crime.ReturnRatio)

	return sb.String()
}

func (b *MarkdownBuilder) environmentalSection(env *scoring.EnvironmentalImpactResult) string {
	var sb strings.Builder

	sb.WriteString("### Environmental Impact\n\n")
	sb.WriteString("The project contributes to environmental recovery:\n\n")
	sb.WriteString("| Indicator | Value |\n|-----------|-------|\n")
	fmt.Fprintf(&sb, "| Hectares restored | %.2f ha |\n", env.Hectares)
	fmt.Fprintf(&sb, "| Biome | %s |\n", titleCase(env.Biome))
	fmt.Fprintf(&sb, "| CO2 sequestered | %.0f tons |\n", env.TonsCO2)
	fmt.Fprintf(&sb, "| Carbon benefits | %s |\n", money(env.CarbonValue))
	fmt.Fprintf(&sb, "| Ecosystem service payments | %s |\n", money(env.PESValue))
	fmt.Fprintf(&sb, "| **Total benefit value** | %s |\n", money(env.TotalBenefit))
	fmt.Fprintf(&sb, "| **Environmental ROI** | %.2f |\n\n", env.ReturnRatio)
	fmt.Fprintf(&sb, "**Reference:** average restoration cost in the biome: %s/ha\n\n", money(env.CostPerHectare))

	return sb.String()
}

func (b *MarkdownBuilder) finalConsiderations(result *scoring.CompositeResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "The project **%s** presents **%s**, with the potential to directly benefit %d people and indirectly %d people through the multiplier effect.\n\n",
		result.ProjectName, tierNarratives[result.Tier], result.DirectBeneficiaries, result.TotalPeopleImpact)
	fmt.Fprintf(&sb, "The investment of %s has a projected fiscal return of %s, a fiscal ROI of %.2f.\n\n",
		money(result.TotalInvestment), money(result.Fiscal.TotalReturn), result.Fiscal.ReturnRatio)
	fmt.Fprintf(&sb, "The issuance of **%d social-impact credits** is recommended, enabling impact-investor fundraising and traceability of the social value generated.\n\n",
		result.RecommendedCredits)
	sb.WriteString("This report attests the social viability of the project and its fit for financing and partnerships under the composite scoring methodology.\n\n")

	return sb.String()
}

// SummaryReport renders the one-page summary.
func (b *MarkdownBuilder) SummaryReport(result *scoring.CompositeResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# SOCIAL IMPACT SUMMARY - %s\n\n", result.ProjectName)
	sb.WriteString("## Key Indicators\n\n")
	sb.WriteString("| Metric | Value |\n|---------|-------|\n")
	fmt.Fprintf(&sb, "| Investment | %s |\n", money(result.TotalInvestment))
	fmt.Fprintf(&sb, "| Beneficiaries | %d direct / %d total |\n", result.DirectBeneficiaries, result.TotalPeopleImpact)
	fmt.Fprintf(&sb, "| SROI | %.2f |\n", result.Social.SROI)
	fmt.Fprintf(&sb, "| UISV | %.2f (%s) |\n", result.UISV, result.Tier)
	fmt.Fprintf(&sb, "| Credits | %d |\n", result.RecommendedCredits)
	fmt.Fprintf(&sb, "| Fiscal Return | %s (ROI %.2f) |\n\n", money(result.Fiscal.TotalReturn), result.Fiscal.ReturnRatio)
	sb.WriteString("## Synthesis\n\n")
	fmt.Fprintf(&sb, "The project is classified as **%s**, with an SROI of **%.2f** and a recommended issuance of **%d credits**.\n\n", result.Tier, result.Social.SROI, result.RecommendedCredits)
	fmt.Fprintf(&sb, "---\n*%s - %s*\n", b.organization, b.now().Format("2006-01-02"))

	return sb.String()
}

// Certificate renders the impact certificate document. The certificate number
// is derived from the issue timestamp when empty.
func (b *MarkdownBuilder) Certificate(result *scoring.CompositeResult, certificateNumber string) string {
	if certificateNumber == "" {
		certificateNumber = fmt.Sprintf("UISV-%s", b.now().Format("20060102150405"))
	}

	var sb strings.Builder

	sb.WriteString("# CERTIFICATE OF SOCIAL IMPACT\n\n")
	fmt.Fprintf(&sb, "**Certificate No.:** %s\n\n", certificateNumber)
	fmt.Fprintf(&sb, "We certify that the project **%s** was assessed and presents the following results:\n\n", result.ProjectName)
	sb.WriteString("| Indicator | Value |\n|-----------|-------|\n")
	fmt.Fprintf(&sb, "| UISV (Composite Social Impact Index) | %.2f |\n", result.UISV)
	fmt.Fprintf(&sb, "| SROI (Social Return on Investment) | %.2f |\n", result.Social.SROI)
	fmt.Fprintf(&sb, "| Classification | %s |\n", result.Tier)
	fmt.Fprintf(&sb, "| Recommended Credits | %d |\n\n", result.RecommendedCredits)
	fmt.Fprintf(&sb, "**Investment:** %s\n", money(result.TotalInvestment))
	fmt.Fprintf(&sb, "**Direct Beneficiaries:** %d people\n", result.DirectBeneficiaries)
	fmt.Fprintf(&sb, "**Total Impact:** %d people\n\n", result.TotalPeopleImpact)
	fmt.Fprintf(&sb, "**Issued:** %s\n", b.now().Format("2006-01-02"))
	sb.WriteString("**Validity:** 12 months\n\n")
	fmt.Fprintf(&sb, "---\n\nThis certificate attests the assessment of the project's potential social impact.\n\n*%s*\n", b.organization)

	return sb.String()
}

func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	totalCents := int64(v*100 + 0.5)
	whole := totalCents / 100
	cents := totalCents % 100

	digits := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(d)
	}
	return fmt.Sprintf("%sR$ %s.%02d", sign, grouped.String(), cents)
}

func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
