package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"impact-ledger/impact-portal-backend/internal/scoring"
)

// PDFColor represents an RGB color
type PDFColor struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// PDFOptions configures assessment PDF rendering
type PDFOptions struct {
	Title          string   `json:"title"`
	Organization   string   `json:"organization"`
	DateFormat     string   `json:"date_format"`
	HeaderColor    PDFColor `json:"header_color"`
	AlternateColor PDFColor `json:"alternate_color"`
	FontFamily     string   `json:"font_family"`
	FontSize       float64  `json:"font_size"`
	TitleFontSize  float64  `json:"title_font_size"`
}

// DefaultPDFOptions returns default PDF options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Title:          "Social Impact Assessment",
		Organization:   "Impact Ledger",
		DateFormat:     "2006-01-02",
		HeaderColor:    PDFColor{R: 46, G: 94, B: 78},
		AlternateColor: PDFColor{R: 242, G: 242, B: 242},
		FontFamily:     "Arial",
		FontSize:       10,
		TitleFontSize:  16,
	}
}

// PDFGenerator renders assessment results as PDF documents.
type PDFGenerator struct {
	options PDFOptions
	now     func() time.Time
}

// NewPDFGenerator creates a new assessment PDF generator
func NewPDFGenerator(options PDFOptions) *PDFGenerator {
	return &PDFGenerator{
		options: options,
		now:     time.Now,
	}
}

// Render writes the assessment PDF for one scored project to w.
func (g *PDFGenerator) Render(result *scoring.CompositeResult, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.options.FontFamily, "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("%s - page %d", g.options.Organization, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	g.addTitle(pdf, result.ProjectName)

	g.addSection(pdf, "Executive Summary")
	payback := "not defined"
	if result.Fiscal.PaybackYears != nil {
		payback = fmt.Sprintf("%.1f years", *result.Fiscal.PaybackYears)
	}
	g.addIndicatorTable(pdf, [][2]string{
		{"Total Investment", money(result.TotalInvestment)},
		{"Direct Beneficiaries", fmt.Sprintf("%d people", result.DirectBeneficiaries)},
		{"Total Impact (multiplier)", fmt.Sprintf("%d people", result.TotalPeopleImpact)},
		{"SROI", fmt.Sprintf("%.2f", result.Social.SROI)},
		{"UISV", fmt.Sprintf("%.2f", result.UISV)},
		{"Recommended Credits", fmt.Sprintf("%d", result.RecommendedCredits)},
		{"Classification", fmt.Sprintf("%s (%s)", result.Tier, result.Tier.Label())},
	})

	g.addSection(pdf, "Fiscal Impact")
	g.addIndicatorTable(pdf, [][2]string{
		{"Tax revenue generated", money(result.Fiscal.RevenueGenerated)},
		{"Social program savings", money(result.Fiscal.SocialProgramSavings)},
		{"Public security savings", money(result.Fiscal.SecuritySavings)},
		{"Health savings", money(result.Fiscal.HealthSavings)},
		{"Total fiscal return", money(result.Fiscal.TotalReturn)},
		{"Fiscal ROI", fmt.Sprintf("%.2f", result.Fiscal.ReturnRatio)},
		{"Payback", payback},
	})

	if result.Crime != nil {
		g.addSection(pdf, "Public Security Impact")
		g.addIndicatorTable(pdf, [][2]string{
			{"Youths diverted from crime", fmt.Sprintf("%d", result.Crime.AvoidedInvolvement)},
			{"Total crimes avoided", fmt.Sprintf("%d", result.Crime.TotalAvoidedCrimes())},
			{"Incarceration savings", money(result.Crime.IncarcerationSavings)},
			{"Total savings", money(result.Crime.TotalAvoidedCost)},
			{"Security ROI", fmt.Sprintf("%.2f", result.Crime.ReturnRatio)},
		})
	}

	if result.Environmental != nil {
		g.addSection(pdf, "Environmental Impact")
		g.addIndicatorTable(pdf, [][2]string{
			{"Hectares restored", fmt.Sprintf("%.2f ha", result.Environmental.Hectares)},
			{"Biome", titleCase(result.Environmental.Biome)},
			{"CO2 sequestered", fmt.Sprintf("%.0f tons", result.Environmental.TonsCO2)},
			{"Carbon benefits", money(result.Environmental.CarbonValue)},
			{"Ecosystem service payments", money(result.Environmental.PESValue)},
			{"Total benefit value", money(result.Environmental.TotalBenefit)},
			{"Environmental ROI", fmt.Sprintf("%.2f", result.Environmental.ReturnRatio)},
		})
	}

	g.addSection(pdf, "Recommendations")
	pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
	pdf.SetTextColor(0, 0, 0)
	for i, rec := range result.Recommendations {
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, rec.Message), "", "L", false)
		pdf.Ln(1)
	}

	pdf.Ln(6)
	pdf.SetFont(g.options.FontFamily, "I", g.options.FontSize-1)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, fmt.Sprintf("Reference data version %s. Generated %s by %s.",
		result.ReferenceVersion, g.now().Format(g.options.DateFormat), g.options.Organization), "", "L", false)

	return pdf.Output(w)
}

func (g *PDFGenerator) addTitle(pdf *gofpdf.Fpdf, projectName string) {
	pdf.SetFont(g.options.FontFamily, "B", g.options.TitleFontSize)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, g.options.Title, "", 1, "C", false, 0, "")

	pdf.SetFont(g.options.FontFamily, "", g.options.FontSize+2)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, projectName, "", 1, "C", false, 0, "")

	pdf.SetFont(g.options.FontFamily, "", g.options.FontSize-1)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", g.now().Format(g.options.DateFormat)), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (g *PDFGenerator) addSection(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont(g.options.FontFamily, "B", g.options.FontSize+2)
	pdf.SetTextColor(g.options.HeaderColor.R, g.options.HeaderColor.G, g.options.HeaderColor.B)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func (g *PDFGenerator) addIndicatorTable(pdf *gofpdf.Fpdf, rows [][2]string) {
	pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
	pdf.SetTextColor(0, 0, 0)

	for i, row := range rows {
		if i%2 == 1 {
			pdf.SetFillColor(g.options.AlternateColor.R, g.options.AlternateColor.G, g.options.AlternateColor.B)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetFont(g.options.FontFamily, "B", g.options.FontSize)
		pdf.CellFormat(80, 7, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont(g.options.FontFamily, "", g.options.FontSize)
		pdf.CellFormat(100, 7, row[1], "1", 1, "L", true, 0, "")
	}
}
