package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// PortfolioEntry is one row of the portfolio export: the newest assessment of
// one project.
type PortfolioEntry struct {
	ProjectName   string    `json:"project_name"`
	ProjectType   string    `json:"project_type"`
	Investment    float64   `json:"investment"`
	Beneficiaries int       `json:"beneficiaries"`
	SROI          float64   `json:"sroi"`
	FiscalROI     float64   `json:"fiscal_roi"`
	UISV          float64   `json:"uisv"`
	Tier          string    `json:"tier"`
	Credits       int       `json:"credits"`
	AssessedAt    time.Time `json:"assessed_at"`
}

// ExcelOptions configures the portfolio workbook
type ExcelOptions struct {
	SheetName    string `json:"sheet_name"`
	FreezeHeader bool   `json:"freeze_header"`
	AutoFilter   bool   `json:"auto_filter"`
	HeaderFill   string `json:"header_fill"`
	HeaderFont   string `json:"header_font"`
}

// DefaultExcelOptions returns default portfolio export options
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{
		SheetName:    "Portfolio",
		FreezeHeader: true,
		AutoFilter:   true,
		HeaderFill:   "2E5E4E",
		HeaderFont:   "FFFFFF",
	}
}

// ExcelExporter writes portfolio workbooks.
type ExcelExporter struct {
	options ExcelOptions
}

func NewExcelExporter(options ExcelOptions) *ExcelExporter {
	return &ExcelExporter{options: options}
}

var portfolioColumns = []string{
	"Project", "Type", "Investment", "Beneficiaries",
	"SROI", "Fiscal ROI", "UISV", "Tier", "Credits", "Assessed At",
}

// Export writes one workbook with a portfolio sheet and a tier summary sheet.
func (e *ExcelExporter) Export(entries []PortfolioEntry, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := e.options.SheetName
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: e.options.HeaderFont},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{e.options.HeaderFill}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	numberFormat := "#,##0.00"
	numberStyle, err := file.NewStyle(&excelize.Style{CustomNumFmt: &numberFormat})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}

	for i, col := range portfolioColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
		file.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for i, entry := range entries {
		row := i + 2
		values := []interface{}{
			entry.ProjectName,
			entry.ProjectType,
			entry.Investment,
			entry.Beneficiaries,
			entry.SROI,
			entry.FiscalROI,
			entry.UISV,
			entry.Tier,
			entry.Credits,
			entry.AssessedAt.Format("2006-01-02"),
		}
		for j, val := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := file.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			if _, isFloat := val.(float64); isFloat {
				file.SetCellStyle(sheet, cell, cell, numberStyle)
			}
		}
	}

	if e.options.FreezeHeader {
		file.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}
	if e.options.AutoFilter && len(entries) > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(portfolioColumns), len(entries)+1)
		file.AutoFilter(sheet, "A1:"+lastCell, nil)
	}

	file.SetColWidth(sheet, "A", "A", 32)
	file.SetColWidth(sheet, "B", "J", 14)

	if err := e.addTierSummary(file, headerStyle, entries); err != nil {
		return err
	}

	return file.Write(w)
}

// addTierSummary aggregates the portfolio per tier on a second sheet.
func (e *ExcelExporter) addTierSummary(file *excelize.File, headerStyle int, entries []PortfolioEntry) error {
	const sheet = "Tier Summary"
	if _, err := file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	type aggregate struct {
		count      int
		investment float64
		credits    int
	}
	tiers := map[string]*aggregate{}
	for _, entry := range entries {
		agg := tiers[entry.Tier]
		if agg == nil {
			agg = &aggregate{}
			tiers[entry.Tier] = agg
		}
		agg.count++
		agg.investment += entry.Investment
		agg.credits += entry.Credits
	}

	headers := []string{"Tier", "Projects", "Total Investment", "Total Credits"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, h)
		file.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	for _, tier := range []string{"A", "B", "C", "D"} {
		agg := tiers[tier]
		if agg == nil {
			continue
		}
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), tier)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), agg.count)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), agg.investment)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), agg.credits)
		row++
	}

	file.SetColWidth(sheet, "A", "D", 18)
	return nil
}
