package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/cfohelper/internal/forecast"
)

const (
	scenarioSheet = "Scenario"
	monthlySheet  = "Monthly"
)

// Workbook renders r as a two-sheet workbook. The Monthly sheet carries the
// converted numeric values from p next to the formatted strings.
// The caller owns the returned file and must Close it.
func Workbook(r Report, p forecast.Projection) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", scenarioSheet); err != nil {
		_ = wb.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := wb.NewSheet(monthlySheet); err != nil {
		_ = wb.Close()
		return nil, fmt.Errorf("adding sheet: %w", err)
	}

	if err := writeScenarioSheet(wb, r); err != nil {
		_ = wb.Close()
		return nil, err
	}
	if err := writeMonthlySheet(wb, r, p); err != nil {
		_ = wb.Close()
		return nil, err
	}
	return wb, nil
}

func writeScenarioSheet(wb *excelize.File, r Report) error {
	rows := [][]any{
		{"Field", "Value"},
		{"Monthly Spending", r.Scenario.Spending},
		{"Pricing Strategy", r.Scenario.Pricing},
		{"Team Size", r.Scenario.Hiring},
		{"Currency", r.Scenario.Currency},
		{"Chart", r.ChartType.Name()},
		{"Total Revenue", r.Forecast.TotalRevenue},
		{"Total Expenses", r.Forecast.TotalExpenses},
		{"Net Profit", r.Forecast.TotalProfit},
		{"Profit Margin (%)", r.Forecast.ProfitMargin},
		{"Generated At", r.GeneratedAt},
	}
	if err := setRows(wb, scenarioSheet, rows); err != nil {
		return err
	}
	if err := wb.SetColWidth(scenarioSheet, "A", "B", 22); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return boldHeader(wb, scenarioSheet, "B1")
}

func writeMonthlySheet(wb *excelize.File, r Report, p forecast.Projection) error {
	rows := [][]any{
		{"Month", "Revenue", "Expenses", "Profit", "Revenue (formatted)", "Expenses (formatted)", "Profit (formatted)"},
	}
	for i, m := range p.Converted() {
		f := r.MonthlyBreakdown[i]
		rows = append(rows, []any{m.Month, m.Revenue, m.Expenses, m.Profit, f.Revenue, f.Expenses, f.Profit})
	}
	if err := setRows(wb, monthlySheet, rows); err != nil {
		return err
	}

	numFmt := fmt.Sprintf("\"%s\"#,##0;\"%s\"-#,##0", p.Currency.Symbol, p.Currency.Symbol)
	style, err := wb.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(4, len(rows))
	if err != nil {
		return fmt.Errorf("resolving range: %w", err)
	}
	if err := wb.SetCellStyle(monthlySheet, "B2", last, style); err != nil {
		return fmt.Errorf("styling money cells: %w", err)
	}
	if err := wb.SetColWidth(monthlySheet, "A", "G", 18); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return boldHeader(wb, monthlySheet, "G1")
}

func setRows(wb *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("resolving cell: %w", err)
		}
		if err := wb.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func boldHeader(wb *excelize.File, sheet, lastCell string) error {
	style, err := wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := wb.SetCellStyle(sheet, "A1", lastCell, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	return nil
}

// WriteXLSX writes the workbook for r into dir and returns the file path.
func WriteXLSX(dir string, r Report, p forecast.Projection) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	wb, err := Workbook(r, p)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	path := filepath.Join(dir, FileName(r.Generated(), "xlsx"))
	if err := wb.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook: %w", err)
	}
	return path, nil
}

// Write dispatches to WriteJSON or WriteXLSX by format ("json" or "xlsx").
func Write(dir, format string, r Report, p forecast.Projection) (string, error) {
	switch format {
	case "xlsx":
		return WriteXLSX(dir, r, p)
	case "json", "":
		return WriteJSON(dir, r)
	default:
		return "", fmt.Errorf("unsupported export format %q", format)
	}
}
