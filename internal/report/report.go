// Package report builds the scenario export document and writes it as JSON or XLSX.
package report

import (
	"fmt"
	"time"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
)

// Report is the export artifact. Money fields are formatted in the scenario currency.
type Report struct {
	Scenario         ScenarioSection `json:"scenario"`
	Forecast         ForecastSection `json:"forecast"`
	MonthlyBreakdown []MonthRow      `json:"monthlyBreakdown"`
	ChartType        model.ChartKind `json:"chartType"`
	GeneratedAt      string          `json:"generatedAt"`

	generated time.Time
}

// ScenarioSection echoes the raw slider inputs and currency code.
type ScenarioSection struct {
	Spending float64 `json:"spending"`
	Pricing  float64 `json:"pricing"`
	Hiring   float64 `json:"hiring"`
	Currency string  `json:"currency"`
}

// ForecastSection holds the formatted aggregate totals.
type ForecastSection struct {
	TotalRevenue  string `json:"totalRevenue"`
	TotalExpenses string `json:"totalExpenses"`
	TotalProfit   string `json:"totalProfit"`
	ProfitMargin  string `json:"profitMargin"`
}

// MonthRow is one formatted month of the breakdown.
type MonthRow struct {
	Month    string `json:"month"`
	Revenue  string `json:"revenue"`
	Expenses string `json:"expenses"`
	Profit   string `json:"profit"`
}

// timestampLayout is ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Build assembles the export document for a projection.
func Build(p forecast.Projection, chart model.ChartKind, at time.Time) Report {
	cur := p.Currency
	in := p.Scenario.Inputs

	r := Report{
		Scenario: ScenarioSection{
			Spending: in.Spending,
			Pricing:  in.Pricing,
			Hiring:   in.Hiring,
			Currency: cur.Code,
		},
		Forecast: ForecastSection{
			TotalRevenue:  cli.FormatMoney(p.Totals.TotalRevenue, cur),
			TotalExpenses: cli.FormatMoney(p.Totals.TotalExpenses, cur),
			TotalProfit:   cli.FormatMoney(p.Totals.TotalProfit, cur),
			ProfitMargin:  cli.FormatMargin(p.Totals.ProfitMargin),
		},
		MonthlyBreakdown: make([]MonthRow, len(p.Schedule)),
		ChartType:        chart,
		GeneratedAt:      at.UTC().Format(timestampLayout),
		generated:        at,
	}
	for i, m := range p.Schedule {
		r.MonthlyBreakdown[i] = MonthRow{
			Month:    m.Month,
			Revenue:  cli.FormatMoney(m.Revenue, cur),
			Expenses: cli.FormatMoney(m.Expenses, cur),
			Profit:   cli.FormatMoney(m.Profit, cur),
		}
	}
	return r
}

// Generated returns the time the report was built.
func (r Report) Generated() time.Time {
	return r.generated
}

// FileName returns the download name for a report generated at the given time,
// e.g. "budget-scenario-1718000000000.json".
func FileName(at time.Time, ext string) string {
	return fmt.Sprintf("budget-scenario-%d.%s", at.UnixMilli(), ext)
}
