package tui

import (
	"strings"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/tui/components"
	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	minChartHeight = 6
	maxChartHeight = 16
)

func (a App) renderForecastTab(cw, h int) string {
	sliders := a.renderSliders(cw)
	metrics := a.renderMetrics(cw)

	// Chart card chrome: border, title, description, blank, axis, labels, legend.
	chartH := h - lipgloss.Height(sliders) - lipgloss.Height(metrics) - 8
	chartH = max(minChartHeight, min(chartH, maxChartHeight))

	return lipgloss.JoinVertical(lipgloss.Left, sliders, metrics, a.renderChartCard(cw, chartH))
}

func (a App) renderSliders(cw int) string {
	in := a.scenario.Inputs
	cur := a.proj.Currency

	sliders := []components.Slider{
		{
			Title:       config.SpendingRange.Label,
			Description: "Operational expenses (in hundreds)",
			Value:       cli.FormatMoney(in.Spending*100, cur),
			MinLabel:    cli.FormatMoney(config.SpendingRange.Min*100, cur),
			MaxLabel:    cli.FormatMoney(config.SpendingRange.Max*100, cur),
			Fraction:    config.SpendingRange.Fraction(in.Spending),
		},
		{
			Title:       config.PricingRange.Label,
			Description: "Revenue per unit (in thousands)",
			Value:       cli.FormatMoney(in.Pricing*1000, cur),
			MinLabel:    cli.FormatMoney(config.PricingRange.Min*1000, cur),
			MaxLabel:    cli.FormatMoney(config.PricingRange.Max*1000, cur),
			Fraction:    config.PricingRange.Fraction(in.Pricing),
		},
		{
			Title:       config.HiringRange.Label,
			Description: "Number of employees",
			Value:       cli.FormatHeadcount(in.Hiring),
			MinLabel:    cli.FormatHeadcount(config.HiringRange.Min),
			MaxLabel:    cli.FormatHeadcount(config.HiringRange.Max),
			Fraction:    config.HiringRange.Fraction(in.Hiring),
		},
	}

	widths := components.LayoutRow(cw, len(sliders))
	cards := make([]string, len(sliders))
	for i, s := range sliders {
		s.Focused = i == a.focus
		cards[i] = components.SliderCard(s, widths[i])
	}
	return components.CardRow(cards)
}

func (a App) renderMetrics(cw int) string {
	t := theme.Active
	tot := a.proj.Totals
	cur := a.proj.Currency

	return components.MetricCardRow([]components.Metric{
		{Label: "Total Revenue", Value: cli.FormatMoney(tot.TotalRevenue, cur), Note: "6-Month Forecast", Color: t.Revenue()},
		{Label: "Total Expenses", Value: cli.FormatMoney(tot.TotalExpenses, cur), Note: "6-Month Forecast", Color: t.Expense()},
		{Label: "Net Profit", Value: cli.FormatMoney(tot.TotalProfit, cur), Note: "6-Month Forecast", Color: t.Signed(tot.TotalProfit)},
		{Label: "Profit Margin", Value: cli.FormatPercent(tot.ProfitMargin), Note: marginNote(tot.ProfitMargin), Color: t.Margin(tot.ProfitMargin)},
	}, cw)
}

func marginNote(pct float64) string {
	switch {
	case pct >= 20:
		return "Healthy"
	case pct >= 10:
		return "Fair"
	default:
		return "Low"
	}
}

// chartSeries returns the converted revenue, expense and profit series.
func (a App) chartSeries() []components.Series {
	t := theme.Active
	recs := a.proj.Converted()

	rev := make([]float64, len(recs))
	exp := make([]float64, len(recs))
	prof := make([]float64, len(recs))
	for i, r := range recs {
		rev[i], exp[i], prof[i] = r.Revenue, r.Expenses, r.Profit
	}
	return []components.Series{
		{Name: "Revenue", Values: rev, Color: t.Revenue()},
		{Name: "Expenses", Values: exp, Color: t.Expense()},
		{Name: "Profit", Values: prof, Color: t.Profit(), Negative: t.Loss()},
	}
}

func (a App) renderChartCard(cw, chartH int) string {
	t := theme.Active
	kind := a.scenario.Chart
	series := a.chartSeries()
	inner := components.CardInnerWidth(cw)

	opts := components.ChartOptions{
		Labels: monthNames(a.proj.Schedule),
		Symbol: a.proj.Currency.Symbol,
		Width:  inner,
		Height: chartH,
	}

	var chart, legend string
	switch kind {
	case model.ChartLine:
		chart = components.LineChart(series, opts)
	case model.ChartArea:
		chart = components.AreaChart(series[:2], opts)
	case model.ChartPie:
		chart = components.ShareChart(a.shareSlices(), inner, max(chartH/2, 2))
	case model.ChartComposed:
		chart = components.ComposedChart(series[:2], series[2], opts)
	default:
		chart = components.BarChart(series, opts)
	}
	if kind == model.ChartPie {
		legend = components.Legend(series[:2])
	} else {
		legend = components.Legend(series)
	}

	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(descStyle.Render("Revenue vs Expenses over 6 months in " + a.proj.Currency.Code))
	b.WriteString("\n\n")
	b.WriteString(chart)
	b.WriteString("\n")
	b.WriteString(legend)
	b.WriteString(hintStyle.Render("   [1-5] chart  [c] currency  [e] export"))

	return components.ContentCard("Monthly Financial Projection - "+kind.Name(), b.String(), cw)
}

// shareSlices returns converted revenue and expense totals as pie slices.
func (a App) shareSlices() []components.Series {
	t := theme.Active
	tot := a.proj.ConvertedTotals()
	return []components.Series{
		{Name: "Revenue", Values: []float64{tot.TotalRevenue}, Color: t.Revenue()},
		{Name: "Expenses", Values: []float64{tot.TotalExpenses}, Color: t.Expense()},
	}
}

func monthNames(recs []model.MonthlyRecord) []string {
	names := make([]string, len(recs))
	for i, r := range recs {
		names[i] = r.Month
	}
	return names
}
