package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/tui/components"
	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// monthMargin is the profit margin of a single month, 0 without revenue.
func monthMargin(r model.MonthlyRecord) float64 {
	if r.Revenue == 0 {
		return 0
	}
	return r.Profit / r.Revenue * 100
}

func (a App) renderScheduleTable(cw int) string {
	t := theme.Active
	cur := a.proj.Currency
	innerW := components.CardInnerWidth(cw)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	monthStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)
	revStyle := lipgloss.NewStyle().Foreground(t.Revenue()).Background(t.Surface)
	expStyle := lipgloss.NewStyle().Foreground(t.Expense()).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	monthW := 6
	marginW := 8
	moneyW := max((innerW-monthW-marginW-4)/3, 12)
	if moneyW > 18 {
		moneyW = 18
	}
	showMargin := !a.isCompactLayout()
	lineW := monthW + 3*(moneyW+1)
	if showMargin {
		lineW += marginW + 1
	}

	// Money columns are padded by display width so wide symbols stay aligned.
	cell := func(s string, style lipgloss.Style) string {
		return space.Render(" ") + style.Render(padLeftW(s, moneyW))
	}

	var b strings.Builder
	header := fmt.Sprintf("%-*s %*s %*s %*s", monthW, "Month", moneyW, "Revenue", moneyW, "Expenses", moneyW, "Profit")
	if showMargin {
		header += fmt.Sprintf(" %*s", marginW, "Margin")
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", lineW)))
	b.WriteString("\n")

	for _, r := range a.proj.Schedule {
		b.WriteString(monthStyle.Render(fmt.Sprintf("%-*s", monthW, r.Month)))
		b.WriteString(cell(cli.FormatMoney(r.Revenue, cur), revStyle))
		b.WriteString(cell(cli.FormatMoney(r.Expenses, cur), expStyle))
		b.WriteString(cell(cli.FormatMoney(r.Profit, cur), lipgloss.NewStyle().Foreground(t.Signed(r.Profit)).Background(t.Surface)))
		if showMargin {
			m := monthMargin(r)
			b.WriteString(space.Render(" "))
			b.WriteString(lipgloss.NewStyle().Foreground(t.Margin(m)).Background(t.Surface).
				Render(fmt.Sprintf("%*s", marginW, cli.FormatPercent(m))))
		}
		b.WriteString("\n")
	}

	tot := a.proj.Totals
	bold := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	b.WriteString(mutedStyle.Render(strings.Repeat("─", lineW)))
	b.WriteString("\n")
	b.WriteString(bold.Render(fmt.Sprintf("%-*s", monthW, "Total")))
	b.WriteString(cell(cli.FormatMoney(tot.TotalRevenue, cur), bold))
	b.WriteString(cell(cli.FormatMoney(tot.TotalExpenses, cur), bold))
	b.WriteString(cell(cli.FormatMoney(tot.TotalProfit, cur), bold))
	if showMargin {
		b.WriteString(space.Render(" "))
		b.WriteString(bold.Render(fmt.Sprintf("%*s", marginW, cli.FormatPercent(tot.ProfitMargin))))
	}

	return components.ContentCard("Monthly Breakdown ("+cur.Code+")", b.String(), cw)
}

func (a App) renderTrendCard(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, s := range a.chartSeries() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", s.Name)))
		b.WriteString(components.Sparkline(s.Values, s.Color))
		first, last := s.Values[0], s.Values[len(s.Values)-1]
		b.WriteString(space.Render("  "))
		b.WriteString(labelStyle.Render(cli.FormatCompact(first, a.proj.Currency.Symbol) + " → " +
			cli.FormatCompact(last, a.proj.Currency.Symbol)))
	}
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", "Margin")))
	b.WriteString(components.MarginBar(a.proj.Totals.ProfitMargin, min(40, components.CardInnerWidth(cw)-10)))

	return components.ContentCard("Trend", b.String(), cw)
}

func (a App) renderBreakdownTab(cw int) string {
	var b strings.Builder
	b.WriteString(a.renderScheduleTable(cw))
	b.WriteString("\n")
	b.WriteString(a.renderTrendCard(cw))
	return b.String()
}

func padLeftW(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}
