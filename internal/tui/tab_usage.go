package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/tui/components"
	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// badge renders a small status pill such as "Ready".
func badge(text string, color lipgloss.Color) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.Background).Background(color).Bold(true).Padding(0, 1).Render(text)
}

func (a App) renderIntegrationCard(cw int) string {
	t := theme.Active
	u := a.usage

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	lineStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(descStyle.Render("Real-time data and billing integration"))
	b.WriteString("\n\n")

	b.WriteString(nameStyle.Render("Flexprice Billing") + space.Render(" ") + badge("Ready", t.Green))
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(fmt.Sprintf("  %s billed for %d scenarios", cli.FormatUSD(u.ScenarioBilledUSD()), u.Scenarios)))
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(fmt.Sprintf("  %s billed for %d exports", cli.FormatUSD(u.ExportBilledUSD()), u.Exports)))
	b.WriteString("\n\n")

	b.WriteString(nameStyle.Render("Pathway Data") + space.Render(" ") + badge("Simulated", t.Yellow))
	b.WriteString("\n")
	b.WriteString(lineStyle.Render("  Mock financial data updated"))
	b.WriteString("\n")
	b.WriteString(lineStyle.Render("  Real-time expense tracking ready"))

	return components.ContentCard("Integration Status", b.String(), cw)
}

func (a App) renderBillingCard(cw int) string {
	t := theme.Active
	u := a.usage

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	barW := max(10, min(40, components.CardInnerWidth(cw)-20))
	total := u.TotalBilledUSD()

	var b strings.Builder
	b.WriteString(components.ShareBar("Scenarios", u.ScenarioBilledUSD(), total, 10, barW, t.Blue))
	b.WriteString("\n")
	b.WriteString(components.ShareBar("Exports", u.ExportBilledUSD(), total, 10, barW, t.Magenta))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Total billed:  ") + valueStyle.Render(cli.FormatUSD(total)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Rates:         %s / scenario, %s / export",
		cli.FormatUSD(u.ScenarioRateUSD), cli.FormatUSD(u.ExportRateUSD))))

	meter := "in memory (metering disabled)"
	if a.meter != nil {
		meter = "persistent"
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Usage meter:   " + meter))

	return components.ContentCard("Mocked Billing", b.String(), cw)
}

func (a App) renderUsageTab(cw int) string {
	t := theme.Active

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Scenarios (session)", Value: cli.FormatNumber(a.scenarios), Note: "scenarios tested"},
		{Label: "Exports (session)", Value: cli.FormatNumber(a.exports), Note: "reports exported"},
		{Label: "Scenarios (all time)", Value: cli.FormatNumber(a.usage.Scenarios), Color: t.Blue},
		{Label: "Exports (all time)", Value: cli.FormatNumber(a.usage.Exports), Color: t.Magenta},
	}, cw)

	var b strings.Builder
	b.WriteString(metrics)
	b.WriteString("\n")
	if a.isCompactLayout() {
		b.WriteString(a.renderIntegrationCard(cw))
		b.WriteString("\n")
		b.WriteString(a.renderBillingCard(cw))
		return b.String()
	}

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		a.renderIntegrationCard(widths[0]),
		a.renderBillingCard(widths[1]),
	}))
	return b.String()
}
