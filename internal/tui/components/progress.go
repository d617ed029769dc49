package components

import (
	"fmt"

	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// MarginBar renders a profit margin gauge colored by the margin thresholds.
// Negative margins render an empty bar.
func MarginBar(pct float64, width int) string {
	t := theme.Active
	color := t.Margin(pct)

	frac := max(0, min(pct/100, 1))
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(max(width-7, 4)),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return bar.ViewAs(frac) + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%5.1f%%", pct))
}

// ShareBar renders part/total as a labeled bar, for usage breakdowns.
func ShareBar(label string, part, total float64, labelW, barWidth int, color lipgloss.Color) string {
	t := theme.Active

	frac := 0.0
	if total > 0 {
		frac = max(0, min(part/total, 1))
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(frac) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", frac*100))
}
