package components

import (
	"fmt"

	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is the right-hand side of the status bar.
type StatusInfo struct {
	Currency  string
	Chart     string
	Scenarios int64
	Exports   int64
}

// Flash is a transient status bar message.
type Flash struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom status bar. A non-empty flash replaces
// the key hints on the left.
func RenderStatusBar(width int, info StatusInfo, flash Flash) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	left := hintStyle.Render(" [?]help  [e]xport  [q]uit")
	switch {
	case flash.Text != "" && flash.Error:
		left = lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Render(" ✗ " + flash.Text)
	case flash.Text != "":
		left = lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render(" ✓ " + flash.Text)
	}

	right := accentStyle.Render(info.Currency) +
		hintStyle.Render(" │ ") +
		hintStyle.Render(info.Chart) +
		hintStyle.Render(fmt.Sprintf(" │ %d scenarios │ %d exports ", info.Scenarios, info.Exports))

	padding := max(0, width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + barStyle.Render(fmt.Sprintf("%*s", padding, "")) + right
}
