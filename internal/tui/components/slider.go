package components

import (
	"strings"

	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Slider describes one slider card.
type Slider struct {
	Title       string
	Description string
	Value       string
	MinLabel    string
	MaxLabel    string
	Fraction    float64 // thumb position in [0, 1]
	Focused     bool
}

// SliderTrack renders a horizontal track of the given width with the thumb at frac.
func SliderTrack(frac float64, width int, focused bool) string {
	t := theme.Active
	if width < 3 {
		width = 3
	}
	frac = max(0, min(frac, 1))
	pos := int(frac*float64(width-1) + 0.5)

	fillColor := t.TextMuted
	if focused {
		fillColor = t.Accent
	}
	filled := lipgloss.NewStyle().Foreground(fillColor).Background(t.Surface)
	empty := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	thumb := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	return filled.Render(strings.Repeat("━", pos)) +
		thumb.Render("●") +
		empty.Render(strings.Repeat("─", width-pos-1))
}

// SliderCard renders a slider with its title, value, track and range labels.
func SliderCard(s Slider, outerWidth int) string {
	t := theme.Active
	inner := CardInnerWidth(outerWidth)

	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	rangeStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(descStyle.Render(s.Description))
	b.WriteString("\n\n")
	b.WriteString(valueStyle.Render(s.Value))
	b.WriteString("\n")
	b.WriteString(SliderTrack(s.Fraction, inner, s.Focused))
	b.WriteString("\n")

	gap := max(1, inner-lipgloss.Width(s.MinLabel)-lipgloss.Width(s.MaxLabel))
	b.WriteString(rangeStyle.Render(s.MinLabel + strings.Repeat(" ", gap) + s.MaxLabel))

	if s.Focused {
		return FocusedCard(s.Title, b.String(), outerWidth)
	}
	return ContentCard(s.Title, b.String(), outerWidth)
}
