package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cfohelper/internal/tui/theme"
)

func TestTabAtX(t *testing.T) {
	// " Forecast  B[b]..." with Forecast active
	if got := TabAtX(0, 0); got != -1 {
		t.Errorf("TabAtX(0) = %d, want -1", got)
	}
	if got := TabAtX(1, 0); got != 0 {
		t.Errorf("TabAtX(1) = %d, want 0", got)
	}
	second := 1 + TabVisualWidth(Tabs[0], true) + len(tabSeparator)
	if got := TabAtX(second, 0); got != 1 {
		t.Errorf("TabAtX(%d) = %d, want 1", second, got)
	}
	if got := TabAtX(second-1, 0); got != -1 {
		t.Errorf("separator column should hit no tab, got %d", got)
	}
}

func TestTabBarWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")
	for i := range Tabs {
		bar := RenderTabBar(i, 80)
		if w := lipgloss.Width(bar); w != 80 {
			t.Errorf("tab bar width with tab %d active = %d, want 80", i, w)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if TabIdxByKey('u') != 2 {
		t.Error("u should select Usage")
	}
	if TabIdxByKey('z') != -1 {
		t.Error("unknown key should return -1")
	}
}

func TestSliderTrackWidth(t *testing.T) {
	for _, frac := range []float64{-1, 0, 0.5, 1, 2} {
		if w := lipgloss.Width(SliderTrack(frac, 20, true)); w != 20 {
			t.Errorf("SliderTrack(%v) width = %d, want 20", frac, w)
		}
	}
}

func TestSliderCardContent(t *testing.T) {
	theme.SetActive("flexoki-dark")
	card := SliderCard(Slider{
		Title:       "Team Size",
		Description: "Number of employees",
		Value:       "25 people",
		MinLabel:    "1 person",
		MaxLabel:    "200 people",
		Fraction:    0.12,
		Focused:     true,
	}, 40)

	for _, want := range []string{"Team Size", "25 people", "1 person", "200 people"} {
		if !strings.Contains(card, want) {
			t.Errorf("slider card missing %q", want)
		}
	}
	if w := lipgloss.Width(card); w != 40 {
		t.Errorf("slider card width = %d, want 40", w)
	}
}

func TestStatusBar(t *testing.T) {
	theme.SetActive("flexoki-dark")
	info := StatusInfo{Currency: "EUR", Chart: "Bar Chart", Scenarios: 3, Exports: 1}

	bar := RenderStatusBar(100, info, Flash{})
	if w := lipgloss.Width(bar); w != 100 {
		t.Errorf("status bar width = %d, want 100", w)
	}
	if !strings.Contains(bar, "3 scenarios") || !strings.Contains(bar, "EUR") {
		t.Errorf("status bar missing counters: %q", bar)
	}

	bar = RenderStatusBar(100, info, Flash{Text: "Report Exported"})
	if !strings.Contains(bar, "Report Exported") {
		t.Error("flash message not shown")
	}
}

func TestMarginBarLabel(t *testing.T) {
	theme.SetActive("flexoki-dark")
	if out := MarginBar(48.28, 30); !strings.Contains(out, "48.3%") {
		t.Errorf("margin bar missing label: %q", out)
	}
}
