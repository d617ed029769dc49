package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/cfohelper/internal/tui/theme"
)

var (
	monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}
	revenue     = []float64{240000, 270000, 300000, 330000, 360000, 390000}
	expenses    = []float64{140000, 152500, 165000, 165000, 177500, 177500}
	profit      = []float64{100000, 117500, 135000, 165000, 182500, 212500}
)

func testSeries() []Series {
	t := theme.Active
	return []Series{
		{Name: "Revenue", Values: revenue, Color: t.Revenue()},
		{Name: "Expenses", Values: expenses, Color: t.Expense()},
		{Name: "Profit", Values: profit, Color: t.Profit(), Negative: t.Loss()},
	}
}

func TestChartLabel(t *testing.T) {
	tests := []struct {
		symbol string
		v      float64
		want   string
	}{
		{"$", 0, "0"},
		{"$", 400000, "$400k"},
		{"$", 1.5e6, "$1.5M"},
		{"€", -200000, "-€200k"},
		{"$", 2.5e9, "$2.5B"},
		{"$", 50, "$50"},
	}
	for _, tt := range tests {
		if got := chartLabel(tt.symbol, tt.v); got != tt.want {
			t.Errorf("chartLabel(%q, %v) = %q, want %q", tt.symbol, tt.v, got, tt.want)
		}
	}
}

func TestAxisBounds(t *testing.T) {
	top, bottom := axisBounds(0, 390000)
	if top != 400000 || bottom != 0 {
		t.Errorf("axisBounds(0, 390000) = %v, %v", top, bottom)
	}

	top, bottom = axisBounds(-50000, 300000)
	if top != 300000 || bottom != -50000 {
		t.Errorf("axisBounds(-50000, 300000) = %v, %v", top, bottom)
	}

	top, bottom = axisBounds(0, 0)
	if top != 1 || bottom != 0 {
		t.Errorf("axisBounds(0, 0) = %v, %v", top, bottom)
	}
}

func TestBarChartShape(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := BarChart(testSeries(), ChartOptions{Labels: monthLabels, Symbol: "$", Width: 80, Height: 8})
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 8 plot rows + axis + labels", len(lines))
	}

	w := lipgloss.Width(lines[0])
	for i, line := range lines[:9] {
		if lipgloss.Width(line) != w {
			t.Errorf("line %d width = %d, want %d", i, lipgloss.Width(line), w)
		}
	}
	if w > 80 {
		t.Errorf("chart width %d exceeds 80", w)
	}
	if !strings.Contains(out, "$400k") {
		t.Error("missing top axis label $400k")
	}
	for _, m := range monthLabels {
		if !strings.Contains(lines[9], m) {
			t.Errorf("x labels missing %s", m)
		}
	}
}

func TestBarChartNegativeZeroLine(t *testing.T) {
	theme.SetActive("flexoki-dark")

	s := []Series{{Name: "Profit", Values: []float64{300000, -50000}, Color: theme.Active.Profit()}}
	out := BarChart(s, ChartOptions{Labels: []string{"Jan", "Feb"}, Symbol: "$", Width: 40, Height: 8})
	if !strings.Contains(out, "0┤") {
		t.Error("expected a labeled zero line for negative values")
	}
	if !strings.Contains(out, "-$50k") {
		t.Error("expected the bottom label -$50k")
	}
}

func TestChartKindsRender(t *testing.T) {
	theme.SetActive("flexoki-dark")
	o := ChartOptions{Labels: monthLabels, Symbol: "€", Width: 90, Height: 10}
	s := testSeries()

	for name, out := range map[string]string{
		"line":     LineChart(s, o),
		"area":     AreaChart(s[:2], o),
		"composed": ComposedChart(s[:2], s[2], o),
	} {
		if out == "" {
			t.Errorf("%s chart is empty", name)
			continue
		}
		if !strings.Contains(out, "Jun") {
			t.Errorf("%s chart missing x labels", name)
		}
	}
}

func TestChartEmpty(t *testing.T) {
	if BarChart(nil, ChartOptions{}) != "" {
		t.Error("bar chart of nothing should be empty")
	}
	if ShareChart(nil, 40, 2) != "" {
		t.Error("share chart of nothing should be empty")
	}
}

func TestShareChartPercentages(t *testing.T) {
	theme.SetActive("flexoki-dark")

	out := ShareChart([]Series{
		{Name: "Revenue", Values: []float64{1890000}, Color: theme.Active.Revenue()},
		{Name: "Expenses", Values: []float64{977500}, Color: theme.Active.Expense()},
	}, 50, 2)

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 2 band rows + legend", len(lines))
	}
	if w := lipgloss.Width(lines[0]); w != 50 {
		t.Errorf("band width = %d, want 50", w)
	}
	if !strings.Contains(out, "Revenue 66%") || !strings.Contains(out, "Expenses 34%") {
		t.Errorf("unexpected legend: %q", lines[2])
	}
}

func TestLegendNames(t *testing.T) {
	out := Legend(testSeries())
	for _, name := range []string{"Revenue", "Expenses", "Profit"} {
		if !strings.Contains(out, name) {
			t.Errorf("legend missing %s", name)
		}
	}
}

func TestSparklineLength(t *testing.T) {
	out := Sparkline(profit, theme.Active.Profit())
	if w := lipgloss.Width(out); w != len(profit) {
		t.Errorf("sparkline width = %d, want %d", w, len(profit))
	}
}
