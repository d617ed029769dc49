package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one named row of chart data, one value per x label.
type Series struct {
	Name     string
	Values   []float64
	Color    lipgloss.Color
	Negative lipgloss.Color // bar color for values below zero; empty means Color
}

func (s Series) colorFor(v float64) lipgloss.Color {
	if v < 0 && s.Negative != "" {
		return s.Negative
	}
	return s.Color
}

// ChartOptions controls chart geometry and axis labels.
type ChartOptions struct {
	Labels []string // x-axis labels
	Symbol string   // currency symbol prefixed to y-axis ticks
	Width  int      // total width including the y axis
	Height int      // plot rows, excluding the x axis
}

// Sparkline renders a unicode sparkline from values, normalized between
// the series' own min and max.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := len(blocks) - 1
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders grouped vertical bars, one group per label and one bar per series.
// Negative values hang below a zero line.
func BarChart(series []Series, o ChartOptions) string {
	n := groupCount(series, o.Labels)
	if n == 0 {
		return ""
	}
	p, lay := newPlotFor(series, o, n, len(series))
	for j, s := range series {
		for i := 0; i < n; i++ {
			p.bar(lay.barX(i, j), lay.barW, value(s, i), s.colorFor(value(s, i)))
		}
	}
	return p.render(o, lay, n)
}

// LineChart renders each series as a polyline through the group centers.
func LineChart(series []Series, o ChartOptions) string {
	n := groupCount(series, o.Labels)
	if n == 0 {
		return ""
	}
	p, lay := newPlotFor(series, o, n, 3)
	for _, s := range series {
		p.line(lay, n, s)
	}
	return p.render(o, lay, n)
}

// AreaChart renders the series stacked on top of each other, filled down to zero.
// Negative values contribute nothing to the stack.
func AreaChart(series []Series, o ChartOptions) string {
	n := groupCount(series, o.Labels)
	if n == 0 {
		return ""
	}

	stacked := make([]float64, n)
	for _, s := range series {
		for i := 0; i < n; i++ {
			stacked[i] += math.Max(0, value(s, i))
		}
	}
	p, lay := newPlotFor([]Series{{Values: stacked}}, o, n, 3)

	shades := []rune{'█', '▓', '▒', '░'}
	first, last := lay.center(0), lay.center(n-1)
	for x := first; x <= last; x++ {
		base := 0.0
		for j, s := range series {
			top := base + math.Max(0, lay.interpolate(x, n, s.Values))
			p.fill(x, base, top, shades[j%len(shades)], s.Color)
			base = top
		}
	}
	return p.render(o, lay, n)
}

// ComposedChart renders bars with a line overlaid through the group centers.
func ComposedChart(bars []Series, line Series, o ChartOptions) string {
	all := append(append([]Series(nil), bars...), line)
	n := groupCount(all, o.Labels)
	if n == 0 {
		return ""
	}
	p, lay := newPlotFor(all, o, n, len(bars))
	for j, s := range bars {
		for i := 0; i < n; i++ {
			p.bar(lay.barX(i, j), lay.barW, value(s, i), s.colorFor(value(s, i)))
		}
	}
	p.line(lay, n, line)
	return p.render(o, lay, n)
}

// ShareChart renders the proportion of each slice as a segmented band with
// a percentage legend. Only the first value of each series is used and
// negative values count as zero.
func ShareChart(slices []Series, width, height int) string {
	t := theme.Active
	if len(slices) == 0 || width < 4 {
		return ""
	}

	total := 0.0
	vals := make([]float64, len(slices))
	for i, s := range slices {
		vals[i] = math.Max(0, value(s, 0))
		total += vals[i]
	}

	widths := make([]int, len(slices))
	if total > 0 {
		used := 0
		for i, v := range vals {
			widths[i] = int(math.Round(v / total * float64(width)))
			used += widths[i]
		}
		// Rounding drift goes to the largest slice.
		widths[largest(vals)] += width - used
	}

	bg := lipgloss.NewStyle().Background(t.Surface)
	var band strings.Builder
	for i, s := range slices {
		if widths[i] <= 0 {
			continue
		}
		band.WriteString(lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).
			Render(strings.Repeat("█", widths[i])))
	}
	if total <= 0 {
		band.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(strings.Repeat("░", width)))
	}

	row := band.String()
	var b strings.Builder
	for r := 0; r < max(1, height); r++ {
		b.WriteString(row)
		b.WriteString("\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	parts := make([]string, len(slices))
	for i, s := range slices {
		pct := 0.0
		if total > 0 {
			pct = vals[i] / total * 100
		}
		parts[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("●") +
			labelStyle.Render(fmt.Sprintf(" %s %.0f%%", s.Name, math.Round(pct)))
	}
	b.WriteString(strings.Join(parts, bg.Render("   ")))
	return b.String()
}

// Legend renders colored dots with series names.
func Legend(series []Series) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	parts := make([]string, len(series))
	for i, s := range series {
		parts[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("●") +
			labelStyle.Render(" "+s.Name)
	}
	return strings.Join(parts, lipgloss.NewStyle().Background(t.Surface).Render("   "))
}

// ─── Plot canvas ────────────────────────────────────────────────

type cell struct {
	r     rune
	color lipgloss.Color
}

// plot is a grid of styled runes. Row 0 is the top; each row covers an
// equal band of the [bottom, top] value range.
type plot struct {
	w, h        int
	top, bottom float64
	cells       [][]cell
}

// groupLayout places n groups of k bars side by side.
type groupLayout struct {
	barW, bars, gap int
}

func (l groupLayout) groupW() int { return l.barW*l.bars + l.gap }

func (l groupLayout) barX(group, bar int) int {
	return group*l.groupW() + l.gap/2 + bar*l.barW
}

func (l groupLayout) center(group int) int {
	return group*l.groupW() + l.gap/2 + (l.barW*l.bars)/2
}

// interpolate returns the linearly interpolated value of values at column x.
func (l groupLayout) interpolate(x, n int, values []float64) float64 {
	if n == 1 {
		return valueAt(values, 0)
	}
	for i := 0; i < n-1; i++ {
		x0, x1 := l.center(i), l.center(i+1)
		if x >= x0 && x <= x1 {
			f := float64(x-x0) / float64(x1-x0)
			return valueAt(values, i) + f*(valueAt(values, i+1)-valueAt(values, i))
		}
	}
	if x < l.center(0) {
		return valueAt(values, 0)
	}
	return valueAt(values, n-1)
}

func newPlotFor(series []Series, o ChartOptions, n, bars int) (*plot, groupLayout) {
	lo, hi := 0.0, 0.0
	for _, s := range series {
		for i := 0; i < n; i++ {
			v := value(s, i)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	top, bottom := axisBounds(lo, hi)

	yLabelW := yAxisWidth(o.Symbol, top, bottom)
	chartW := max(o.Width-yLabelW-1, n)

	bars = max(bars, 1)
	gap := 2
	barW := (chartW - n*gap) / (n * bars)
	barW = max(1, min(barW, 5))
	lay := groupLayout{barW: barW, bars: bars, gap: gap}

	h := max(o.Height, 3)
	p := &plot{
		w:      n * lay.groupW(),
		h:      h,
		top:    top,
		bottom: bottom,
		cells:  make([][]cell, h),
	}
	for r := range p.cells {
		p.cells[r] = make([]cell, p.w)
	}
	return p, lay
}

func (p *plot) step() float64 { return (p.top - p.bottom) / float64(p.h) }

func (p *plot) rowMid(r int) float64 {
	return p.top - (float64(r)+0.5)*p.step()
}

func (p *plot) rowOf(v float64) int {
	r := int(math.Floor((p.top - v) / p.step()))
	return max(0, min(r, p.h-1))
}

func (p *plot) set(x, r int, ch rune, color lipgloss.Color) {
	if x < 0 || x >= p.w || r < 0 || r >= p.h {
		return
	}
	p.cells[r][x] = cell{r: ch, color: color}
}

// bar fills the cells between zero and v in columns [x, x+w).
func (p *plot) bar(x, w int, v float64, color lipgloss.Color) {
	for r := 0; r < p.h; r++ {
		mid := p.rowMid(r)
		if (v > 0 && mid > 0 && mid <= v) || (v < 0 && mid < 0 && mid >= v) {
			for dx := 0; dx < w; dx++ {
				p.set(x+dx, r, '█', color)
			}
		}
	}
}

// fill shades column x for the value band (lo, hi].
func (p *plot) fill(x int, lo, hi float64, ch rune, color lipgloss.Color) {
	for r := 0; r < p.h; r++ {
		mid := p.rowMid(r)
		if mid > lo && mid <= hi {
			p.set(x, r, ch, color)
		}
	}
}

// line draws s as a polyline through the group centers.
func (p *plot) line(lay groupLayout, n int, s Series) {
	first, last := lay.center(0), lay.center(n-1)
	prev := -1
	for x := first; x <= last; x++ {
		r := p.rowOf(lay.interpolate(x, n, s.Values))
		if prev >= 0 && abs(r-prev) > 1 {
			step := 1
			if r < prev {
				step = -1
			}
			for y := prev + step; y != r; y += step {
				p.set(x, y, '│', s.Color)
			}
		}
		p.set(x, r, '•', s.Color)
		prev = r
	}
	for i := 0; i < n; i++ {
		p.set(lay.center(i), p.rowOf(value(s, i)), '●', s.Color)
	}
}

func (p *plot) render(o ChartOptions, lay groupLayout, n int) string {
	t := theme.Active

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	yLabelW := yAxisWidth(o.Symbol, p.top, p.bottom)
	zeroRow := -1
	if p.bottom < 0 {
		zeroRow = p.rowOf(0)
	}

	var b strings.Builder
	for r := 0; r < p.h; r++ {
		label := ""
		switch r {
		case 0:
			label = chartLabel(o.Symbol, p.top)
		case p.h - 1:
			label = chartLabel(o.Symbol, p.bottom)
		case zeroRow:
			label = "0"
		}
		tick := "│"
		if label != "" {
			tick = "┤"
		}
		b.WriteString(axisStyle.Render(padLeft(label, yLabelW) + tick))

		for x := 0; x < p.w; x++ {
			c := p.cells[r][x]
			switch {
			case c.r != 0:
				b.WriteString(lipgloss.NewStyle().Foreground(c.color).Background(t.Surface).Render(string(c.r)))
			case r == zeroRow:
				b.WriteString(axisStyle.Render("─"))
			default:
				b.WriteString(blank.Render(" "))
			}
		}
		b.WriteString("\n")
	}

	// X axis
	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW) + "└" + strings.Repeat("─", p.w)))

	if len(o.Labels) >= n {
		buf := []rune(strings.Repeat(" ", p.w))
		for i := 0; i < n; i++ {
			lbl := []rune(o.Labels[i])
			pos := lay.center(i) - len(lbl)/2
			pos = max(0, min(pos, p.w-len(lbl)))
			for k, ch := range lbl {
				if pos+k >= 0 && pos+k < len(buf) {
					buf[pos+k] = ch
				}
			}
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// ─── Axis helpers ───────────────────────────────────────────────

// axisBounds rounds [lo, hi] out to tick multiples, always including zero.
func axisBounds(lo, hi float64) (top, bottom float64) {
	span := math.Max(hi, -lo)
	if span <= 0 {
		return 1, 0
	}
	step := chartTickStep(span)
	top = math.Ceil(hi/step) * step
	bottom = math.Floor(lo/step) * step
	if top == bottom {
		top = bottom + step
	}
	return top, bottom
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func yAxisWidth(symbol string, top, bottom float64) int {
	return max(4, lipgloss.Width(chartLabel(symbol, top)), lipgloss.Width(chartLabel(symbol, bottom)))
}

// chartLabel formats an axis tick with K/M/B suffixes, e.g. "$1.5M", "-€200k".
func chartLabel(symbol string, v float64) string {
	if v == 0 {
		return "0"
	}
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}

	var num string
	switch {
	case v >= 1e9:
		num = trimUnit(v/1e9) + "B"
	case v >= 1e6:
		num = trimUnit(v/1e6) + "M"
	case v >= 1e3:
		num = trimUnit(v/1e3) + "k"
	case v >= 1:
		num = fmt.Sprintf("%.0f", v)
	default:
		num = fmt.Sprintf("%.2f", v)
	}
	return sign + symbol + num
}

func trimUnit(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func groupCount(series []Series, labels []string) int {
	n := len(labels)
	for _, s := range series {
		n = max(n, len(s.Values))
	}
	return n
}

func value(s Series, i int) float64 { return valueAt(s.Values, i) }

func valueAt(values []float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return 0
	}
	return values[i]
}

func largest(vals []float64) int {
	idx := 0
	for i, v := range vals {
		if v > vals[idx] {
			idx = i
		}
	}
	return idx
}

func padLeft(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
