package model

import "strings"

// ChartKind selects how the projection is drawn. It is a closed set;
// only presentation code switches on it.
type ChartKind int

const (
	ChartBar ChartKind = iota
	ChartLine
	ChartArea
	ChartPie
	ChartComposed
	chartKindCount // sentinel
)

type chartInfo struct {
	id          string
	name        string
	description string
}

var chartKinds = [chartKindCount]chartInfo{
	ChartBar:      {"bar", "Bar Chart", "Compare values across categories"},
	ChartLine:     {"line", "Line Chart", "Show trends over time"},
	ChartArea:     {"area", "Area Chart", "Visualize cumulative values"},
	ChartPie:      {"pie", "Pie Chart", "Show proportion breakdown"},
	ChartComposed: {"composed", "Combined Chart", "Multiple chart types together"},
}

// ChartKinds lists every chart kind in picker order.
func ChartKinds() []ChartKind {
	kinds := make([]ChartKind, chartKindCount)
	for i := range kinds {
		kinds[i] = ChartKind(i)
	}
	return kinds
}

// ParseChartKind maps an id like "line" to its kind.
// Unknown ids report false and return ChartBar, the default rendering.
func ParseChartKind(id string) (ChartKind, bool) {
	id = strings.ToLower(strings.TrimSpace(id))
	for i, info := range chartKinds {
		if info.id == id {
			return ChartKind(i), true
		}
	}
	return ChartBar, false
}

func (k ChartKind) info() chartInfo {
	return chartKinds[k.normalize()]
}

// ID returns the stable identifier used in config files and exports.
func (k ChartKind) ID() string { return k.info().id }

// Name returns the display name, e.g. "Combined Chart".
func (k ChartKind) Name() string { return k.info().name }

// Description returns the one-line picker hint.
func (k ChartKind) Description() string { return k.info().description }

// String implements fmt.Stringer.
func (k ChartKind) String() string { return k.ID() }

// Next returns the following kind, wrapping around.
func (k ChartKind) Next() ChartKind {
	return (k.normalize() + 1) % chartKindCount
}

// Prev returns the preceding kind, wrapping around.
func (k ChartKind) Prev() ChartKind {
	return (k.normalize() - 1 + chartKindCount) % chartKindCount
}

func (k ChartKind) normalize() ChartKind {
	if k < 0 || k >= chartKindCount {
		return ChartBar
	}
	return k
}

// MarshalText implements encoding.TextMarshaler so kinds serialize by id.
func (k ChartKind) MarshalText() ([]byte, error) {
	return []byte(k.ID()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown ids decode to ChartBar.
func (k *ChartKind) UnmarshalText(text []byte) error {
	*k, _ = ParseChartKind(string(text))
	return nil
}
