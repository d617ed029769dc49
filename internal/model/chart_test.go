package model

import (
	"encoding/json"
	"testing"
)

func TestParseChartKind(t *testing.T) {
	tests := []struct {
		id   string
		want ChartKind
		ok   bool
	}{
		{"bar", ChartBar, true},
		{"line", ChartLine, true},
		{" AREA ", ChartArea, true},
		{"pie", ChartPie, true},
		{"composed", ChartComposed, true},
		{"radar", ChartBar, false},
		{"", ChartBar, false},
	}
	for _, tt := range tests {
		got, ok := ParseChartKind(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseChartKind(%q) = (%v, %v), want (%v, %v)", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestChartKindCycleWraps(t *testing.T) {
	if got := ChartComposed.Next(); got != ChartBar {
		t.Fatalf("ChartComposed.Next() = %v, want bar", got)
	}
	if got := ChartBar.Prev(); got != ChartComposed {
		t.Fatalf("ChartBar.Prev() = %v, want composed", got)
	}

	k := ChartBar
	for range ChartKinds() {
		k = k.Next()
	}
	if k != ChartBar {
		t.Fatalf("full cycle ended at %v, want bar", k)
	}
}

func TestChartKindOutOfRangeFallsBackToBar(t *testing.T) {
	k := ChartKind(42)
	if k.ID() != "bar" || k.Name() != "Bar Chart" {
		t.Fatalf("out-of-range kind = %q/%q, want bar/Bar Chart", k.ID(), k.Name())
	}
}

func TestChartKindJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Chart ChartKind `json:"chart"`
	}{ChartComposed})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"chart":"composed"}` {
		t.Fatalf("marshal = %s", data)
	}

	var out struct {
		Chart ChartKind `json:"chart"`
	}
	if err := json.Unmarshal([]byte(`{"chart":"pie"}`), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Chart != ChartPie {
		t.Fatalf("unmarshal chart = %v, want pie", out.Chart)
	}
}

func TestUsageStatsBilling(t *testing.T) {
	u := UsageStats{Scenarios: 12, Exports: 3, ScenarioRateUSD: 0.10, ExportRateUSD: 0.25}
	if got := u.ScenarioBilledUSD(); got < 1.1999 || got > 1.2001 {
		t.Fatalf("ScenarioBilledUSD = %v, want 1.2", got)
	}
	if got := u.ExportBilledUSD(); got != 0.75 {
		t.Fatalf("ExportBilledUSD = %v, want 0.75", got)
	}
}
