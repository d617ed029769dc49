package tui

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/report"
	"github.com/theirongolddev/cfohelper/internal/store"
	"github.com/theirongolddev/cfohelper/internal/tui/components"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeMeter struct {
	scenarios int64
	exports   int64
	err       error
}

func (m *fakeMeter) RecordScenario() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.scenarios++
	return m.scenarios, nil
}

func (m *fakeMeter) RecordExport() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.exports++
	return m.exports, nil
}

func (m *fakeMeter) Usage(r store.Rates) (model.UsageStats, error) {
	return model.UsageStats{
		Scenarios:       m.scenarios,
		Exports:         m.exports,
		ScenarioRateUSD: r.Scenario,
		ExportRateUSD:   r.Export,
	}, nil
}

var fixedNow = time.Date(2024, 6, 10, 14, 30, 5, 0, time.UTC)

// newTestApp returns an App over the default config with a fake meter and
// a config sink that records the last saved config.
func newTestApp(t *testing.T, m *fakeMeter) (App, *config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	saved := &config.Config{}
	a := NewApp(Options{
		Config:   cfg,
		Scenario: cfg.StartScenario(),
		Meter:    m,
		SaveConfig: func(c config.Config) error {
			*saved = c
			return nil
		},
		Now: func() time.Time { return fixedNow },
	})
	return a, saved
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	next, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return next, cmd
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		a, _ = update(t, a, msg)
	}
	return a
}

func TestStartupIsNotAScenario(t *testing.T) {
	m := &fakeMeter{}
	a, _ := newTestApp(t, m)
	if a.scenarios != 0 || m.scenarios != 0 {
		t.Fatalf("startup counted %d/%d scenarios, want 0", a.scenarios, m.scenarios)
	}
	if len(a.proj.Schedule) != forecast.Months {
		t.Fatalf("schedule has %d months", len(a.proj.Schedule))
	}
}

func TestNudgeRecomputesAndCounts(t *testing.T) {
	m := &fakeMeter{}
	a, _ := newTestApp(t, m)

	a = press(t, a, "l")
	if got := a.scenario.Inputs.Spending; got != 160 {
		t.Fatalf("spending after nudge = %v, want 160", got)
	}
	want := forecast.ComputeSchedule(a.scenario.Inputs)
	for i := range want {
		if a.proj.Schedule[i] != want[i] {
			t.Fatalf("month %d = %+v, want %+v", i, a.proj.Schedule[i], want[i])
		}
	}
	if a.scenarios != 1 || m.scenarios != 1 || a.usage.Scenarios != 1 {
		t.Fatalf("counts = session %d, meter %d, usage %d; want 1", a.scenarios, m.scenarios, a.usage.Scenarios)
	}
}

func TestNudgeFocusedSlider(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})

	a = press(t, a, "j", "L")
	if got := a.scenario.Inputs.Pricing; got != 550 {
		t.Fatalf("pricing after +10 steps = %v, want 550", got)
	}

	a = press(t, a, "j", "l")
	if got := a.scenario.Inputs.Hiring; got != 31 {
		t.Fatalf("hiring after one step = %v, want 31", got)
	}
}

func TestNudgeAtBoundIsNotAScenario(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})

	// k wraps focus to the team size slider.
	a = press(t, a, "k", "H", "H", "H")
	if got := a.scenario.Inputs.Hiring; got != 1 {
		t.Fatalf("hiring = %v, want 1", got)
	}
	if a.scenarios != 1 {
		t.Fatalf("scenarios = %d, want 1 (the clamped presses change nothing)", a.scenarios)
	}
}

func TestCurrencyCycleWraps(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})

	want := []string{"EUR", "GBP", "JPY", "CAD", "AUD", "USD"}
	for _, code := range want {
		a = press(t, a, "c")
		if a.scenario.Currency != code || a.proj.Currency.Code != code {
			t.Fatalf("currency = %s/%s, want %s", a.scenario.Currency, a.proj.Currency.Code, code)
		}
	}

	a = press(t, a, "C")
	if a.scenario.Currency != "AUD" {
		t.Fatalf("previous of USD = %s, want AUD", a.scenario.Currency)
	}
	if a.scenarios != 0 {
		t.Fatalf("currency changes counted as scenarios: %d", a.scenarios)
	}
}

func TestChartSelection(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})

	a = press(t, a, "3")
	if a.scenario.Chart != model.ChartArea {
		t.Fatalf("chart = %v, want area", a.scenario.Chart)
	}
	a = press(t, a, "v")
	if a.scenario.Chart != model.ChartPie {
		t.Fatalf("chart = %v, want pie", a.scenario.Chart)
	}
	a = press(t, a, "5", "v")
	if a.scenario.Chart != model.ChartBar {
		t.Fatalf("chart = %v, want bar after wrapping", a.scenario.Chart)
	}
}

func TestTabNavigation(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})

	a = press(t, a, "tab")
	if a.activeTab != tabBreakdown {
		t.Fatalf("tab -> %d, want breakdown", a.activeTab)
	}
	a = press(t, a, "shift+tab", "shift+tab")
	if a.activeTab != tabSettings {
		t.Fatalf("shift+tab wrap -> %d, want settings", a.activeTab)
	}
	a = press(t, a, "esc", "u")
	if a.activeTab != tabUsage {
		t.Fatalf("u -> %d, want usage", a.activeTab)
	}
}

func TestMouseClickSelectsTab(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 100, Height: 40})

	x := 1 + components.TabVisualWidth(components.Tabs[0], true) + 2
	a, _ = update(t, a, tea.MouseMsg{X: x, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if a.activeTab != tabBreakdown {
		t.Fatalf("click at x=%d -> tab %d, want breakdown", x, a.activeTab)
	}
}

func TestMeterFailureIsNotFatal(t *testing.T) {
	m := &fakeMeter{err: errors.New("disk full")}
	a, _ := newTestApp(t, m)

	a = press(t, a, "l")
	if a.scenarios != 1 {
		t.Fatalf("session count = %d, want 1", a.scenarios)
	}
	if !a.flash.Error || !strings.Contains(a.flash.Text, "disk full") {
		t.Fatalf("flash = %+v, want meter error", a.flash)
	}
}

func TestExportFlow(t *testing.T) {
	m := &fakeMeter{}
	a, _ := newTestApp(t, m)

	a = press(t, a, "e")
	if !a.exporting {
		t.Fatal("export did not start")
	}

	a, cmd := update(t, a, ExportDoneMsg{Path: "budget-scenario-1.json"})
	if a.exporting || a.exports != 1 || m.exports != 1 {
		t.Fatalf("after export: exporting=%v exports=%d meter=%d", a.exporting, a.exports, m.exports)
	}
	if cmd == nil || !strings.Contains(a.flash.Text, "Report Exported") {
		t.Fatalf("flash = %+v", a.flash)
	}

	a, _ = update(t, a, ExportDoneMsg{Err: errors.New("read-only")})
	if a.exports != 1 || !a.flash.Error {
		t.Fatalf("failed export counted or not flashed: exports=%d flash=%+v", a.exports, a.flash)
	}
}

func TestFlashClearsOnlyLatest(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})
	a, _ = update(t, a, ExportDoneMsg{Path: "a.json"})
	first := a.flashID
	a, _ = update(t, a, ExportDoneMsg{Path: "b.json"})

	a, _ = update(t, a, clearFlashMsg{id: first})
	if a.flash.Text == "" {
		t.Fatal("stale clear removed the newer flash")
	}
	a, _ = update(t, a, clearFlashMsg{id: a.flashID})
	if a.flash.Text != "" {
		t.Fatal("flash not cleared")
	}
}

func TestExportCmdWritesReport(t *testing.T) {
	dir := t.TempDir()
	p := forecast.Project(config.DefaultConfig().StartScenario())
	r := report.Build(p, model.ChartLine, fixedNow)

	msg, ok := exportCmd(dir, config.FormatJSON, r, p)().(ExportDoneMsg)
	if !ok {
		t.Fatal("exportCmd did not return ExportDoneMsg")
	}
	if msg.Err != nil {
		t.Fatalf("export: %v", msg.Err)
	}
	if _, err := os.Stat(msg.Path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.HasSuffix(msg.Path, ".json") {
		t.Fatalf("path = %s, want .json", msg.Path)
	}
}

func TestSettingsSaveCurrency(t *testing.T) {
	a, saved := newTestApp(t, &fakeMeter{})
	a = press(t, a, "s", "enter")
	if !a.settings.editing {
		t.Fatal("enter did not start editing")
	}

	a.settings.input.SetValue("eur")
	a = press(t, a, "enter")
	if a.settings.saveErr != nil {
		t.Fatalf("save: %v", a.settings.saveErr)
	}
	if saved.Display.Currency != "EUR" || a.scenario.Currency != "EUR" {
		t.Fatalf("saved %q, live %q; want EUR", saved.Display.Currency, a.scenario.Currency)
	}
}

func TestSettingsRejectsInvalidFormat(t *testing.T) {
	a, saved := newTestApp(t, &fakeMeter{})
	a = press(t, a, "s")
	a.settings.cursor = settingsFieldExportFormat
	a = press(t, a, "enter")

	a.settings.input.SetValue("csv")
	a = press(t, a, "enter")
	if !errors.Is(a.settings.saveErr, errInvalidSetting) {
		t.Fatalf("saveErr = %v, want errInvalidSetting", a.settings.saveErr)
	}
	if saved.Export.Format != "" {
		t.Fatal("invalid value reached the config file")
	}
}

func TestApplySetup(t *testing.T) {
	cfg := config.DefaultConfig()
	var saved config.Config
	a := NewApp(Options{
		Config:     cfg,
		Scenario:   cfg.StartScenario(),
		NeedSetup:  true,
		SaveConfig: func(c config.Config) error { saved = c; return nil },
	})
	if a.setupForm == nil {
		t.Fatal("setup form not created")
	}

	a.setupVals.currency = "JPY"
	a.setupVals.chart = "composed"
	a.setupVals.theme = "tokyo-night"
	if cmd := a.applySetup(); cmd == nil {
		t.Fatal("applySetup returned no flash cmd")
	}

	if saved.Display.Currency != "JPY" || saved.Display.Chart != "composed" || saved.Display.Theme != "tokyo-night" {
		t.Fatalf("saved display = %+v", saved.Display)
	}
	if a.scenario.Chart != model.ChartComposed || a.proj.Currency.Code != "JPY" {
		t.Fatalf("live scenario = %+v", a.scenario)
	}
}

func TestViewRendersDashboard(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 140, Height: 50})

	view := a.View()
	for _, want := range []string{"CFO Helper Agent", "Team Size", "Total Revenue", "Monthly Financial Projection - Bar Chart"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	for _, key := range []string{"b", "u", "s"} {
		a = press(t, a, key)
		if a.View() == "" {
			t.Errorf("tab %q rendered nothing", key)
		}
	}

	a = press(t, a, "?")
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Error("help overlay not shown")
	}
}

func TestViewTooNarrow(t *testing.T) {
	a, _ := newTestApp(t, &fakeMeter{})
	a, _ = update(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(a.View(), "Terminal too narrow") {
		t.Fatal("expected narrow terminal message")
	}
}
