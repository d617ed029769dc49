// Package tui provides the interactive Bubble Tea dashboard for cfohelper.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/report"
	"github.com/theirongolddev/cfohelper/internal/store"
	"github.com/theirongolddev/cfohelper/internal/tui/components"
	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
)

// Meter records the usage counters behind the billing panel.
// *store.Meter satisfies it.
type Meter interface {
	RecordScenario() (int64, error)
	RecordExport() (int64, error)
	Usage(store.Rates) (model.UsageStats, error)
}

// Options configures a new App.
type Options struct {
	Config    config.Config
	Scenario  model.Scenario // starting state; usually Config.StartScenario() with flag overrides
	Meter     Meter          // nil disables persistent metering
	NeedSetup bool           // show the first-run form before the dashboard

	SaveConfig func(config.Config) error // defaults to config.Save
	Now        func() time.Time          // defaults to time.Now
}

// ExportDoneMsg is sent when a report export finishes.
type ExportDoneMsg struct {
	Path string
	Err  error
}

type clearFlashMsg struct{ id int }

// Slider indices, in display order.
const (
	sliderSpending = iota
	sliderPricing
	sliderHiring
	sliderCount
)

const (
	tabForecast = iota
	tabBreakdown
	tabUsage
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	flashDuration = 4 * time.Second
	bigStep       = 10
)

// App is the root Bubble Tea model.
type App struct {
	cfg        config.Config
	saveConfig func(config.Config) error
	now        func() time.Time

	// Scenario state; replaced wholesale on every change.
	scenario model.Scenario
	proj     forecast.Projection

	// Session counters shown in the header.
	scenarios int64
	exports   int64

	// Persistent counters from the meter.
	meter Meter
	usage model.UsageStats

	// UI state
	width     int
	height    int
	activeTab int
	focus     int
	showHelp  bool

	exporting bool
	spinner   spinner.Model
	flash     components.Flash
	flashID   int

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.SaveConfig == nil {
		opts.SaveConfig = config.Save
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	theme.SetActive(opts.Config.Display.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		cfg:        opts.Config,
		saveConfig: opts.SaveConfig,
		now:        opts.Now,
		meter:      opts.Meter,
		spinner:    sp,
		needSetup:  opts.NeedSetup,
	}
	if !opts.Config.Metering.Enabled {
		a.meter = nil
	}
	a.setScenario(opts.Scenario)
	a.loadUsage()

	if a.needSetup {
		a.setupVals = newSetupValues(a.cfg)
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Scenario returns the current scenario state.
func (a App) Scenario() model.Scenario { return a.scenario }

// setScenario replaces the scenario and recomputes the projection.
func (a *App) setScenario(s model.Scenario) {
	a.scenario = s
	a.proj = forecast.Project(s)
	a.scenario.Currency = a.proj.Scenario.Currency
}

// changeInputs applies new slider values. A change that moves nothing is
// not a tested scenario.
func (a *App) changeInputs(in model.Inputs) tea.Cmd {
	if in == a.scenario.Inputs {
		return nil
	}
	a.setScenario(a.scenario.WithInputs(in))
	a.scenarios++

	if a.meter == nil {
		a.usage.Scenarios++
		return nil
	}
	n, err := a.meter.RecordScenario()
	if err != nil {
		log.Warn().Err(err).Msg("recording scenario")
		return a.setFlash(fmt.Sprintf("Usage meter: %v", err), true)
	}
	a.usage.Scenarios = n
	return nil
}

func (a *App) loadUsage() {
	a.usage = model.UsageStats{
		ScenarioRateUSD: a.cfg.Metering.ScenarioRate,
		ExportRateUSD:   a.cfg.Metering.ExportRate,
	}
	if a.meter == nil {
		return
	}
	u, err := a.meter.Usage(store.Rates{Scenario: a.cfg.Metering.ScenarioRate, Export: a.cfg.Metering.ExportRate})
	if err != nil {
		log.Warn().Err(err).Msg("reading usage meter")
		return
	}
	a.usage = u
}

// nudge moves the focused slider by steps grid increments.
func (a *App) nudge(steps int) tea.Cmd {
	in := a.scenario.Inputs
	switch a.focus {
	case sliderSpending:
		in.Spending = config.SpendingRange.Nudge(in.Spending, steps)
	case sliderPricing:
		in.Pricing = config.PricingRange.Nudge(in.Pricing, steps)
	case sliderHiring:
		in.Hiring = config.HiringRange.Nudge(in.Hiring, steps)
	}
	return a.changeInputs(in)
}

func (a *App) setFlash(text string, isErr bool) tea.Cmd {
	a.flashID++
	a.flash = components.Flash{Text: text, Error: isErr}
	id := a.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return clearFlashMsg{id: id} })
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}
		return a.updateKey(msg)

	case ExportDoneMsg:
		return a.exportDone(msg)

	case clearFlashMsg:
		if msg.id == a.flashID {
			a.flash = components.Flash{}
		}
		return a, nil

	case spinner.TickMsg:
		if a.exporting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Settings tab navigation (non-editing mode)
	if a.activeTab == tabSettings {
		switch key {
		case "j", "down":
			a.settings.cursor = min(a.settings.cursor+1, settingsFieldCount-1)
			return a, nil
		case "k", "up":
			a.settings.cursor = max(a.settings.cursor-1, 0)
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "esc":
		a.flash = components.Flash{}
		return a, nil

	case "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	case "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil

	case "j", "down":
		a.focus = (a.focus + 1) % sliderCount
		return a, nil
	case "k", "up":
		a.focus = (a.focus - 1 + sliderCount) % sliderCount
		return a, nil
	case "h", "left":
		cmd := a.nudge(-1)
		return a, cmd
	case "l", "right":
		cmd := a.nudge(1)
		return a, cmd
	case "H", "shift+left":
		cmd := a.nudge(-bigStep)
		return a, cmd
	case "L", "shift+right":
		cmd := a.nudge(bigStep)
		return a, cmd

	case "c":
		a.setScenario(a.scenario.WithCurrency(config.NextCurrency(a.scenario.Currency)))
		return a, nil
	case "C":
		a.setScenario(a.scenario.WithCurrency(config.PrevCurrency(a.scenario.Currency)))
		return a, nil
	case "v":
		a.setScenario(a.scenario.WithChart(a.scenario.Chart.Next()))
		return a, nil
	case "V":
		a.setScenario(a.scenario.WithChart(a.scenario.Chart.Prev()))
		return a, nil
	case "1", "2", "3", "4", "5":
		kinds := model.ChartKinds()
		a.setScenario(a.scenario.WithChart(kinds[int(key[0]-'1')]))
		return a, nil

	case "e":
		return a.startExport(a.cfg.ExportFormat())
	case "E":
		return a.startExport(config.FormatXLSX)
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == tabForecast {
			cmd := a.nudge(1)
			return a, cmd
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == tabForecast {
			cmd := a.nudge(-1)
			return a, cmd
		}
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return a, nil
		}
		if msg.Y == a.tabBarRow() {
			if tab := components.TabAtX(msg.X-a.contentOffset(), a.activeTab); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// startExport builds the report for the current scenario and writes it in a tea.Cmd.
func (a App) startExport(format string) (tea.Model, tea.Cmd) {
	if a.exporting {
		return a, nil
	}
	a.exporting = true
	r := report.Build(a.proj, a.scenario.Chart, a.now())
	return a, tea.Batch(exportCmd(a.cfg.ExportDir(), format, r, a.proj), a.spinner.Tick)
}

func exportCmd(dir, format string, r report.Report, p forecast.Projection) tea.Cmd {
	return func() tea.Msg {
		path, err := report.Write(dir, format, r, p)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

func (a App) exportDone(msg ExportDoneMsg) (tea.Model, tea.Cmd) {
	a.exporting = false
	if msg.Err != nil {
		log.Error().Err(msg.Err).Msg("export failed")
		cmd := a.setFlash(fmt.Sprintf("Export failed: %v", msg.Err), true)
		return a, cmd
	}

	log.Info().Str("path", msg.Path).Msg("report exported")
	a.exports++
	if a.meter == nil {
		a.usage.Exports++
	} else if n, err := a.meter.RecordExport(); err != nil {
		log.Warn().Err(err).Msg("recording export")
	} else {
		a.usage.Exports = n
	}
	cmd := a.setFlash("Report Exported: "+msg.Path, false)
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		flash := a.applySetup()
		a.needSetup = false
		a.setupForm = nil
		return a, flash
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// contentOffset is the left margin when content is centered in a wide terminal.
func (a App) contentOffset() int {
	return max(0, (a.width-a.contentWidth())/2)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  cfohelper needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Scenario", []struct{ key, desc string }{
			{"j k", "Focus next / previous slider"},
			{"h l", "Nudge slider one step"},
			{"H L", "Nudge slider ten steps"},
			{"c C", "Next / previous currency"},
			{"1-5 v", "Choose / cycle chart"},
		}},
		{"Navigation", []struct{ key, desc string }{
			{"tab", "Next tab (shift+tab back)"},
			{"f b u s", "Jump to tab"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"e", "Export report (" + a.cfg.ExportFormat() + ")"},
			{"E", "Export spreadsheet (xlsx)"},
			{"Enter", "Edit setting"},
			{"Esc", "Dismiss / Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-8s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderHeader renders the title row with session counters and the tab bar.
func (a App) renderHeader(w int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	badgeStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Padding(0, 1)
	bg := lipgloss.NewStyle().Background(t.Surface)

	left := titleStyle.Render(" ◈ CFO Helper Agent")
	if !a.isCompactLayout() {
		left += subStyle.Render("  Simulate budget scenarios and forecast financial outcomes")
	}

	right := badgeStyle.Render(fmt.Sprintf("%d scenarios tested", a.scenarios)) +
		bg.Render(" ") +
		badgeStyle.Render(fmt.Sprintf("%d reports exported", a.exports))
	if a.exporting {
		right = a.spinner.View() + subStyle.Render(" exporting ") + right
	}
	right += bg.Render(" ")

	gap := max(1, w-lipgloss.Width(left)-lipgloss.Width(right))
	title := left + bg.Render(strings.Repeat(" ", gap)) + right

	return lipgloss.PlaceHorizontal(w, lipgloss.Left, title, lipgloss.WithWhitespaceBackground(t.Surface)) +
		"\n" + components.RenderTabBar(a.activeTab, w)
}

// tabBarRow is the screen row of the tab bar.
func (a App) tabBarRow() int { return 1 }

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := a.renderHeader(w)
	statusBar := components.RenderStatusBar(w, components.StatusInfo{
		Currency:  a.proj.Currency.Code,
		Chart:     a.scenario.Chart.Name(),
		Scenarios: a.scenarios,
		Exports:   a.exports,
	}, a.flash)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := max(h-headerH-statusH, minContentHeight)

	var content string
	switch a.activeTab {
	case tabForecast:
		content = a.renderForecastTab(cw, contentH)
	case tabBreakdown:
		content = a.renderBreakdownTab(cw)
	case tabUsage:
		content = a.renderUsageTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
