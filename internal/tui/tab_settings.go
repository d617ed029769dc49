package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/tui/components"
	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldCurrency = iota
	settingsFieldChart
	settingsFieldTheme
	settingsFieldExportDir
	settingsFieldExportFormat
	settingsFieldMetering
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldCurrency:
		codes := make([]string, len(config.Currencies))
		for i, c := range config.Currencies {
			codes[i] = c.Code
		}
		ti.Placeholder = strings.Join(codes, ", ")
		ti.SetValue(a.cfg.Display.Currency)
	case settingsFieldChart:
		ids := make([]string, 0, len(model.ChartKinds()))
		for _, k := range model.ChartKinds() {
			ids = append(ids, k.ID())
		}
		ti.Placeholder = strings.Join(ids, ", ")
		ti.SetValue(a.cfg.Display.Chart)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Display.Theme)
	case settingsFieldExportDir:
		ti.Placeholder = ". (working directory)"
		ti.SetValue(a.cfg.Export.Dir)
	case settingsFieldExportFormat:
		ti.Placeholder = "json or xlsx"
		ti.SetValue(a.cfg.ExportFormat())
	case settingsFieldMetering:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.cfg.Metering.Enabled))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

var errInvalidSetting = errors.New("invalid value")

// settingsSave validates the edited field, applies it to the live dashboard
// and writes the config file.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldCurrency:
		cur, err := config.ResolveCurrency(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.Display.Currency = cur.Code
		a.setScenario(a.scenario.WithCurrency(cur.Code))
	case settingsFieldChart:
		k, ok := model.ParseChartKind(val)
		if !ok {
			a.settings.saveErr = fmt.Errorf("%w: unknown chart %q", errInvalidSetting, val)
			return
		}
		cfg.Display.Chart = k.ID()
		a.setScenario(a.scenario.WithChart(k))
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("%w: unknown theme %q", errInvalidSetting, val)
			return
		}
		cfg.Display.Theme = val
		theme.SetActive(val)
	case settingsFieldExportDir:
		cfg.Export.Dir = val
	case settingsFieldExportFormat:
		f := strings.ToLower(val)
		if f != config.FormatJSON && f != config.FormatXLSX {
			a.settings.saveErr = fmt.Errorf("%w: format must be json or xlsx", errInvalidSetting)
			return
		}
		cfg.Export.Format = f
	case settingsFieldMetering:
		on, err := strconv.ParseBool(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("%w: %q is not true or false", errInvalidSetting, val)
			return
		}
		cfg.Metering.Enabled = on
	}

	a.cfg = cfg
	a.settings.saveErr = a.saveConfig(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	currency := cfg.Display.Currency
	if cur, ok := config.LookupCurrency(currency); ok {
		currency = fmt.Sprintf("%s (%s, %s)", cur.Code, cur.Name, cur.Symbol)
	}
	chart, _ := model.ParseChartKind(cfg.Display.Chart)
	exportDir := cfg.Export.Dir
	if exportDir == "" {
		exportDir = "(working directory)"
	}

	fields := []field{
		{"Default Currency", currency},
		{"Default Chart", chart.Name()},
		{"Theme", theme.ByName(cfg.Display.Theme).Name},
		{"Export Directory", exportDir},
		{"Export Format", cfg.ExportFormat()},
		{"Usage Metering", strconv.FormatBool(cfg.Metering.Enabled)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	in := a.scenario.Inputs
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Usage meter:     ") + valueStyle.Render(config.MeterPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Export to:       ") + valueStyle.Render(cfg.ExportDir()) + "\n")
	infoBody.WriteString(labelStyle.Render("Live scenario:   ") + valueStyle.Render(fmt.Sprintf("spending=%g pricing=%g hiring=%g",
		in.Spending, in.Pricing, in.Hiring)))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
