package tui

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
)

// ErrSetupAborted is returned by RunSetup when the user cancels the form.
var ErrSetupAborted = errors.New("setup aborted")

// setupValues is bound to the huh form fields.
type setupValues struct {
	currency string
	chart    string
	theme    string
}

func newSetupValues(cfg config.Config) *setupValues {
	v := &setupValues{
		currency: config.BaseCurrencyCode,
		chart:    model.ChartBar.ID(),
		theme:    theme.FlexokiDark.Name,
	}
	if cur, ok := config.LookupCurrency(cfg.Display.Currency); ok {
		v.currency = cur.Code
	}
	if k, ok := model.ParseChartKind(cfg.Display.Chart); ok {
		v.chart = k.ID()
	}
	if theme.Valid(cfg.Display.Theme) {
		v.theme = cfg.Display.Theme
	}
	return v
}

func newSetupForm(v *setupValues) *huh.Form {
	currencyOpts := make([]huh.Option[string], 0, len(config.Currencies))
	for _, c := range config.Currencies {
		currencyOpts = append(currencyOpts, huh.NewOption(fmt.Sprintf("%-4s %s (%s)", c.Code, c.Name, c.Symbol), c.Code))
	}

	chartOpts := make([]huh.Option[string], 0, len(model.ChartKinds()))
	for _, k := range model.ChartKinds() {
		chartOpts = append(chartOpts, huh.NewOption(fmt.Sprintf("%-15s %s", k.Name(), k.Description()), k.ID()))
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to cfohelper").
				Description("Simulate budget scenarios and forecast financial outcomes.\nPick how results are shown; Settings can change them later."),
			huh.NewSelect[string]().
				Title("Display currency").
				Options(currencyOpts...).
				Value(&v.currency),
			huh.NewSelect[string]().
				Title("Chart").
				Options(chartOpts...).
				Value(&v.chart),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&v.theme),
		),
	).WithShowHelp(true)
}

// apply copies the chosen values into cfg.
func (v *setupValues) apply(cfg *config.Config) {
	cfg.Display.Currency = v.currency
	cfg.Display.Chart = v.chart
	cfg.Display.Theme = v.theme
}

// applySetup saves the form result and switches the live scenario over to it.
func (a *App) applySetup() tea.Cmd {
	a.setupVals.apply(&a.cfg)
	theme.SetActive(a.cfg.Display.Theme)

	chart, _ := model.ParseChartKind(a.cfg.Display.Chart)
	a.setScenario(a.scenario.WithCurrency(a.cfg.Display.Currency).WithChart(chart))

	if err := a.saveConfig(a.cfg); err != nil {
		log.Warn().Err(err).Msg("saving setup config")
		return a.setFlash(fmt.Sprintf("Config not saved: %v", err), true)
	}
	return a.setFlash("Saved to "+config.Path(), false)
}

// RunSetup runs the setup form standalone and returns the updated config.
// The caller saves it.
func RunSetup(cfg config.Config) (config.Config, error) {
	v := newSetupValues(cfg)
	if err := newSetupForm(v).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cfg, ErrSetupAborted
		}
		return cfg, fmt.Errorf("running setup form: %w", err)
	}
	v.apply(&cfg)
	return cfg, nil
}
