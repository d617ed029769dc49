package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points config and data dirs at temp dirs and resets flag state
// left behind by earlier command runs.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("CFOHELPER_CURRENCY", "")

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
	t.Cleanup(func() { setLogOutput(os.Stderr) })
}

func parse(t *testing.T, c *cobra.Command, args ...string) {
	t.Helper()
	require.NoError(t, c.ParseFlags(args))
}

func TestResolveScenarioDefaults(t *testing.T) {
	isolate(t)
	parse(t, rootCmd)

	s, err := resolveScenario(rootCmd, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, model.Inputs{Spending: 150, Pricing: 300, Hiring: 25}, s.Inputs)
	assert.Equal(t, "USD", s.Currency)
	assert.Equal(t, model.ChartBar, s.Chart)
}

func TestResolveScenarioFlagOverrides(t *testing.T) {
	isolate(t)
	parse(t, rootCmd, "--pricing", "400", "--currency", "eur", "--chart", "area")

	s, err := resolveScenario(rootCmd, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 400.0, s.Inputs.Pricing)
	assert.Equal(t, 150.0, s.Inputs.Spending, "unchanged flags keep the config value")
	assert.Equal(t, "EUR", s.Currency)
	assert.Equal(t, model.ChartArea, s.Chart)
}

func TestResolveScenarioRejectsBadInput(t *testing.T) {
	isolate(t)
	parse(t, rootCmd, "--spending", "NaN")
	_, err := resolveScenario(rootCmd, config.DefaultConfig())
	require.ErrorIs(t, err, forecast.ErrNonFinite)

	isolate(t)
	parse(t, rootCmd, "--currency", "XYZ")
	_, err = resolveScenario(rootCmd, config.DefaultConfig())
	require.ErrorIs(t, err, config.ErrUnknownCurrency)
}

func TestResolveScenarioUnknownChartFallsBack(t *testing.T) {
	isolate(t)
	parse(t, rootCmd, "--chart", "radar")

	s, err := resolveScenario(rootCmd, config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, model.ChartBar, s.Chart)
}

func TestSetupLoggingRejectsUnknownLevel(t *testing.T) {
	isolate(t)
	parse(t, rootCmd, "--log-level", "loud")
	require.Error(t, setupLogging(rootCmd, nil))

	isolate(t)
	parse(t, rootCmd, "--log-level", "debug")
	require.NoError(t, setupLogging(rootCmd, nil))
}

func TestOpenMeterDisabled(t *testing.T) {
	isolate(t)
	cfg := config.DefaultConfig()
	cfg.Metering.Enabled = false

	m, err := openMeter(cfg)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestExportCommandWritesReportAndMeters(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	rootCmd.SetArgs([]string{"export", "--dir", dir, "--format", "json", "--currency", "EUR", "--quiet"})
	require.NoError(t, rootCmd.Execute())

	matches, err := filepath.Glob(filepath.Join(dir, "budget-scenario-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"currency": "EUR"`), "report holds the flag currency")

	m, err := store.Open(config.MeterPath())
	require.NoError(t, err)
	defer func() { _ = m.Close() }()
	scenarios, exports, err := m.Counts()
	require.NoError(t, err)
	assert.Equal(t, int64(1), scenarios)
	assert.Equal(t, int64(1), exports)
}

func TestExportCommandRejectsUnknownFormat(t *testing.T) {
	isolate(t)

	rootCmd.SetArgs([]string{"export", "--dir", t.TempDir(), "--format", "csv", "--quiet"})
	rootCmd.SetErr(new(strings.Builder))
	defer rootCmd.SetErr(nil)
	require.Error(t, rootCmd.Execute())
}
