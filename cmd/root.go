// Package cmd implements the cfohelper CLI commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/model"
	"github.com/theirongolddev/cfohelper/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagSpending float64
	flagPricing  float64
	flagHiring   float64
	flagCurrency string
	flagChart    string
	flagLogLevel string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:               "cfohelper",
	Short:             "CFO Helper Agent: budget scenario simulator",
	Long:              "Simulate budget scenarios and forecast six months of revenue, expenses and profit.",
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
	RunE:              runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&flagSpending, "spending", config.SpendingRange.Default, "Monthly spending (x100)")
	pf.Float64Var(&flagPricing, "pricing", config.PricingRange.Default, "Pricing strategy (x1000 revenue per unit)")
	pf.Float64Var(&flagHiring, "hiring", config.HiringRange.Default, "Team size (headcount)")
	pf.StringVarP(&flagCurrency, "currency", "c", "", "Display currency code (USD, EUR, GBP, JPY, CAD, AUD)")
	pf.StringVar(&flagChart, "chart", "", "Chart type (bar, line, area, pie, composed)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
}

// setupLogging configures the global zerolog logger from flags and config.
func setupLogging(cmd *cobra.Command, _ []string) error {
	cfg := config.LoadOrDefault()

	name := cfg.Log.Level
	if flagLogLevel != "" {
		name = flagLogLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if flagQuiet && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}

	zerolog.SetGlobalLevel(level)
	setLogOutput(cmd.ErrOrStderr())
	return nil
}

func setLogOutput(w io.Writer) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()
}

// resolveScenario builds the scenario from config defaults overridden by the
// persistent flags. Slider flags must be finite; currency must be known.
func resolveScenario(cmd *cobra.Command, cfg config.Config) (model.Scenario, error) {
	s := cfg.StartScenario()
	flags := cmd.Flags()

	in := s.Inputs
	if flags.Changed("spending") {
		in.Spending = flagSpending
	}
	if flags.Changed("pricing") {
		in.Pricing = flagPricing
	}
	if flags.Changed("hiring") {
		in.Hiring = flagHiring
	}
	if err := forecast.Validate(in); err != nil {
		return s, err
	}
	s.Inputs = in

	if flagCurrency != "" {
		cur, err := config.ResolveCurrency(flagCurrency)
		if err != nil {
			return s, err
		}
		s.Currency = cur.Code
	}
	if flagChart != "" {
		k, ok := model.ParseChartKind(flagChart)
		if !ok {
			log.Warn().Str("chart", flagChart).Msg("unknown chart type, using bar")
		}
		s.Chart = k
	}
	return s, nil
}

// openMeter opens the usage meter, or returns nil when metering is disabled.
func openMeter(cfg config.Config) (*store.Meter, error) {
	if !cfg.Metering.Enabled {
		return nil, nil
	}
	m, err := store.Open(config.MeterPath())
	if err != nil {
		return nil, fmt.Errorf("opening usage meter: %w", err)
	}
	return m, nil
}

func meterRates(cfg config.Config) store.Rates {
	return store.Rates{Scenario: cfg.Metering.ScenarioRate, Export: cfg.Metering.ExportRate}
}
