package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/config"

	"github.com/spf13/cobra"
)

var flagUsageReset bool

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show metered usage and mocked billing",
	RunE:  runUsage,
}

func init() {
	usageCmd.Flags().BoolVar(&flagUsageReset, "reset", false, "Zero the usage counters")
	rootCmd.AddCommand(usageCmd)
}

func runUsage(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	meter, err := openMeter(cfg)
	if err != nil {
		return err
	}
	if meter == nil {
		return errors.New("usage metering is disabled (set [metering] enabled = true)")
	}
	defer func() { _ = meter.Close() }()

	if flagUsageReset {
		if err := meter.Reset(); err != nil {
			return err
		}
		fmt.Println("  Usage counters reset.")
		return nil
	}

	u, err := meter.Usage(meterRates(cfg))
	if err != nil {
		return err
	}
	updated, err := meter.LastUpdated()
	if err != nil {
		return err
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Flexprice Billing (mocked)",
		Headers: []string{"Action", "Count", "Rate", "Billed"},
		Rows: [][]string{
			{"Scenarios", cli.FormatNumber(u.Scenarios), cli.FormatUSD(u.ScenarioRateUSD), cli.FormatUSD(u.ScenarioBilledUSD())},
			{"Exports", cli.FormatNumber(u.Exports), cli.FormatUSD(u.ExportRateUSD), cli.FormatUSD(u.ExportBilledUSD())},
			{"Total", "", "", cli.FormatUSD(u.TotalBilledUSD())},
		},
	}))
	fmt.Println()

	when := "never"
	if !updated.IsZero() {
		when = updated.Local().Format(time.RFC3339)
	}
	fmt.Println(cli.Muted("  Meter: " + config.MeterPath()))
	fmt.Println(cli.Muted("  Last updated: " + when))
	return nil
}
