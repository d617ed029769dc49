package cmd

import (
	"fmt"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	s := cfg.Scenario
	fmt.Println("  [Scenario]")
	fmt.Printf("    Spending: %g\n", s.Spending)
	fmt.Printf("    Pricing:  %g\n", s.Pricing)
	fmt.Printf("    Hiring:   %g\n", s.Hiring)
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency: %s\n", cfg.Display.Currency)
	fmt.Printf("    Chart:    %s\n", cfg.Display.Chart)
	fmt.Printf("    Theme:    %s\n", cfg.Display.Theme)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Directory: %s\n", cfg.ExportDir())
	fmt.Printf("    Format:    %s\n", cfg.ExportFormat())
	fmt.Println()

	fmt.Println("  [Metering]")
	fmt.Printf("    Enabled:       %v\n", cfg.Metering.Enabled)
	fmt.Printf("    Scenario rate: %s\n", cli.FormatUSD(cfg.Metering.ScenarioRate))
	fmt.Printf("    Export rate:   %s\n", cli.FormatUSD(cfg.Metering.ExportRate))
	fmt.Printf("    Meter file:    %s\n", config.MeterPath())
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:       %s\n", cfg.Server.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Server.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Println()

	fmt.Println("  Run `cfohelper setup` to reconfigure.")
	return nil
}
