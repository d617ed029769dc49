package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive scenario dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	scenario, err := resolveScenario(cmd, cfg)
	if err != nil {
		return err
	}

	// Logs go to a file while the alt screen is up.
	if err := os.MkdirAll(config.DataDir(), 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	logPath := filepath.Join(config.DataDir(), "cfohelper.log")
	//nolint:gosec // log path is under the user's data directory
	logf, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = logf.Close() }()
	setLogOutput(logf)

	opts := tui.Options{
		Config:    cfg,
		Scenario:  scenario,
		NeedSetup: !config.Exists(),
	}
	meter, err := openMeter(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("usage meter unavailable, counting in memory")
	}
	if meter != nil {
		defer func() { _ = meter.Close() }()
		opts.Meter = meter
	}

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	p := tea.NewProgram(tui.NewApp(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
