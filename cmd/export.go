package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagExportFormat string
	flagExportDir    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a scenario report (JSON or XLSX)",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "Report format: json or xlsx (default from config)")
	exportCmd.Flags().StringVarP(&flagExportDir, "dir", "d", "", "Output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s, err := resolveScenario(cmd, cfg)
	if err != nil {
		return err
	}

	format := cfg.ExportFormat()
	if flagExportFormat != "" {
		format = strings.ToLower(flagExportFormat)
		if format != config.FormatJSON && format != config.FormatXLSX {
			return fmt.Errorf("unknown export format %q (want json or xlsx)", flagExportFormat)
		}
	}
	dir := cfg.ExportDir()
	if flagExportDir != "" {
		dir = flagExportDir
	}

	p := forecast.Project(s)
	path, err := report.Write(dir, format, report.Build(p, s.Chart, time.Now()), p)
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Str("format", format).Msg("report written")

	meter, err := openMeter(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("export not metered")
	} else if meter != nil {
		defer func() { _ = meter.Close() }()
		if _, err := meter.RecordScenario(); err != nil {
			log.Warn().Err(err).Msg("recording scenario")
		}
		if _, err := meter.RecordExport(); err != nil {
			log.Warn().Err(err).Msg("recording export")
		}
	}

	fmt.Printf("  Report Exported: %s\n", path)
	return nil
}
