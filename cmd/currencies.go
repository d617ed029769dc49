package cmd

import (
	"fmt"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/model"

	"github.com/spf13/cobra"
)

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List supported display currencies",
	RunE:  runCurrencies,
}

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "List chart types",
	RunE:  runCharts,
}

func init() {
	rootCmd.AddCommand(currenciesCmd)
	rootCmd.AddCommand(chartsCmd)
}

func runCurrencies(_ *cobra.Command, _ []string) error {
	rows := make([][]string, 0, len(config.Currencies))
	for _, c := range config.Currencies {
		rows = append(rows, []string{c.Code, c.Symbol, c.Name, cli.FormatRate(c.Rate)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Currencies (rates against " + config.BaseCurrencyCode + ")",
		Headers: []string{"Code", "Symbol", "Name", "Rate"},
		Rows:    rows,
	}))
	return nil
}

func runCharts(_ *cobra.Command, _ []string) error {
	kinds := model.ChartKinds()
	rows := make([][]string, 0, len(kinds))
	for i, k := range kinds {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), k.ID(), k.Name(), k.Description()})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Chart Types",
		Headers: []string{"Key", "ID", "Name", "Description"},
		Rows:    rows,
	}))
	return nil
}
