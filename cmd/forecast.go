package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/cfohelper/internal/cli"
	"github.com/theirongolddev/cfohelper/internal/config"
	"github.com/theirongolddev/cfohelper/internal/forecast"
	"github.com/theirongolddev/cfohelper/internal/report"

	"github.com/spf13/cobra"
)

var flagForecastJSON bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Print the six-month forecast for a scenario",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().BoolVar(&flagForecastJSON, "json", false, "Print the report document as JSON")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	s, err := resolveScenario(cmd, cfg)
	if err != nil {
		return err
	}
	p := forecast.Project(s)

	if flagForecastJSON {
		return report.Encode(os.Stdout, report.Build(p, s.Chart, time.Now()))
	}

	cur := p.Currency
	in := s.Inputs

	fmt.Println(cli.RenderTitle(fmt.Sprintf("CFO Helper  |  %s (%s)", cur.Name, cur.Code)))
	fmt.Println()
	fmt.Printf("  Spending %s   Pricing %s   Team %s\n",
		cli.FormatMoney(in.Spending*100, cur),
		cli.FormatMoney(in.Pricing*1000, cur),
		cli.FormatHeadcount(in.Hiring))
	fmt.Println()

	rows := make([][]string, 0, len(p.Schedule)+1)
	for _, r := range p.Schedule {
		rows = append(rows, []string{
			r.Month,
			cli.FormatMoney(r.Revenue, cur),
			cli.FormatMoney(r.Expenses, cur),
			cli.RenderSigned(cli.FormatMoney(r.Profit, cur), r.Profit),
		})
	}
	tot := p.Totals
	rows = append(rows, []string{
		"Total",
		cli.FormatMoney(tot.TotalRevenue, cur),
		cli.FormatMoney(tot.TotalExpenses, cur),
		cli.RenderSigned(cli.FormatMoney(tot.TotalProfit, cur), tot.TotalProfit),
	})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly Breakdown",
		Headers: []string{"Month", "Revenue", "Expenses", "Profit"},
		Rows:    rows,
	}))
	fmt.Println()

	conv := p.Converted()
	revenue := make([]float64, len(conv))
	expenses := make([]float64, len(conv))
	profit := make([]float64, len(conv))
	for i, r := range conv {
		revenue[i], expenses[i], profit[i] = r.Revenue, r.Expenses, r.Profit
	}
	fmt.Printf("  Revenue   %s\n", cli.RevenueStyle.Render(cli.RenderSparkline(revenue)))
	fmt.Printf("  Expenses  %s\n", cli.ExpenseStyle.Render(cli.RenderSparkline(expenses)))
	fmt.Printf("  Profit    %s\n", cli.ProfitStyle.Render(cli.RenderSparkline(profit)))
	fmt.Println()
	fmt.Printf("  Profit margin: %s%%\n", cli.FormatMargin(tot.ProfitMargin))
	fmt.Printf("  Peak month:    %s\n", cli.FormatAmount(p.Peak(), cur.Symbol))
	fmt.Println(cli.Muted(fmt.Sprintf("  Chart: %s", s.Chart.Name())))
	return nil
}
