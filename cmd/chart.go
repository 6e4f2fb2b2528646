package cmd

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/cli"

	"github.com/spf13/cobra"
)

var flagChartWidth int

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Spent vs allowed bar chart",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().IntVarP(&flagChartWidth, "width", "w", 60, "Chart width in columns")
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	v := svc.View()
	if v.Chart.Len() == 0 {
		fmt.Println("\n  Nothing to chart yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENT vs ALLOWED (70%)"))
	fmt.Println()
	fmt.Print(cli.RenderChart(v.Chart, flagChartWidth, svc.Config().General.Currency))
	fmt.Println()
	return nil
}
