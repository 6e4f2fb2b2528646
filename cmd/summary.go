package cmd

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Discipline score and quote of the day",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	v := svc.View()
	cur := svc.Config().General.Currency

	fmt.Println()
	fmt.Println(cli.RenderTitle("SEVENTY  Spend at most 70%"))
	fmt.Println()

	if v.Total == 0 {
		fmt.Println("  No entries yet.")
		fmt.Println("  Run `seventy add` to log today's income and spending.")
		fmt.Println()
		printQuote(svc.Quote(), svc.QuoteAuthor())
		return nil
	}

	fmt.Print(cli.RenderScore(v, 30))
	fmt.Println()

	last := v.Rows[len(v.Rows)-1]
	rows := [][]string{
		{"Days tracked", cli.FormatNumber(int64(v.Total))},
		{"Within 70%", cli.FormatRatio(v.Within, v.Total)},
		{"---"},
		{"Last entry", last.Date},
		{"Spent", cli.FormatMoney(last.Spent, cur)},
		{"Allowed", cli.FormatMoney(last.Allowed, cur)},
		{"Status", cli.RenderStatus(last.Status, last.Within)},
		{"---"},
		{"Trend", cli.RenderSparkline(v.Chart.Spent)},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))
	fmt.Println()

	printQuote(svc.Quote(), svc.QuoteAuthor())
	return nil
}

func printQuote(text, author string) {
	fmt.Printf("  \"%s\"\n", text)
	fmt.Printf("    - %s\n\n", author)
}
