package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagRandom bool

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Quote of the day",
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().BoolVarP(&flagRandom, "random", "r", false, "Pick a fresh quote instead of today's")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	text := svc.Quote()
	if flagRandom {
		text = svc.Motivation().Body
	}
	fmt.Println()
	printQuote(text, svc.QuoteAuthor())
	return nil
}
