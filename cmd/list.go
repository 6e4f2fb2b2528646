package cmd

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/cli"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Every entry with its allowed amount and status",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	v := svc.View()
	if v.Total == 0 {
		fmt.Println("\n  No entries yet.")
		return nil
	}

	fmt.Println()
	fmt.Print(cli.RenderEntries(v, svc.Config().General.Currency))
	fmt.Println()
	fmt.Println("  " + v.Score)
	fmt.Println()
	return nil
}
