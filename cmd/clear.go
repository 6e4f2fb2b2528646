package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var flagYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every entry",
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}

func runClear(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	n := svc.Len()
	if n == 0 {
		fmt.Println("\n  Nothing to clear.")
		return nil
	}

	if !flagYes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete all %d entries?", n)).
			Description("This can't be undone.").
			Affirmative("Delete").
			Negative("Keep").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("confirming clear: %w", err)
		}
		if !confirmed {
			fmt.Println("\n  Kept your entries.")
			return nil
		}
	}

	if err := svc.OnClear(); err != nil {
		fmt.Fprintf(os.Stderr, "  Cleared for this run only: %v\n", err)
		return nil
	}
	fmt.Println("\n  All entries cleared.")
	return nil
}
