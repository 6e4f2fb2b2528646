package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/seventy/internal/config"
	"github.com/theirongolddev/seventy/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	cfg := svc.Config()
	vals := tui.NewSetupValues(cfg, svc.Theme())

	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("\n  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	vals.Apply(&cfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	if err := svc.SetTheme(vals.Theme); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `seventy setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
