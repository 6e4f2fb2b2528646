// Package cmd implements the seventy CLI commands.
package cmd

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:     %s\n", config.DBPath(cfg))
	fmt.Printf("    Date format:  %s\n", cfg.General.DateFormat)
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	fmt.Println()

	fmt.Println("  [Assets]")
	if u := config.AssetsBaseURL(cfg); u != "" {
		fmt.Printf("    Base URL:     %s\n", u)
	} else {
		fmt.Println("    Base URL:     not configured (cache only)")
	}
	fmt.Printf("    Workers:      %d\n", cfg.Assets.Workers)
	fmt.Printf("    Timeout:      %ds\n", cfg.Assets.TimeoutSec)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level:        %s\n", config.LogLevel(cfg))
	fmt.Printf("    File:         %s\n", config.LogPath(cfg))
	fmt.Println()

	fmt.Println("  Run `seventy setup` to reconfigure.")
	return nil
}
