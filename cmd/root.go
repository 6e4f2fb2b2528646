package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/seventy/internal/app"
	"github.com/theirongolddev/seventy/internal/config"
	"github.com/theirongolddev/seventy/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagDataDir  string
	flagQuiet    bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "seventy",
	Short: "Daily 70% spending tracker",
	Long:  "Log what you earn and spend each day and keep spending within 70% of income.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env is the normal case.
		_ = godotenv.Load()
	},
	RunE:         runSummary,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the ledger database")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// loadConfig reads the config file and applies command-line overrides.
// A broken config file falls back to defaults with a warning.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg
}

// openApp is the shared startup path used by all commands.
// The caller must Close the returned App.
func openApp() *app.App {
	cfg := loadConfig()
	log := logger.NewOrNop(config.LogPath(cfg), config.LogLevel(cfg))

	svc := app.Open(cfg, log)
	if err := svc.Degraded(); err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Storage unavailable, entries last for this run only\n")
	}
	return svc
}

func closeApp(svc *app.App) {
	_ = svc.Close()
	_ = svc.Logger().Sync()
}
