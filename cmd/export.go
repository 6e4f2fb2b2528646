package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/seventy/internal/app"

	"github.com/spf13/cobra"
)

var flagOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every entry as CSV",
	Long:  "Write every entry as CSV. The default file is 7030-entries-YYYY-MM-DD.csv in the current directory; -o - writes to stdout.",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output path, or - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	if svc.Len() == 0 {
		fmt.Println("\n  No entries to export.")
		return nil
	}

	if flagOutput == "-" {
		if err := svc.OnExport(os.Stdout); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	path := flagOutput
	if path == "" {
		path = svc.ExportFileName()
	}
	if err := writeExport(svc, path); err != nil {
		return err
	}

	if !flagQuiet {
		abs, _ := filepath.Abs(path)
		fmt.Printf("\n  Exported %d entries to %s\n", svc.Len(), abs)
	}
	return nil
}

func writeExport(svc *app.App, path string) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the user's own flag
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := svc.OnExport(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		if app.IsEmpty(err) {
			return nil
		}
		return fmt.Errorf("writing export: %w", err)
	}
	return f.Close()
}
