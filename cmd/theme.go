package cmd

import (
	"fmt"

	"github.com/theirongolddev/seventy/internal/prefs"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or change the color theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{prefs.ThemeDark, prefs.ThemeLight, "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(_ *cobra.Command, args []string) error {
	svc := openApp()
	defer closeApp(svc)

	if len(args) == 0 {
		fmt.Printf("  Theme: %s\n", svc.Theme())
		return nil
	}

	name := args[0]
	if name == "toggle" {
		next, err := svc.ToggleTheme()
		if err != nil {
			return err
		}
		name = next
	} else if err := svc.SetTheme(name); err != nil {
		return err
	}

	fmt.Printf("  Theme set to %s\n", name)
	return nil
}
