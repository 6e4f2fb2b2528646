package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/theirongolddev/seventy/internal/assets"
	"github.com/theirongolddev/seventy/internal/cli"

	"github.com/spf13/cobra"
)

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "Manage the offline asset cache",
}

var assetsInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Download every asset into the current cache",
	Args:  cobra.NoArgs,
	RunE:  runAssetsInstall,
}

var assetsActivateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Delete caches left over from older versions",
	Args:  cobra.NoArgs,
	RunE:  runAssetsActivate,
}

var assetsGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Serve one asset, offline first, and write it to stdout",
	Args:  cobra.ExactArgs(1),
	RunE:  runAssetsGet,
}

var assetsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the cache holds",
	Args:  cobra.NoArgs,
	RunE:  runAssetsStatus,
}

func init() {
	assetsCmd.AddCommand(assetsInstallCmd, assetsActivateCmd, assetsGetCmd, assetsStatusCmd)
	rootCmd.AddCommand(assetsCmd)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runAssetsInstall(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	ctx, cancel := signalContext()
	defer cancel()

	m := svc.Assets().Manifest()
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Installing %d assets into %s...\n", len(m.Paths), m.CacheName())
	}
	if err := svc.Assets().Install(ctx); err != nil {
		return fmt.Errorf("install failed, nothing was cached: %w", err)
	}
	fmt.Printf("  Cached %d assets in %s\n", len(m.Paths), m.CacheName())
	return nil
}

func runAssetsActivate(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	ctx, cancel := signalContext()
	defer cancel()

	deleted, err := svc.Assets().Activate(ctx)
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		fmt.Println("  No stale caches.")
		return nil
	}
	fmt.Printf("  Deleted %s\n", strings.Join(deleted, ", "))
	return nil
}

func runAssetsGet(_ *cobra.Command, args []string) error {
	svc := openApp()
	defer closeApp(svc)

	ctx, cancel := signalContext()
	defer cancel()

	resp, err := svc.Assets().Fetch(ctx, args[0])
	if err != nil {
		if errors.Is(err, assets.ErrUnavailable) {
			return fmt.Errorf("%s is not cached and the origin is unreachable", args[0])
		}
		return err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s (%s, %s)\n", resp.Path, resp.ContentType, resp.Source)
	}
	_, err = os.Stdout.Write(resp.Body)
	return err
}

func runAssetsStatus(_ *cobra.Command, _ []string) error {
	svc := openApp()
	defer closeApp(svc)

	st, err := svc.Assets().Status()
	if err != nil {
		return err
	}

	state := cli.RenderStatus("incomplete", false)
	if st.Complete() {
		state = cli.RenderStatus("ready", true)
	}

	others := "-"
	var stale []string
	for _, name := range st.Caches {
		if name != st.Current {
			stale = append(stale, name)
		}
	}
	if len(stale) > 0 {
		others = strings.Join(stale, ", ")
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Offline Cache",
		Headers: []string{"Field", "Value"},
		Rows: [][]string{
			{"Current", st.Current},
			{"Assets", fmt.Sprintf("%d / %d", st.Installed, st.Expected)},
			{"State", state},
			{"Stale caches", others},
		},
	}))
	fmt.Println()
	return nil
}
