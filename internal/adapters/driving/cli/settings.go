package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure placement defaults, zoom bounds, autoscroll,
terminal cell size and the signing API.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a single setting",
	Long: `Set a single setting by key, for example:

  sigplace settings set zoom.max 1.5
  sigplace settings set api.base_url https://sign.example.com`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Placement]")
	cmd.Printf("  Default box: %.0f x %.0f screen px\n", settings.Placement.DefaultWidth, settings.Placement.DefaultHeight)
	cmd.Println()

	cmd.Println("[Zoom]")
	cmd.Printf("  Range: %.0f%% - %.0f%%, step %.0f%%\n",
		settings.Zoom.Min*100, settings.Zoom.Max*100, settings.Zoom.Step*100)
	cmd.Println()

	cmd.Println("[Autoscroll]")
	cmd.Printf("  Interval: %s\n", settings.AutoScroll.Interval)
	cmd.Printf("  Edge: %.0f px, speed %.0f px/tick\n", settings.AutoScroll.Edge, settings.AutoScroll.Speed)
	cmd.Println()

	cmd.Println("[TUI]")
	cmd.Printf("  Cell: %d x %d screen px\n", settings.TUI.CellWidth, settings.TUI.CellHeight)
	cmd.Println()

	cmd.Println("[API]")
	if settings.API.IsConfigured() {
		cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	} else {
		cmd.Println("  Base URL: (not set, submit disabled)")
	}
	cmd.Printf("  Rate: %.1f requests/s\n", settings.API.RatePerSecond)
	cmd.Println()

	cmd.Println("Keys:")
	for _, k := range settingsService.Keys() {
		cmd.Printf("  %s\n", k)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}
