package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [session-id]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive placement editor.

Without a session ID the session list is shown first.

Controls:
  n/p, pgdn/pgup  - Next / previous page
  +/-, f          - Zoom in / out, fit page
  arrows          - Scroll; nudge the box during a gesture
  a               - Add the next signatory's box
  tab             - Select next box
  m / r           - Move / resize the selected box
  enter / esc     - Commit / abandon a gesture
  x               - Remove the selected box
  e               - Edit recipients
  s               - Submit to the signing API
  ?               - Toggle help
  q               - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := &tui.Ports{
		Placement:  placementService,
		Submission: submissionService,
		Settings:   settingsService,
		Watcher:    documentWatcher,
	}

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	// Set up context from command
	app.WithContext(commandContext(cmd))
	if len(args) == 1 {
		app.WithSession(args[0])
	}

	// Create and run the bubbletea program
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
