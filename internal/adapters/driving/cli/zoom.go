package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/placement"
)

var (
	zoomPage   int
	zoomWidth  float64
	zoomHeight float64
	zoomSave   bool
)

// terminalSize reports the terminal's columns and rows. Replaced in tests.
var terminalSize = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

var zoomCmd = &cobra.Command{
	Use:   "zoom",
	Short: "Viewport zoom helpers",
}

var zoomFitCmd = &cobra.Command{
	Use:   "fit [session-id]",
	Short: "Compute the zoom that fits a page in the viewport",
	Long: `Compute the largest zoom (never above 100%) at which the page fits the
viewport. The viewport defaults to the current terminal, converted to screen
pixels with tui.cell_width and tui.cell_height; override it with --width and
--height. When the viewport size is unknown the zoom is 100%.`,
	Args: cobra.ExactArgs(1),
	RunE: runZoomFit,
}

func init() {
	zoomFitCmd.Flags().IntVar(&zoomPage, "page", 0, "1-based page (default: the session's current page)")
	zoomFitCmd.Flags().Float64Var(&zoomWidth, "width", 0, "viewport width in screen pixels")
	zoomFitCmd.Flags().Float64Var(&zoomHeight, "height", 0, "viewport height in screen pixels")
	zoomFitCmd.Flags().BoolVar(&zoomSave, "save", false, "store the zoom as the session's viewport")
	zoomCmd.AddCommand(zoomFitCmd)
	rootCmd.AddCommand(zoomCmd)
}

func runZoomFit(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	session, err := placementService.GetSession(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	pageNumber := zoomPage
	if pageNumber == 0 {
		pageNumber = session.CurrentPage
	}
	page, ok := session.Document.Page(pageNumber)
	if !ok {
		return fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange, pageNumber, session.Document.NumPages())
	}

	container := domain.Size{Width: zoomWidth, Height: zoomHeight}
	if !container.IsKnown() {
		container = terminalContainer()
	}

	zoom := placement.CalculateOptimalZoom(container, page)
	cmd.Printf("Page %d (%.0f x %.0f) in %.0f x %.0f viewport: zoom %.2f (%.0f%%)\n",
		pageNumber, page.Width, page.Height, container.Width, container.Height, zoom, zoom*100)

	if zoomSave {
		if err := placementService.SaveViewport(ctx, session.ID, zoom, pageNumber); err != nil {
			return fmt.Errorf("failed to save viewport: %w", err)
		}
		cmd.Println("Saved as the session's viewport.")
	}
	return nil
}

// terminalContainer converts the terminal size to screen pixels.
// Returns a zero size when stdout is not a terminal.
func terminalContainer() domain.Size {
	cols, rows, err := terminalSize()
	if err != nil || cols <= 0 || rows <= 0 {
		return domain.Size{}
	}

	cells := domain.DefaultAppSettings().TUI
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			cells = s.TUI
		}
	}
	return domain.Size{
		Width:  float64(cols * cells.CellWidth),
		Height: float64(rows * cells.CellHeight),
	}
}
