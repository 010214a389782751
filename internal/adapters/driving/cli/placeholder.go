package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/geometry"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// Placeholder flags. Positions and sizes are screen pixels at --scale.
var (
	placeholderPage   int
	placeholderScale  float64
	placeholderX      float64
	placeholderY      float64
	placeholderWidth  float64
	placeholderHeight float64
)

var placeholderCmd = &cobra.Command{
	Use:   "placeholder",
	Short: "Manage signature placeholders",
	Long: `Add, move, resize and remove signature boxes.

Coordinates given on the command line are screen pixels measured from the
top-left of the page at the zoom given by --scale (1 = 100%). They are
converted to PDF document space before they are stored.`,
}

var placeholderAddCmd = &cobra.Command{
	Use:   "add [session-id] [recipient-id]",
	Short: "Place a default-sized box for a recipient",
	Long: `Place a default-sized box for a recipient, centred on --x/--y.
Without --x/--y the box is centred on the page.`,
	Args: cobra.ExactArgs(2),
	RunE: runPlaceholderAdd,
}

var placeholderListCmd = &cobra.Command{
	Use:   "list [session-id]",
	Short: "List placeholders in signing order",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaceholderList,
}

var placeholderMoveCmd = &cobra.Command{
	Use:   "move [session-id] [placeholder-id]",
	Short: "Move a box so its top-left corner is at --x/--y",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaceholderMove,
}

var placeholderResizeCmd = &cobra.Command{
	Use:   "resize [session-id] [placeholder-id]",
	Short: "Resize a box keeping its top-left corner",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaceholderResize,
}

var placeholderReorderCmd = &cobra.Command{
	Use:   "reorder [session-id] [placeholder-id] [order]",
	Short: "Change a box's position in the signing sequence",
	Args:  cobra.ExactArgs(3),
	RunE:  runPlaceholderReorder,
}

var placeholderRemoveCmd = &cobra.Command{
	Use:   "remove [session-id] [placeholder-id]",
	Short: "Remove a box and renumber the rest",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaceholderRemove,
}

func init() {
	placeholderAddCmd.Flags().IntVar(&placeholderPage, "page", 0, "1-based page (default: the session's current page)")
	placeholderAddCmd.Flags().Float64Var(&placeholderX, "x", 0, "screen X of the box centre")
	placeholderAddCmd.Flags().Float64Var(&placeholderY, "y", 0, "screen Y of the box centre")

	placeholderMoveCmd.Flags().Float64Var(&placeholderX, "x", 0, "screen X of the top-left corner")
	placeholderMoveCmd.Flags().Float64Var(&placeholderY, "y", 0, "screen Y of the top-left corner")
	_ = placeholderMoveCmd.MarkFlagRequired("x")
	_ = placeholderMoveCmd.MarkFlagRequired("y")

	placeholderResizeCmd.Flags().Float64Var(&placeholderWidth, "width", 0, "screen width")
	placeholderResizeCmd.Flags().Float64Var(&placeholderHeight, "height", 0, "screen height")
	_ = placeholderResizeCmd.MarkFlagRequired("width")
	_ = placeholderResizeCmd.MarkFlagRequired("height")

	for _, c := range []*cobra.Command{placeholderAddCmd, placeholderMoveCmd, placeholderResizeCmd} {
		c.Flags().Float64Var(&placeholderScale, "scale", 1, "zoom factor the coordinates were measured at")
	}

	placeholderCmd.AddCommand(placeholderAddCmd)
	placeholderCmd.AddCommand(placeholderListCmd)
	placeholderCmd.AddCommand(placeholderMoveCmd)
	placeholderCmd.AddCommand(placeholderResizeCmd)
	placeholderCmd.AddCommand(placeholderReorderCmd)
	placeholderCmd.AddCommand(placeholderRemoveCmd)
	rootCmd.AddCommand(placeholderCmd)
}

func runPlaceholderAdd(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}
	ctx := commandContext(cmd)

	session, err := placementService.GetSession(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}

	pageNumber := placeholderPage
	if pageNumber == 0 {
		pageNumber = session.CurrentPage
	}

	center := domain.Point{X: placeholderX, Y: placeholderY}
	if !cmd.Flags().Changed("x") || !cmd.Flags().Changed("y") {
		page, ok := session.Document.Page(pageNumber)
		if !ok {
			return fmt.Errorf("failed to add placeholder: %w: page %d", domain.ErrPageOutOfRange, pageNumber)
		}
		size := geometry.ScreenPageSize(page, placeholderScale)
		if !cmd.Flags().Changed("x") {
			center.X = size.Width / 2
		}
		if !cmd.Flags().Changed("y") {
			center.Y = size.Height / 2
		}
	}

	p, err := placementService.AddPlaceholder(ctx, driving.AddPlaceholderRequest{
		SessionID:   args[0],
		RecipientID: args[1],
		PageNumber:  pageNumber,
		Center:      center,
		Scale:       placeholderScale,
	})
	if err != nil {
		return fmt.Errorf("failed to add placeholder: %w", err)
	}

	cmd.Printf("Added placeholder %s for %s (#%d) on page %d\n", p.ID, p.RecipientName, p.Order, p.PageNumber)
	cmd.Printf("  x=%.2f y=%.2f w=%.2f h=%.2f\n", p.X, p.Y, p.Width, p.Height)
	return nil
}

func runPlaceholderList(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	session, err := placementService.GetSession(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	printPlaceholders(cmd, sortedByOrder(session.Placeholders))
	return nil
}

func runPlaceholderMove(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	change := domain.MoveTo(placeholderX, placeholderY)
	return updatePlaceholder(cmd, args[0], args[1], change, "Moved")
}

func runPlaceholderResize(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}
	if placeholderWidth <= 0 || placeholderHeight <= 0 {
		return fmt.Errorf("%w: width and height must be positive", domain.ErrInvalidInput)
	}

	session, err := placementService.GetSession(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	current, ok := session.Placeholder(args[1])
	if !ok {
		return fmt.Errorf("%w: placeholder %s", domain.ErrNotFound, args[1])
	}
	page, _ := session.Document.Page(current.PageNumber)

	// The handle is at the bottom-right, so the top-left corner stays put.
	box := geometry.ToScreen(current, page, placeholderScale)
	change := domain.ResizeTo(placeholderWidth, placeholderHeight)
	change.X = &box.X
	change.Y = &box.Y
	return updatePlaceholder(cmd, args[0], args[1], change, "Resized")
}

func updatePlaceholder(cmd *cobra.Command, sessionID, id string, change domain.ScreenChange, verb string) error {
	list, err := placementService.UpdatePlaceholder(commandContext(cmd), sessionID, id, change, placeholderScale)
	if err != nil {
		return fmt.Errorf("failed to update placeholder: %w", err)
	}
	for _, p := range list {
		if p.ID == id {
			cmd.Printf("%s placeholder %s: x=%.2f y=%.2f w=%.2f h=%.2f\n", verb, p.ID, p.X, p.Y, p.Width, p.Height)
			return nil
		}
	}
	return fmt.Errorf("%w: placeholder %s", domain.ErrNotFound, id)
}

func runPlaceholderReorder(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}
	order, err := strconv.Atoi(args[2])
	if err != nil || order < 1 {
		return fmt.Errorf("%w: order must be a positive integer", domain.ErrInvalidInput)
	}

	list, err := placementService.ReorderPlaceholder(commandContext(cmd), args[0], args[1], order)
	if err != nil {
		return fmt.Errorf("failed to reorder placeholder: %w", err)
	}
	printPlaceholders(cmd, sortedByOrder(list))
	return nil
}

func runPlaceholderRemove(cmd *cobra.Command, args []string) error {
	if err := requirePlacement(); err != nil {
		return err
	}

	list, err := placementService.RemovePlaceholder(commandContext(cmd), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to remove placeholder: %w", err)
	}
	cmd.Printf("Removed placeholder %s\n", args[1])
	printPlaceholders(cmd, sortedByOrder(list))
	return nil
}

func sortedByOrder(placeholders []domain.SignaturePlaceholder) []domain.SignaturePlaceholder {
	result := make([]domain.SignaturePlaceholder, len(placeholders))
	copy(result, placeholders)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result
}
