package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/placement"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// ListSessionsInput is the input schema for the list_sessions tool.
type ListSessionsInput struct{}

// ListSessionsOutput is the output schema for the list_sessions tool.
type ListSessionsOutput struct {
	Sessions []SessionSummary `json:"sessions"`
	Count    int              `json:"count"`
}

// SessionSummary is a short description of one session.
type SessionSummary struct {
	ID           string `json:"id"`
	Document     string `json:"document"`
	Pages        int    `json:"pages"`
	Recipients   int    `json:"recipients"`
	Placeholders int    `json:"placeholders"`
	NextLabel    string `json:"next_label"`
}

// SessionInput identifies a session.
type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"the placement session ID"`
}

// PlaceholdersOutput lists the placeholders of a session in signing order.
type PlaceholdersOutput struct {
	Placeholders []PlaceholderOutput `json:"placeholders"`
	Count        int                 `json:"count"`
}

// PlaceholderOutput is a placeholder in document space.
type PlaceholderOutput struct {
	ID            string  `json:"id"`
	RecipientID   string  `json:"recipient_id"`
	RecipientName string  `json:"recipient_name"`
	PageNumber    int     `json:"page_number"`
	Order         int     `json:"order"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
}

// AddPlaceholderInput is the input schema for the add_placeholder tool.
type AddPlaceholderInput struct {
	SessionID   string  `json:"session_id" jsonschema:"the placement session ID"`
	RecipientID string  `json:"recipient_id" jsonschema:"the recipient who signs in the new box"`
	PageNumber  int     `json:"page_number,omitempty" jsonschema:"1-based page number (default 1)"`
	CenterX     float64 `json:"center_x" jsonschema:"screen-space X of the box centre"`
	CenterY     float64 `json:"center_y" jsonschema:"screen-space Y of the box centre, measured from the page top"`
	Scale       float64 `json:"scale,omitempty" jsonschema:"zoom factor the centre was measured at (default 1)"`
}

// UpdatePlaceholderInput is the input schema for the update_placeholder tool.
// Omitted fields are left unchanged.
type UpdatePlaceholderInput struct {
	SessionID     string   `json:"session_id" jsonschema:"the placement session ID"`
	PlaceholderID string   `json:"placeholder_id" jsonschema:"the placeholder to change"`
	X             *float64 `json:"x,omitempty" jsonschema:"new screen-space left edge"`
	Y             *float64 `json:"y,omitempty" jsonschema:"new screen-space top edge, measured from the page top"`
	Width         *float64 `json:"width,omitempty" jsonschema:"new screen-space width"`
	Height        *float64 `json:"height,omitempty" jsonschema:"new screen-space height"`
	Scale         float64  `json:"scale,omitempty" jsonschema:"zoom factor the values were measured at (default 1)"`
}

// RemovePlaceholderInput is the input schema for the remove_placeholder tool.
type RemovePlaceholderInput struct {
	SessionID     string `json:"session_id" jsonschema:"the placement session ID"`
	PlaceholderID string `json:"placeholder_id" jsonschema:"the placeholder to remove"`
}

// OptimalZoomInput is the input schema for the optimal_zoom tool.
type OptimalZoomInput struct {
	SessionID       string  `json:"session_id" jsonschema:"the placement session ID"`
	PageNumber      int     `json:"page_number,omitempty" jsonschema:"1-based page number (default: the session's current page)"`
	ContainerWidth  float64 `json:"container_width" jsonschema:"width of the viewing area in screen units"`
	ContainerHeight float64 `json:"container_height" jsonschema:"height of the viewing area in screen units"`
	Save            bool    `json:"save,omitempty" jsonschema:"remember the result as the session's zoom"`
}

// OptimalZoomOutput is the output schema for the optimal_zoom tool.
type OptimalZoomOutput struct {
	Scale      float64 `json:"scale"`
	PageNumber int     `json:"page_number"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List all placement sessions",
	}, s.handleListSessions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_placeholders",
		Description: "List the signature placeholders of a session in signing order",
	}, s.handleListPlaceholders)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_placeholder",
		Description: "Place a default-sized signature box for a recipient centred on a screen point",
	}, s.handleAddPlaceholder)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_placeholder",
		Description: "Move or resize a signature box using screen-space values",
	}, s.handleUpdatePlaceholder)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_placeholder",
		Description: "Remove a signature box and renumber the signing order",
	}, s.handleRemovePlaceholder)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "optimal_zoom",
		Description: "Compute the largest zoom at which a page fits a viewing area",
	}, s.handleOptimalZoom)
}

// handleListSessions handles the list_sessions tool invocation.
func (s *Server) handleListSessions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSessionsInput,
) (*mcp.CallToolResult, ListSessionsOutput, error) {
	sessions, err := s.ports.Placement.ListSessions(ctx)
	if err != nil {
		return nil, ListSessionsOutput{}, err
	}

	output := ListSessionsOutput{
		Sessions: make([]SessionSummary, len(sessions)),
		Count:    len(sessions),
	}
	for i := range sessions {
		sess := &sessions[i]
		output.Sessions[i] = SessionSummary{
			ID:           sess.ID,
			Document:     sess.Document.Path,
			Pages:        sess.Document.NumPages(),
			Recipients:   len(sess.Recipients),
			Placeholders: len(sess.Placeholders),
			NextLabel:    placement.NewGate(sess.Placeholders).NextLabel(),
		}
	}

	return nil, output, nil
}

// handleListPlaceholders handles the list_placeholders tool invocation.
func (s *Server) handleListPlaceholders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, PlaceholdersOutput, error) {
	sess, err := s.ports.Placement.GetSession(ctx, input.SessionID)
	if err != nil {
		return nil, PlaceholdersOutput{}, err
	}
	return nil, toPlaceholdersOutput(sess.Placeholders), nil
}

// handleAddPlaceholder handles the add_placeholder tool invocation.
func (s *Server) handleAddPlaceholder(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddPlaceholderInput,
) (*mcp.CallToolResult, PlaceholderOutput, error) {
	page := input.PageNumber
	if page <= 0 {
		page = 1
	}

	ph, err := s.ports.Placement.AddPlaceholder(ctx, driving.AddPlaceholderRequest{
		SessionID:   input.SessionID,
		RecipientID: input.RecipientID,
		PageNumber:  page,
		Center:      domain.Point{X: input.CenterX, Y: input.CenterY},
		Scale:       defaultScale(input.Scale),
	})
	if err != nil {
		return nil, PlaceholderOutput{}, err
	}

	return nil, toPlaceholderOutput(*ph), nil
}

// handleUpdatePlaceholder handles the update_placeholder tool invocation.
func (s *Server) handleUpdatePlaceholder(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdatePlaceholderInput,
) (*mcp.CallToolResult, PlaceholdersOutput, error) {
	change := domain.ScreenChange{
		X:      input.X,
		Y:      input.Y,
		Width:  input.Width,
		Height: input.Height,
	}
	if change.IsEmpty() {
		return nil, PlaceholdersOutput{}, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}

	placeholders, err := s.ports.Placement.UpdatePlaceholder(
		ctx, input.SessionID, input.PlaceholderID, change, defaultScale(input.Scale),
	)
	if err != nil {
		return nil, PlaceholdersOutput{}, err
	}

	return nil, toPlaceholdersOutput(placeholders), nil
}

// handleRemovePlaceholder handles the remove_placeholder tool invocation.
func (s *Server) handleRemovePlaceholder(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RemovePlaceholderInput,
) (*mcp.CallToolResult, PlaceholdersOutput, error) {
	placeholders, err := s.ports.Placement.RemovePlaceholder(ctx, input.SessionID, input.PlaceholderID)
	if err != nil {
		return nil, PlaceholdersOutput{}, err
	}
	return nil, toPlaceholdersOutput(placeholders), nil
}

// handleOptimalZoom handles the optimal_zoom tool invocation.
func (s *Server) handleOptimalZoom(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OptimalZoomInput,
) (*mcp.CallToolResult, OptimalZoomOutput, error) {
	sess, err := s.ports.Placement.GetSession(ctx, input.SessionID)
	if err != nil {
		return nil, OptimalZoomOutput{}, err
	}

	pageNumber := input.PageNumber
	if pageNumber <= 0 {
		pageNumber = sess.CurrentPage
	}
	page, ok := sess.Document.Page(pageNumber)
	if !ok {
		return nil, OptimalZoomOutput{}, fmt.Errorf("%w: page %d of %d",
			domain.ErrPageOutOfRange, pageNumber, sess.Document.NumPages())
	}

	container := domain.Size{Width: input.ContainerWidth, Height: input.ContainerHeight}
	scale := placement.CalculateOptimalZoom(container, page)

	if input.Save {
		if err := s.ports.Placement.SaveViewport(ctx, sess.ID, scale, pageNumber); err != nil {
			return nil, OptimalZoomOutput{}, err
		}
	}

	return nil, OptimalZoomOutput{Scale: scale, PageNumber: pageNumber}, nil
}

func defaultScale(scale float64) float64 {
	if scale <= 0 {
		return 1
	}
	return scale
}

func toPlaceholderOutput(p domain.SignaturePlaceholder) PlaceholderOutput {
	return PlaceholderOutput{
		ID:            p.ID,
		RecipientID:   p.RecipientID,
		RecipientName: p.RecipientName,
		PageNumber:    p.PageNumber,
		Order:         p.Order,
		X:             p.X,
		Y:             p.Y,
		Width:         p.Width,
		Height:        p.Height,
	}
}

// toPlaceholdersOutput converts placeholders and sorts them by signing order.
func toPlaceholdersOutput(placeholders []domain.SignaturePlaceholder) PlaceholdersOutput {
	output := PlaceholdersOutput{
		Placeholders: make([]PlaceholderOutput, len(placeholders)),
		Count:        len(placeholders),
	}
	for i, p := range placeholders {
		output.Placeholders[i] = toPlaceholderOutput(p)
	}
	sort.SliceStable(output.Placeholders, func(i, j int) bool {
		return output.Placeholders[i].Order < output.Placeholders[j].Order
	})
	return output
}
