// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/styles"
)

// State represents the current canvas state for display.
type State string

const (
	StateReady   State = "ready"
	StateGesture State = "gesture"
	StateBusy    State = "busy"
	StateError   State = "error"
	StateHelp    State = "help"
)

// Bar displays the page, zoom and next signatory prompt plus keybinding hints.
type Bar struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	state     State
	message   string
	page      int
	numPages  int
	scale     float64
	nextLabel string
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		scale:  1,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	// Width includes the style's horizontal padding.
	inner := s.width - s.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		// Hints go first when the bar is too narrow for both sides.
		right = ""
		padding = max(inner-lipgloss.Width(left), 0)
	}

	return s.styles.StatusBar.Width(s.width).MaxHeight(1).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the page, zoom and state.
func (s *Bar) renderLeft() string {
	position := ""
	if s.numPages > 0 {
		position = fmt.Sprintf("Page %d/%d  %.0f%%  ", s.page, s.numPages, s.scale*100)
	}

	switch s.state {
	case StateBusy:
		return s.styles.Muted.Render(position + "Working...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateHelp:
		return s.styles.Normal.Render("Help")
	case StateGesture:
		return s.styles.Warning.Render(position + s.message)
	case StateReady:
	}

	text := position + s.nextLabel
	if s.message != "" {
		text = position + s.message
	}
	return s.styles.Normal.Render(text)
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateGesture:
		bindings = s.keymap.GestureHelp()
	case StateReady:
		bindings = s.keymap.CanvasHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a transient message shown instead of the next label.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPosition sets the page indicator and zoom.
func (s *Bar) SetPosition(page, numPages int, scale float64) {
	s.page = page
	s.numPages = numPages
	s.scale = scale
}

// SetNextLabel sets the "Add Nth signatory" prompt.
func (s *Bar) SetNextLabel(label string) {
	s.nextLabel = label
}

// NextLabel returns the current prompt.
func (s *Bar) NextLabel() string {
	return s.nextLabel
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to the ready state without a message.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
