// Package recipients provides the recipient editor view for the TUI.
package recipients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// View lists the open session's recipients and adds or removes them.
type View struct {
	ctx              context.Context
	styles           *styles.Styles
	placementService driving.PlacementService

	session    *domain.PlacementSession
	selected   int
	nameInput  *input.Field
	emailInput *input.Field
	adding     bool
	width      int
	height     int
	ready      bool
	err        error
}

// NewView creates a new recipients view.
func NewView(s *styles.Styles, placementService driving.PlacementService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:              context.Background(),
		styles:           s,
		placementService: placementService,
		nameInput:        input.NewField(s, "Name", "Jane Doe"),
		emailInput:       input.NewField(s, "Email", "jane@example.com"),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetSession shows the recipients of a session.
func (v *View) SetSession(session *domain.PlacementSession) {
	v.session = session
	if session == nil || v.selected >= len(session.Recipients) {
		v.selected = 0
	}
}

// Init resets the form.
func (v *View) Init() tea.Cmd {
	v.adding = false
	v.err = nil
	v.nameInput.Blur()
	v.emailInput.Blur()
	return nil
}

// Update handles messages for the recipients view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.adding {
			return v.handleFormKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.SessionLoaded:
		if msg.Err == nil && msg.Session != nil {
			v.SetSession(msg.Session)
		}
		return v, nil

	case messages.RecipientAdded:
		if msg.Err != nil {
			v.err = msg.Err
			v.adding = true
			return v, v.nameInput.Focus()
		}
		v.err = nil
		v.nameInput.Reset()
		v.emailInput.Reset()
		return v, v.loadSession()

	case messages.RecipientRemoved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		return v, v.loadSession()
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewCanvas} }
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.session != nil && v.selected < len(v.session.Recipients)-1 {
			v.selected++
		}
	case "a":
		v.adding = true
		v.err = nil
		v.emailInput.Blur()
		return v, v.nameInput.Focus()
	case "d", "x", "delete", "backspace":
		if v.session != nil && v.selected < len(v.session.Recipients) {
			return v, v.removeRecipient(v.session.Recipients[v.selected].ID)
		}
	}
	return v, nil
}

// handleFormKey handles key presses while the add form is open.
func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.adding = false
		v.nameInput.Blur()
		v.emailInput.Blur()
		return v, nil
	case tea.KeyTab, tea.KeyShiftTab:
		return v, v.toggleFocus()
	case tea.KeyEnter:
		if v.nameInput.Focused() {
			return v, v.toggleFocus()
		}
		v.adding = false
		v.nameInput.Blur()
		v.emailInput.Blur()
		return v, v.addRecipient(v.nameInput.Value(), v.emailInput.Value())
	}

	var cmd tea.Cmd
	if v.nameInput.Focused() {
		v.nameInput, cmd = v.nameInput.Update(msg)
	} else {
		v.emailInput, cmd = v.emailInput.Update(msg)
	}
	return v, cmd
}

func (v *View) toggleFocus() tea.Cmd {
	if v.nameInput.Focused() {
		v.nameInput.Blur()
		return v.emailInput.Focus()
	}
	v.emailInput.Blur()
	return v.nameInput.Focus()
}

// addRecipient returns a command that adds a signer.
func (v *View) addRecipient(name, email string) tea.Cmd {
	session := v.session
	return func() tea.Msg {
		if v.placementService == nil || session == nil {
			return messages.RecipientAdded{Err: errors.New("no session open")}
		}
		r, err := v.placementService.AddRecipient(v.ctx, session.ID, name, email)
		return messages.RecipientAdded{Recipient: r, Err: err}
	}
}

// removeRecipient returns a command that removes a signer and their box.
func (v *View) removeRecipient(id string) tea.Cmd {
	session := v.session
	return func() tea.Msg {
		if v.placementService == nil || session == nil {
			return messages.RecipientRemoved{ID: id, Err: errors.New("no session open")}
		}
		return messages.RecipientRemoved{ID: id, Err: v.placementService.RemoveRecipient(v.ctx, session.ID, id)}
	}
}

// loadSession returns a command that refetches the session.
func (v *View) loadSession() tea.Cmd {
	session := v.session
	return func() tea.Msg {
		if v.placementService == nil || session == nil {
			return nil
		}
		s, err := v.placementService.GetSession(v.ctx, session.ID)
		return messages.SessionLoaded{Session: s, Err: err}
	}
}

// View renders the recipients view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Recipients"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.adding {
		b.WriteString(v.nameInput.View())
		b.WriteString("\n")
		b.WriteString(v.emailInput.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[tab] switch field  [enter] save  [esc] cancel"))
		return b.String()
	}

	if v.session == nil || len(v.session.Recipients) == 0 {
		b.WriteString(v.styles.Muted.Render("No recipients yet. Press [a] to add one."))
	} else {
		for i, r := range v.session.Recipients {
			b.WriteString(v.renderRecipient(i, r))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[a] add  [d] remove  [esc] back to page  [q] quit"))
	return b.String()
}

// renderRecipient renders one signer with their signing position.
func (v *View) renderRecipient(index int, r domain.Recipient) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	state := "not placed"
	for _, p := range v.session.Placeholders {
		if p.RecipientID == r.ID {
			state = fmt.Sprintf("#%d on page %d", p.Order, p.PageNumber)
		}
	}

	text := fmt.Sprintf("%s%s <%s>", indicator, r.Name, r.Email)
	if index == v.selected {
		return v.styles.Selected.Render(text + "  " + state)
	}
	return v.styles.Normal.Render(text+"  ") + v.styles.Muted.Render(state)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.nameInput.SetWidth(width)
	v.emailInput.SetWidth(width)
}

// Adding reports whether the add form is open.
func (v *View) Adding() bool {
	return v.adding
}

// SelectedIndex returns the selected recipient index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
