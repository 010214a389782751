// Package sessions provides the session list view for the TUI.
package sessions

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/placement"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// View lists placement sessions and creates new ones from a PDF path.
type View struct {
	ctx              context.Context
	styles           *styles.Styles
	placementService driving.PlacementService

	sessions  []domain.PlacementSession
	selected  int
	pathInput *input.Field
	creating  bool
	notice    string
	width     int
	height    int
	ready     bool
	err       error
	loading   bool
}

// NewView creates a new sessions view.
func NewView(s *styles.Styles, placementService driving.PlacementService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		ctx:              context.Background(),
		styles:           s,
		placementService: placementService,
		sessions:         []domain.PlacementSession{},
		pathInput:        input.NewField(s, "PDF", "/path/to/document.pdf"),
	}
}

// WithContext sets the context used for service calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads sessions.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadSessions()
}

// loadSessions returns a command that loads sessions from the service.
func (v *View) loadSessions() tea.Cmd {
	return func() tea.Msg {
		if v.placementService == nil {
			return messages.SessionsLoaded{Err: fmt.Errorf("placement service not available")}
		}
		sessions, err := v.placementService.ListSessions(v.ctx)
		return messages.SessionsLoaded{Sessions: sessions, Err: err}
	}
}

// Update handles messages for the sessions view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		v.notice = ""
		if v.creating {
			return v.handleCreateKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.SessionsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.sessions = msg.Sessions
		v.err = nil
		if v.selected >= len(v.sessions) {
			v.selected = max(len(v.sessions)-1, 0)
		}
		return v, nil

	case messages.SessionCreated:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		id := msg.Session.ID
		return v, func() tea.Msg { return messages.SessionSelected{ID: id} }

	case messages.SessionDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		return v, v.loadSessions()
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.sessions)-1 {
			v.selected++
		}
	case "enter":
		if v.selected < len(v.sessions) {
			id := v.sessions[v.selected].ID
			return v, func() tea.Msg { return messages.SessionSelected{ID: id} }
		}
	case "a":
		v.creating = true
		v.err = nil
		v.pathInput.Reset()
		return v, v.pathInput.Focus()
	case "d", "delete", "backspace":
		if v.selected < len(v.sessions) {
			return v, v.deleteSession(v.sessions[v.selected].ID)
		}
	case "ctrl+r":
		v.loading = true
		return v, v.loadSessions()
	case "s":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewSettings} }
	case "?":
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	}

	return v, nil
}

// handleCreateKey handles key presses while the path input is open.
func (v *View) handleCreateKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.creating = false
		v.pathInput.Blur()
		return v, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(v.pathInput.Value())
		if path == "" {
			return v, nil
		}
		v.creating = false
		v.pathInput.Blur()
		return v, v.createSession(path)
	}

	var cmd tea.Cmd
	v.pathInput, cmd = v.pathInput.Update(msg)
	return v, cmd
}

// createSession returns a command that loads a PDF into a new session.
func (v *View) createSession(path string) tea.Cmd {
	return func() tea.Msg {
		if v.placementService == nil {
			return messages.SessionCreated{Err: fmt.Errorf("placement service not available")}
		}
		session, err := v.placementService.CreateSession(v.ctx, path)
		return messages.SessionCreated{Session: session, Err: err}
	}
}

// deleteSession returns a command that discards a session.
func (v *View) deleteSession(id string) tea.Cmd {
	return func() tea.Msg {
		if v.placementService == nil {
			return messages.SessionDeleted{ID: id, Err: fmt.Errorf("placement service not available")}
		}
		return messages.SessionDeleted{ID: id, Err: v.placementService.DeleteSession(v.ctx, id)}
	}
}

// View renders the sessions view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Placement Sessions"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	} else if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	switch {
	case v.creating:
		b.WriteString(v.pathInput.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] load  [esc] cancel"))
		return b.String()
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading sessions..."))
	case len(v.sessions) == 0:
		b.WriteString(v.styles.Muted.Render("No sessions. Press [a] to load a PDF."))
	default:
		for i := range v.sessions {
			b.WriteString(v.renderSession(i, &v.sessions[i]))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderSession renders a single session line.
func (v *View) renderSession(index int, session *domain.PlacementSession) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	gate := placement.NewGate(session.Placeholders)
	summary := fmt.Sprintf("%dp  %d/%d placed",
		session.Document.NumPages(),
		len(gate.AssignedRecipientIDs()),
		len(session.Recipients),
	)

	name := session.Name()
	maxNameLen := v.width - len(summary) - 8
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = "..." + name[len(name)-maxNameLen+3:]
	}

	if index == v.selected {
		return v.styles.Selected.Render(fmt.Sprintf("%s%s  %s", indicator, name, summary))
	}
	return v.styles.Normal.Render(indicator+name+"  ") + v.styles.Muted.Render(summary)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[a] new  [enter] open  [d] delete  [ctrl+r] reload  [s] settings  [?] help  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.pathInput.SetWidth(width)
}

// SetNotice shows a one-off message above the list, e.g. a submission receipt.
func (v *View) SetNotice(notice string) {
	v.notice = notice
}

// Notice returns the current notice.
func (v *View) Notice() string {
	return v.notice
}

// Sessions returns the current list of sessions.
func (v *View) Sessions() []domain.PlacementSession {
	return v.sessions
}

// SelectedIndex returns the currently selected session index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Creating reports whether the path input is open.
func (v *View) Creating() bool {
	return v.creating
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
