// Package settings provides the settings view for the TUI.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
)

// View lists every setting with its current value and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	keys   []string
	values map[string]string
	err    error
	saved  string

	selected int
	editor   *input.Field
	editing  bool

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
		values:          map[string]string{},
		editor:          input.NewField(s, "Value", ""),
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	v.editing = false
	v.saved = ""
	v.editor.Blur()
	return v.loadSettings()
}

// loadSettings returns a command that reads every setting.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		keys := v.settingsService.Keys()
		values := make(map[string]string, len(keys))
		for _, k := range keys {
			val, err := v.settingsService.Value(k)
			if err != nil {
				return messages.SettingsLoaded{Err: err}
			}
			values[k] = val
		}
		return messages.SettingsLoaded{Keys: keys, Values: values}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.keys = msg.Keys
		v.values = msg.Values
		v.err = nil
		if v.selected >= len(v.keys) {
			v.selected = max(len(v.keys)-1, 0)
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			v.editing = true
			return v, v.editor.Focus()
		}
		v.err = nil
		v.saved = msg.Key
		return v, v.loadSettings()

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses in list mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	v.saved = ""
	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSessions}
		}
	case "q":
		return v, func() tea.Msg { return messages.Quit{} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected < len(v.keys) {
			v.editing = true
			v.err = nil
			v.editor.SetValue(v.values[v.keys[v.selected]])
			return v, v.editor.Focus()
		}
	}
	return v, nil
}

// handleEditKey handles key presses while a value is being edited.
func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.err = nil
		v.editor.Blur()
		return v, nil
	case tea.KeyEnter:
		v.editing = false
		v.editor.Blur()
		return v, v.setValue(v.keys[v.selected], v.editor.Value())
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

// setValue returns a command that stores one setting.
func (v *View) setValue(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	} else if v.saved != "" {
		b.WriteString(v.styles.Success.Render(fmt.Sprintf("Saved %s", v.saved)))
		b.WriteString("\n\n")
	}

	if v.editing {
		b.WriteString(v.styles.Subtitle.Render(v.keys[v.selected]))
		b.WriteString("\n")
		b.WriteString(v.editor.View())
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[enter] save  [esc] cancel"))
		return b.String()
	}

	if len(v.keys) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
	}

	width := 0
	for _, k := range v.keys {
		width = max(width, len(k))
	}
	for i, k := range v.keys {
		value := v.values[k]
		if value == "" {
			value = "(not set)"
		}
		line := fmt.Sprintf("%-*s  %s", width, k, value)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] edit  [esc] back  [q] quit")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.editor.SetWidth(width)
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// SelectedIndex returns the selected setting index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
