// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list or nudges a gesture up.
	Up key.Binding

	// Down navigates down in a list or nudges a gesture down.
	Down key.Binding

	// Left nudges a gesture left or scrolls the page.
	Left key.Binding

	// Right nudges a gesture right or scrolls the page.
	Right key.Binding

	// Select confirms a selection or commits a gesture.
	Select key.Binding

	// Cancel abandons the current gesture or form.
	Cancel key.Binding

	// NextPage shows the next page.
	NextPage key.Binding

	// PrevPage shows the previous page.
	PrevPage key.Binding

	// ZoomIn increases the zoom by one step.
	ZoomIn key.Binding

	// ZoomOut decreases the zoom by one step.
	ZoomOut key.Binding

	// Fit re-applies the optimal zoom.
	Fit key.Binding

	// Add places a box for the next unassigned recipient.
	Add key.Binding

	// Cycle selects the next box on the page.
	Cycle key.Binding

	// Move starts a move gesture on the selected box.
	Move key.Binding

	// Resize starts a resize gesture on the selected box.
	Resize key.Binding

	// Remove deletes the selected box or list item.
	Remove key.Binding

	// Recipients opens the recipient editor.
	Recipients key.Binding

	// Submit sends the session to the signing API.
	Submit key.Binding

	// New creates a new session or recipient.
	New key.Binding

	// Reload refreshes the current list.
	Reload key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "prev page"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add box"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		Resize: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resize"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		Recipients: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "recipients"),
		),
		Submit: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "submit"),
		),
		New: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// CanvasHelp returns keybindings for the placement canvas.
func (k *KeyMap) CanvasHelp() []key.Binding {
	return []key.Binding{k.Add, k.Cycle, k.Move, k.Resize, k.Remove, k.Fit, k.Help}
}

// GestureHelp returns keybindings while a move or resize is in progress.
func (k *KeyMap) GestureHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Cancel}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.ZoomIn, k.ZoomOut, k.Fit},
		{k.Add, k.Cycle, k.Move, k.Resize, k.Remove},
		{k.Up, k.Down, k.Left, k.Right, k.Select, k.Cancel},
		{k.Recipients, k.Submit, k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
