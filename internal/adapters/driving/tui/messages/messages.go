// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewSessions lists placement sessions.
	ViewSessions ViewType = iota
	// ViewCanvas is the placement canvas for one session.
	ViewCanvas
	// ViewRecipients is the recipient editor for the open session.
	ViewRecipients
	// ViewHelp is the help/keybindings view.
	ViewHelp
	// ViewSettings edits application settings.
	ViewSettings
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewSessions:
		return "sessions"
	case ViewCanvas:
		return "canvas"
	case ViewRecipients:
		return "recipients"
	case ViewHelp:
		return "help"
	case ViewSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// SessionsLoaded carries the list of sessions from the service.
type SessionsLoaded struct {
	Sessions []domain.PlacementSession
	Err      error
}

// SessionSelected asks the app to open a session on the canvas.
type SessionSelected struct {
	ID string
}

// SessionCreated signals a session was created from a PDF path.
type SessionCreated struct {
	Session *domain.PlacementSession
	Err     error
}

// SessionDeleted signals a session was discarded.
type SessionDeleted struct {
	ID  string
	Err error
}

// SessionLoaded carries the latest state of the open session.
// Reloaded is true when the document geometry was re-read from disk.
type SessionLoaded struct {
	Session  *domain.PlacementSession
	Reloaded bool
	Err      error
}

// DocumentChanged signals the open PDF was rewritten on disk.
type DocumentChanged struct {
	SessionID string
}

// AutoScrollTick carries one autoscroll step in screen units.
type AutoScrollTick struct {
	Delta float64
}

// RecipientAdded signals a recipient was added to the open session.
type RecipientAdded struct {
	Recipient *domain.Recipient
	Err       error
}

// RecipientRemoved signals a recipient was removed.
type RecipientRemoved struct {
	ID  string
	Err error
}

// Submitted carries the signing API response for the open session.
type Submitted struct {
	SessionID string
	Receipt   *domain.SubmissionReceipt
	Err       error
}

// SettingsLoaded carries the current value of every setting, in display order.
type SettingsLoaded struct {
	Keys   []string
	Values map[string]string
	Err    error
}

// SettingsSaved signals a single setting was stored.
type SettingsSaved struct {
	Key string
	Err error
}
