package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/views/canvas"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/views/recipients"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/views/sessions"
	settingsview "github.com/custodia-labs/sigplace/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap drives the help view.
	keymap *keymap.KeyMap

	// help renders the keymap.
	help help.Model

	// settings are read at start-up and after each edit.
	settings domain.AppSettings

	// sessionsView lists placement sessions.
	sessionsView *sessions.View

	// canvasView is the placement canvas.
	canvasView *canvas.View

	// recipientsView edits the open session's signers.
	recipientsView *recipients.View

	// settingsView edits application settings.
	settingsView *settingsview.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// previousView is where the help view returns to.
	previousView messages.ViewType

	// initialSession opens straight onto the canvas when set.
	initialSession string

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	settings := domain.DefaultAppSettings()
	if ports.Settings != nil {
		loaded, err := ports.Settings.Get()
		if err != nil {
			logger.Warn("tui: using default settings: %v", err)
		} else {
			settings = *loaded
		}
	}

	s := styles.DefaultStyles()
	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         keymap.DefaultKeyMap(),
		help:           help.New(),
		settings:       settings,
		sessionsView:   sessions.NewView(s, ports.Placement),
		canvasView:     canvas.NewView(s, ports.Placement, ports.Submission, ports.Watcher, settings),
		recipientsView: recipients.NewView(s, ports.Placement),
		settingsView:   settingsview.NewView(s, ports.Settings),
		currentView:    messages.ViewSessions,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.sessionsView.WithContext(ctx)
	a.canvasView.WithContext(ctx)
	a.recipientsView.WithContext(ctx)
	return a
}

// WithSession opens the given session instead of the session list.
func (a *App) WithSession(sessionID string) *App {
	a.initialSession = sessionID
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	start := a.sessionsView.Init()
	if a.initialSession != "" {
		a.currentView = messages.ViewCanvas
		start = a.canvasView.Open(a.initialSession)
	}
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("sigplace"),
		start,
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			a.canvasView.Close()
			return a, tea.Quit
		}
		return a, a.routeKey(msg)

	case messages.ViewChanged:
		return a, a.switchView(msg.View)

	case messages.SessionSelected:
		a.currentView = messages.ViewCanvas
		return a, a.canvasView.Open(msg.ID)

	case messages.SessionsLoaded, messages.SessionCreated, messages.SessionDeleted:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
		return a, cmd

	case messages.SessionLoaded:
		var canvasCmd, recipientsCmd tea.Cmd
		a.canvasView, canvasCmd = a.canvasView.Update(msg)
		a.recipientsView, recipientsCmd = a.recipientsView.Update(msg)
		return a, tea.Batch(canvasCmd, recipientsCmd)

	case messages.DocumentChanged, messages.AutoScrollTick:
		a.canvasView, cmd = a.canvasView.Update(msg)
		return a, cmd

	case messages.RecipientAdded, messages.RecipientRemoved:
		a.recipientsView, cmd = a.recipientsView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		if msg.Err == nil {
			a.reloadSettings()
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.Submitted:
		if msg.Err != nil {
			a.err = msg.Err
			a.canvasView, cmd = a.canvasView.Update(msg)
			return a, cmd
		}
		a.canvasView.Close()
		a.sessionsView.SetNotice(fmt.Sprintf("Submitted as %s (%s)", msg.Receipt.DocumentID, msg.Receipt.Status))
		a.currentView = messages.ViewSessions
		return a, a.sessionsView.Init()

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewCanvas {
			a.canvasView, cmd = a.canvasView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		a.canvasView.Close()
		return a, tea.Quit
	}

	return a, nil
}

// routeKey forwards a key press to the active view.
func (a *App) routeKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewSessions:
		a.sessionsView, cmd = a.sessionsView.Update(msg)
	case messages.ViewCanvas:
		a.canvasView, cmd = a.canvasView.Update(msg)
	case messages.ViewRecipients:
		a.recipientsView, cmd = a.recipientsView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		switch msg.String() {
		case "esc", "?":
			a.currentView = a.previousView
		case "q":
			a.canvasView.Close()
			return tea.Quit
		}
	}
	return cmd
}

// switchView activates a view and runs its initialisation.
func (a *App) switchView(view messages.ViewType) tea.Cmd {
	switch view {
	case messages.ViewSessions:
		a.canvasView.Close()
		a.currentView = view
		return a.sessionsView.Init()
	case messages.ViewCanvas:
		a.currentView = view
		return a.canvasView.Refresh()
	case messages.ViewRecipients:
		a.currentView = view
		a.recipientsView.SetSession(a.canvasView.Session())
		return a.recipientsView.Init()
	case messages.ViewSettings:
		a.canvasView.Close()
		a.currentView = view
		return a.settingsView.Init()
	case messages.ViewHelp:
		if a.currentView != messages.ViewHelp {
			a.previousView = a.currentView
		}
		a.currentView = view
	}
	return nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewCanvas:
		return a.canvasView.View()
	case messages.ViewRecipients:
		return a.recipientsView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.sessionsView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Normal.Render(
		"Boxes are edited in screen space and stored in PDF points, so they\n" +
			"stay put at any zoom. Each recipient gets exactly one box.",
	))
	b.WriteString("\n\n")
	b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("[esc] back  [q] quit"))
	return b.String()
}

// reloadSettings re-reads settings and hands them to the canvas.
func (a *App) reloadSettings() {
	if a.ports.Settings == nil {
		return
	}
	loaded, err := a.ports.Settings.Get()
	if err != nil {
		logger.Warn("tui: keeping previous settings: %v", err)
		return
	}
	a.settings = *loaded
	a.canvasView.SetSettings(a.settings)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Settings returns the settings the app started with.
func (a *App) Settings() domain.AppSettings {
	return a.settings
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.sessionsView.SetDimensions(width, height)
	a.canvasView.SetDimensions(width, height)
	a.recipientsView.SetDimensions(width, height)
	a.settingsView.SetDimensions(width, height)
}
