// Package canvas provides the placement canvas view for the TUI.
//
// The current page is drawn as a grid of terminal cells, each standing for
// CellWidth x CellHeight screen pixels at the current zoom. Placeholders are
// drawn from their stored document-space geometry, so zooming or scrolling
// never changes what is saved.
package canvas

import (
	"context"
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/placement"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// View is the placement canvas for one session.
type View struct {
	ctx               context.Context
	styles            *styles.Styles
	keymap            *keymap.KeyMap
	placementService  driving.PlacementService
	submissionService driving.SubmissionService
	watcher           driven.DocumentWatcher
	settings          domain.AppSettings

	session          *domain.PlacementSession
	viewport         *placement.Viewport
	selectedID       string
	pendingRecipient string
	gesture          *gesture
	scroller         *placement.AutoScroller
	scrollCh         chan float64
	watchCh          <-chan struct{}
	watchCancel      context.CancelFunc
	statusBar        *status.Bar

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a canvas. Submission and watcher may be nil.
func NewView(
	s *styles.Styles,
	placementService driving.PlacementService,
	submissionService driving.SubmissionService,
	watcher driven.DocumentWatcher,
	settings domain.AppSettings,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()

	v := &View{
		ctx:               context.Background(),
		styles:            s,
		keymap:            km,
		placementService:  placementService,
		submissionService: submissionService,
		watcher:           watcher,
		settings:          settings,
		viewport:          placement.NewViewport(settings.Zoom),
		scrollCh:          make(chan float64, 1),
		statusBar:         status.NewBar(s, km),
	}
	v.scroller = v.newScroller()
	return v
}

func (v *View) newScroller() *placement.AutoScroller {
	return placement.NewAutoScroller(v.settings.AutoScroll.Interval, func(delta float64) {
		// The tick goroutine must never block on the UI.
		select {
		case v.scrollCh <- delta:
		default:
		}
	})
}

// SetSettings swaps zoom bounds, autoscroll tuning and cell size. Any open
// session is closed first.
func (v *View) SetSettings(settings domain.AppSettings) {
	v.Close()
	v.settings = settings
	v.viewport = placement.NewViewport(settings.Zoom)
	v.scroller = v.newScroller()
	if v.ready {
		v.SetDimensions(v.width, v.height)
	}
}

// WithContext sets the context used for service calls, the watcher and
// the autoscroller.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Open loads a session onto the canvas, closing any previous one.
func (v *View) Open(sessionID string) tea.Cmd {
	v.Close()
	v.err = nil
	v.statusBar.Clear()
	v.statusBar.SetState(status.StateBusy)
	return v.loadSession(sessionID, false)
}

// Close abandons any gesture, stops watching and forgets the session.
func (v *View) Close() {
	v.endGesture()
	if v.watchCancel != nil {
		v.watchCancel()
		v.watchCancel = nil
	}
	v.watchCh = nil
	v.session = nil
	v.selectedID = ""
	v.pendingRecipient = ""
}

// Refresh reloads the open session after an edit made elsewhere.
func (v *View) Refresh() tea.Cmd {
	if v.session == nil {
		return nil
	}
	return v.loadSession(v.session.ID, false)
}

// loadSession returns a command that fetches a session.
func (v *View) loadSession(id string, reloaded bool) tea.Cmd {
	return func() tea.Msg {
		if v.placementService == nil {
			return messages.SessionLoaded{Err: errors.New("placement service not available")}
		}
		session, err := v.placementService.GetSession(v.ctx, id)
		return messages.SessionLoaded{Session: session, Reloaded: reloaded, Err: err}
	}
}

// mutate runs a service call and then reloads the session.
func (v *View) mutate(op func(ctx context.Context) error) tea.Cmd {
	id := v.session.ID
	v.statusBar.SetState(status.StateBusy)
	return func() tea.Msg {
		if err := op(v.ctx); err != nil {
			return messages.SessionLoaded{Err: err}
		}
		session, err := v.placementService.GetSession(v.ctx, id)
		return messages.SessionLoaded{Session: session, Err: err}
	}
}

// Init implements the view lifecycle; loading starts from Open.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the canvas.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.session == nil {
			if msg.Type == tea.KeyEsc {
				return v, backToSessions
			}
			return v, nil
		}
		if v.gesture != nil {
			return v, v.handleGestureKey(msg)
		}
		return v, v.handleKeyMsg(msg)

	case messages.SessionLoaded:
		return v, v.handleSessionLoaded(msg)

	case messages.DocumentChanged:
		if v.session == nil || msg.SessionID != v.session.ID {
			return v, nil
		}
		logger.Debug("canvas: %s changed on disk, reloading", v.session.Document.Path)
		v.endGesture()
		return v, tea.Batch(v.reloadDocument(), v.waitForChange())

	case messages.AutoScrollTick:
		return v, v.handleAutoScroll(msg.Delta)

	case messages.Submitted:
		if msg.Err != nil {
			v.setError(msg.Err)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	return v, nil
}

// handleSessionLoaded applies a fetched session to the viewport.
func (v *View) handleSessionLoaded(msg messages.SessionLoaded) tea.Cmd {
	if msg.Err != nil {
		if v.session == nil {
			v.err = msg.Err
		}
		v.setError(msg.Err)
		return nil
	}

	first := v.session == nil || v.session.ID != msg.Session.ID
	v.session = msg.Session
	v.err = nil
	v.statusBar.Clear()

	var cmd tea.Cmd
	switch {
	case first:
		v.viewport.Load(v.session.Document.NumPages())
		if v.session.Scale != 1 || v.session.CurrentPage > 1 {
			v.viewport.Restore(v.session.Scale, v.session.CurrentPage)
		}
		cmd = v.startWatching()
	case msg.Reloaded:
		page := v.viewport.CurrentPage()
		v.viewport.Load(v.session.Document.NumPages())
		v.viewport.GoTo(page)
		v.statusBar.SetMessage("Document reloaded")
	}
	v.autoFit()

	if v.pendingRecipient != "" {
		for _, p := range v.session.Placeholders {
			if p.RecipientID == v.pendingRecipient {
				v.selectedID = p.ID
			}
		}
		v.pendingRecipient = ""
	}
	if _, ok := v.session.Placeholder(v.selectedID); !ok {
		v.selectedID = ""
	}

	v.refreshStatus()
	return cmd
}

// handleKeyMsg handles key presses outside a gesture.
//
//nolint:gocyclo // flat key dispatch
func (v *View) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	km := v.keymap
	key := msg.String()
	v.statusBar.Clear()

	switch {
	case keymap.Matches(key, km.Quit):
		return func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(key, km.Back):
		saved := v.saveViewport()
		v.Close()
		return tea.Batch(saved, backToSessions)
	case keymap.Matches(key, km.Help):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }
	case keymap.Matches(key, km.Recipients):
		return func() tea.Msg { return messages.ViewChanged{View: messages.ViewRecipients} }
	case keymap.Matches(key, km.NextPage):
		v.viewport.Next()
		return v.afterViewportChange()
	case keymap.Matches(key, km.PrevPage):
		v.viewport.Previous()
		return v.afterViewportChange()
	case keymap.Matches(key, km.ZoomIn):
		v.viewport.ZoomIn()
		return v.afterViewportChange()
	case keymap.Matches(key, km.ZoomOut):
		v.viewport.ZoomOut()
		return v.afterViewportChange()
	case keymap.Matches(key, km.Fit):
		if page, ok := v.currentPageDims(); ok {
			v.viewport.Fit(page)
		}
		return v.afterViewportChange()
	case keymap.Matches(key, km.Add):
		return v.addNext()
	case keymap.Matches(key, km.Cycle):
		v.cycleSelection()
	case keymap.Matches(key, km.Move):
		v.startGesture(GestureMove)
	case keymap.Matches(key, km.Resize):
		v.startGesture(GestureResize)
	case keymap.Matches(key, km.Remove):
		return v.removeSelected()
	case keymap.Matches(key, km.Submit):
		return v.submit()
	case keymap.Matches(key, km.Up):
		v.scroll(0, -v.cellHeight())
	case keymap.Matches(key, km.Down):
		v.scroll(0, v.cellHeight())
	case keymap.Matches(key, km.Left):
		v.scroll(-v.cellWidth(), 0)
	case keymap.Matches(key, km.Right):
		v.scroll(v.cellWidth(), 0)
	}

	v.refreshStatus()
	return nil
}

// handleGestureKey handles key presses while a gesture is in progress.
func (v *View) handleGestureKey(msg tea.KeyMsg) tea.Cmd {
	km := v.keymap
	key := msg.String()

	switch {
	case key == "ctrl+c":
		v.endGesture()
		return func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(key, km.Select):
		return v.commitGesture()
	case keymap.Matches(key, km.Cancel):
		v.abandonGesture()
	case keymap.Matches(key, km.Up):
		return v.nudge(0, -v.cellHeight())
	case keymap.Matches(key, km.Down):
		return v.nudge(0, v.cellHeight())
	case keymap.Matches(key, km.Left):
		return v.nudge(-v.cellWidth(), 0)
	case keymap.Matches(key, km.Right):
		return v.nudge(v.cellWidth(), 0)
	}
	return nil
}

// addNext places a box for the first recipient without one, centred on
// the visible part of the page.
func (v *View) addNext() tea.Cmd {
	if len(v.session.Recipients) == 0 {
		v.statusBar.SetMessage("Add a recipient first [e]")
		return nil
	}
	unassigned := placement.NewGate(v.session.Placeholders).Unassigned(v.session.Recipients)
	if len(unassigned) == 0 {
		v.statusBar.SetMessage("Every recipient has a box")
		return nil
	}
	page, ok := v.currentPageDims()
	if !ok {
		v.setError(domain.ErrNoDocument)
		return nil
	}

	recipient := unassigned[0]
	v.pendingRecipient = recipient.ID
	req := driving.AddPlaceholderRequest{
		SessionID:   v.session.ID,
		RecipientID: recipient.ID,
		PageNumber:  v.viewport.CurrentPage(),
		Center:      v.viewport.VisibleCenter(page),
		Scale:       v.viewport.Scale(),
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.placementService.AddPlaceholder(ctx, req)
		return err
	})
}

// removeSelected deletes the selected box; the service renumbers the rest.
func (v *View) removeSelected() tea.Cmd {
	if v.selectedID == "" {
		v.statusBar.SetMessage("Select a box first [tab]")
		return nil
	}
	sessionID, id := v.session.ID, v.selectedID
	v.selectedID = ""
	return v.mutate(func(ctx context.Context) error {
		_, err := v.placementService.RemovePlaceholder(ctx, sessionID, id)
		return err
	})
}

// submit uploads the session through the submission service.
func (v *View) submit() tea.Cmd {
	if v.submissionService == nil {
		v.setError(domain.ErrSubmissionDisabled)
		return nil
	}
	sessionID := v.session.ID
	v.statusBar.SetState(status.StateBusy)
	return func() tea.Msg {
		receipt, err := v.submissionService.Submit(v.ctx, sessionID)
		return messages.Submitted{SessionID: sessionID, Receipt: receipt, Err: err}
	}
}

// cycleSelection selects the next box on the current page in signing order.
func (v *View) cycleSelection() {
	onPage := v.placeholdersOnPage()
	if len(onPage) == 0 {
		v.selectedID = ""
		v.statusBar.SetMessage("No boxes on this page")
		return
	}
	next := 0
	for i, p := range onPage {
		if p.ID == v.selectedID {
			next = (i + 1) % len(onPage)
		}
	}
	v.selectedID = onPage[next].ID
}

// scroll moves the visible part of the page.
func (v *View) scroll(dx, dy float64) {
	if page, ok := v.currentPageDims(); ok {
		v.viewport.ScrollBy(dx, dy, page)
	}
}

// afterViewportChange drops a selection that left the page and persists
// the zoom and page.
func (v *View) afterViewportChange() tea.Cmd {
	if p, ok := v.selectedPlaceholder(); ok && p.PageNumber != v.viewport.CurrentPage() {
		v.selectedID = ""
	}
	v.refreshStatus()
	return v.saveViewport()
}

// saveViewport returns a command that remembers zoom and page.
func (v *View) saveViewport() tea.Cmd {
	if v.session == nil {
		return nil
	}
	sessionID := v.session.ID
	scale, page := v.viewport.Scale(), v.viewport.CurrentPage()
	return func() tea.Msg {
		if err := v.placementService.SaveViewport(v.ctx, sessionID, scale, page); err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return nil
	}
}

// autoFit applies the one-shot fit once both the page and the container
// sizes are known.
func (v *View) autoFit() {
	if page, ok := v.currentPageDims(); ok {
		v.viewport.AutoFit(page)
	}
}

// startWatching subscribes to changes of the open PDF.
func (v *View) startWatching() tea.Cmd {
	if v.watcher == nil || v.session.Document.Path == "" {
		return nil
	}
	ctx, cancel := context.WithCancel(v.ctx)
	ch, err := v.watcher.Watch(ctx, v.session.Document.Path)
	if err != nil {
		cancel()
		logger.Warn("canvas: not watching %s: %v", v.session.Document.Path, err)
		return nil
	}
	v.watchCancel = cancel
	v.watchCh = ch
	return v.waitForChange()
}

// waitForChange returns a command that blocks until the PDF changes.
func (v *View) waitForChange() tea.Cmd {
	ch := v.watchCh
	if ch == nil || v.session == nil {
		return nil
	}
	sessionID := v.session.ID
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return messages.DocumentChanged{SessionID: sessionID}
	}
}

// reloadDocument re-reads page geometry and triggers a fresh auto-fit.
func (v *View) reloadDocument() tea.Cmd {
	sessionID := v.session.ID
	return func() tea.Msg {
		session, err := v.placementService.ReloadDocument(v.ctx, sessionID)
		return messages.SessionLoaded{Session: session, Reloaded: true, Err: err}
	}
}

// refreshStatus syncs the status bar with the viewport and gate.
func (v *View) refreshStatus() {
	if v.session == nil {
		return
	}
	v.statusBar.SetPosition(v.viewport.CurrentPage(), v.viewport.NumPages(), v.viewport.Scale())
	v.statusBar.SetNextLabel(placement.NewGate(v.session.Placeholders).NextLabel())
	if v.gesture != nil {
		v.statusBar.SetState(status.StateGesture)
		v.statusBar.SetMessage(fmt.Sprintf("%s %s", v.gesture.kind, v.gesture.name))
		return
	}
	if v.statusBar.State() != status.StateError {
		v.statusBar.SetState(status.StateReady)
	}
}

func (v *View) setError(err error) {
	v.statusBar.SetState(status.StateError)
	v.statusBar.SetMessage(err.Error())
}

// currentPageDims returns the dimensions of the page on screen.
func (v *View) currentPageDims() (domain.PageDims, bool) {
	if v.session == nil {
		return domain.PageDims{}, false
	}
	page, ok := v.session.Document.Page(v.viewport.CurrentPage())
	if !ok || !page.IsKnown() {
		return domain.PageDims{}, false
	}
	return page, true
}

// placeholdersOnPage returns the current page's boxes in signing order.
func (v *View) placeholdersOnPage() []domain.SignaturePlaceholder {
	if v.session == nil {
		return nil
	}
	var result []domain.SignaturePlaceholder
	for _, p := range v.session.Placeholders {
		if p.PageNumber == v.viewport.CurrentPage() {
			result = append(result, p)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].Order < result[j].Order })
	return result
}

func (v *View) selectedPlaceholder() (domain.SignaturePlaceholder, bool) {
	if v.session == nil || v.selectedID == "" {
		return domain.SignaturePlaceholder{}, false
	}
	return v.session.Placeholder(v.selectedID)
}

func (v *View) cellWidth() float64 {
	return float64(v.settings.TUI.CellWidth)
}

func (v *View) cellHeight() float64 {
	return float64(v.settings.TUI.CellHeight)
}

// canvasRows is the number of terminal rows available to the page.
func (v *View) canvasRows() int {
	return max(v.height-2, 1)
}

// SetDimensions sets the terminal size and derives the container size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusBar.SetWidth(width)
	v.viewport.SetContainer(domain.Size{
		Width:  float64(width) * v.cellWidth(),
		Height: float64(v.canvasRows()) * v.cellHeight(),
	})
	v.autoFit()
	v.refreshStatus()
}

// Session returns the open session, or nil.
func (v *View) Session() *domain.PlacementSession {
	return v.session
}

// Viewport exposes the zoom and page state.
func (v *View) Viewport() *placement.Viewport {
	return v.viewport
}

// SelectedID returns the selected placeholder ID.
func (v *View) SelectedID() string {
	return v.selectedID
}

// Gesture returns the kind of gesture in progress.
func (v *View) Gesture() GestureKind {
	if v.gesture == nil {
		return GestureNone
	}
	return v.gesture.kind
}

// StatusBar returns the canvas status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusBar
}

// Err returns the error that prevented the session from loading.
func (v *View) Err() error {
	return v.err
}

func backToSessions() tea.Msg {
	return messages.ViewChanged{View: messages.ViewSessions}
}
