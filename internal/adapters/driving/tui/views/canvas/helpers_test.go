package canvas

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sigplace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/services"
)

// stubLoader serves fixed page geometry for any path.
type stubLoader struct {
	mu    sync.Mutex
	pages []domain.PageDims
}

func (l *stubLoader) set(pages ...domain.PageDims) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pages = pages
}

func (l *stubLoader) Load(_ context.Context, path string) (*domain.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return &domain.Document{Path: path, Pages: append([]domain.PageDims(nil), l.pages...)}, nil
}

// stubWatcher hands out a channel the test controls.
type stubWatcher struct {
	ch      chan struct{}
	watched string
	ctx     context.Context
}

func (w *stubWatcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	w.watched = path
	w.ctx = ctx
	return w.ch, nil
}

// tall is a page twice as high as it is wide, so an 800x800 container
// fits it at 50%.
var tall = domain.PageDims{Width: 800, Height: 1600}

type testEnv struct {
	loader    *stubLoader
	placement *services.PlacementService
	sessionID string
	alice     *domain.Recipient
	bob       *domain.Recipient
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	loader := &stubLoader{}
	loader.set(tall, tall)
	svc := services.NewPlacementService(loader, memory.NewSessionStore(), nil)

	session, err := svc.CreateSession(ctx, "/docs/contract.pdf")
	require.NoError(t, err)
	alice, err := svc.AddRecipient(ctx, session.ID, "Alice", "alice@example.com")
	require.NoError(t, err)
	bob, err := svc.AddRecipient(ctx, session.ID, "Bob", "bob@example.com")
	require.NoError(t, err)

	return &testEnv{loader: loader, placement: svc, sessionID: session.ID, alice: alice, bob: bob}
}

// openView returns a canvas sized to an 800x800 container with the
// session loaded.
func (e *testEnv) openView(t *testing.T, watcher *stubWatcher) *View {
	t.Helper()
	v := newView(e, watcher)
	v.SetDimensions(100, 52)
	apply(t, v, v.Open(e.sessionID))
	require.NotNil(t, v.Session())
	return v
}

func newView(e *testEnv, w *stubWatcher) *View {
	if w == nil {
		return NewView(nil, e.placement, nil, nil, domain.DefaultAppSettings())
	}
	return NewView(nil, e.placement, nil, w, domain.DefaultAppSettings())
}

// apply runs cmd and feeds its message back into the view, returning the
// follow-up command.
func apply(t *testing.T, v *View, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := runCmd(t, cmd)
	if msg == nil {
		return nil
	}
	_, next := v.Update(msg)
	return next
}

// runCmd executes cmd with a timeout so a missing tick cannot hang the test.
func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()
	select {
	case msg := <-result:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("command did not complete")
		return nil
	}
}

func press(v *View, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := v.Update(msg)
	return cmd
}
