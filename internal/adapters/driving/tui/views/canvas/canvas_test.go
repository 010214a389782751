package canvas

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sigplace/internal/core/domain"
)

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, nil, nil, domain.DefaultAppSettings())

	require.NotNil(t, v)
	assert.Nil(t, v.Session())
	assert.Equal(t, GestureNone, v.Gesture())
	assert.Nil(t, v.Init())
}

func TestView_Open_AutoFitsOnce(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	assert.Equal(t, env.sessionID, v.Session().ID)
	assert.Equal(t, 2, v.Viewport().NumPages())
	assert.Equal(t, 1, v.Viewport().CurrentPage())
	assert.InDelta(t, 0.5, v.Viewport().Scale(), 1e-9)
	assert.Equal(t, status.StateReady, v.StatusBar().State())
	assert.Equal(t, "Add 1st signatory", v.StatusBar().NextLabel())

	// A later resize does not re-run the fit.
	v.SetDimensions(200, 102)
	assert.InDelta(t, 0.5, v.Viewport().Scale(), 1e-9)
}

func TestView_Open_RestoresSavedViewport(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.placement.SaveViewport(context.Background(), env.sessionID, 1.2, 2))

	v := env.openView(t, nil)

	assert.InDelta(t, 1.2, v.Viewport().Scale(), 1e-9)
	assert.Equal(t, 2, v.Viewport().CurrentPage())
}

func TestView_Open_UnknownSession(t *testing.T) {
	env := newTestEnv(t)
	v := newView(env, nil)
	v.SetDimensions(100, 52)

	apply(t, v, v.Open("missing"))

	assert.Nil(t, v.Session())
	require.Error(t, v.Err())
	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_Add_CentresDefaultBox(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	apply(t, v, press(v, "a"))

	require.Len(t, v.Session().Placeholders, 1)
	p := v.Session().Placeholders[0]
	assert.Equal(t, env.alice.ID, p.RecipientID)
	assert.Equal(t, 1, p.Order)
	assert.Equal(t, 1, p.PageNumber)
	assert.InDelta(t, 300, p.X, 1e-9)
	assert.InDelta(t, 750, p.Y, 1e-9)
	assert.InDelta(t, 200, p.Width, 1e-9)
	assert.InDelta(t, 100, p.Height, 1e-9)
	assert.Equal(t, p.ID, v.SelectedID())
	assert.Equal(t, "Add 2nd signatory", v.StatusBar().NextLabel())
}

func TestView_Add_OneBoxPerRecipient(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	apply(t, v, press(v, "a"))
	apply(t, v, press(v, "a"))

	require.Len(t, v.Session().Placeholders, 2)
	second, ok := v.Session().Placeholder(v.SelectedID())
	require.True(t, ok)
	assert.Equal(t, env.bob.ID, second.RecipientID)
	assert.Equal(t, 2, second.Order)

	assert.Nil(t, press(v, "a"))
	assert.Equal(t, "Every recipient has a box", v.StatusBar().Message())
	assert.Len(t, v.Session().Placeholders, 2)
}

func TestView_Add_NoRecipients(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.placement.RemoveRecipient(ctx, env.sessionID, env.alice.ID))
	require.NoError(t, env.placement.RemoveRecipient(ctx, env.sessionID, env.bob.ID))
	v := env.openView(t, nil)

	assert.Nil(t, press(v, "a"))
	assert.Equal(t, "Add a recipient first [e]", v.StatusBar().Message())
}

func TestView_MoveGesture_CommitsTerminalFrame(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	apply(t, v, press(v, "a"))

	press(v, "m")
	require.Equal(t, GestureMove, v.Gesture())
	assert.Equal(t, status.StateGesture, v.StatusBar().State())
	assert.Equal(t, "Moving Alice", v.StatusBar().Message())

	assert.Nil(t, press(v, "right"))
	assert.Nil(t, press(v, "down"))

	// Nothing reaches the service until the gesture ends.
	before := v.Session().Placeholders[0]
	assert.InDelta(t, 300, before.X, 1e-9)

	apply(t, v, press(v, "enter"))

	assert.Equal(t, GestureNone, v.Gesture())
	p := v.Session().Placeholders[0]
	assert.InDelta(t, 316, p.X, 1e-9)
	assert.InDelta(t, 718, p.Y, 1e-9)
	assert.InDelta(t, 200, p.Width, 1e-9)
	assert.InDelta(t, 100, p.Height, 1e-9)
}

func TestView_MoveGesture_ClampsToPage(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	apply(t, v, press(v, "a"))

	press(v, "m")
	for range 40 {
		press(v, "left")
	}
	apply(t, v, press(v, "enter"))

	assert.InDelta(t, 0, v.Session().Placeholders[0].X, 1e-9)
}

func TestView_ResizeGesture_KeepsTopLeft(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	apply(t, v, press(v, "a"))

	press(v, "r")
	require.Equal(t, GestureResize, v.Gesture())
	press(v, "right")
	press(v, "down")
	apply(t, v, press(v, "enter"))

	p := v.Session().Placeholders[0]
	assert.InDelta(t, 300, p.X, 1e-9)
	assert.InDelta(t, 718, p.Y, 1e-9)
	assert.InDelta(t, 216, p.Width, 1e-9)
	assert.InDelta(t, 132, p.Height, 1e-9)
	assert.InDelta(t, 850, p.Y+p.Height, 1e-9)
}

func TestView_ResizeGesture_MinimumOneCell(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	apply(t, v, press(v, "a"))

	press(v, "r")
	for range 20 {
		press(v, "left")
		press(v, "up")
	}
	apply(t, v, press(v, "enter"))

	p := v.Session().Placeholders[0]
	assert.InDelta(t, 16, p.Width, 1e-9)
	assert.InDelta(t, 32, p.Height, 1e-9)
}

func TestView_Gesture_EscapeAbandons(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	apply(t, v, press(v, "a"))

	press(v, "m")
	press(v, "right")
	press(v, "down")
	assert.Nil(t, press(v, "esc"))

	assert.Equal(t, GestureNone, v.Gesture())
	assert.Equal(t, "Cancelled", v.StatusBar().Message())
	assert.NotNil(t, v.Session(), "escape during a gesture stays on the canvas")

	p := v.Session().Placeholders[0]
	assert.InDelta(t, 300, p.X, 1e-9)
	assert.InDelta(t, 750, p.Y, 1e-9)
}

func TestView_Gesture_NeedsSelection(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	press(v, "m")

	assert.Equal(t, GestureNone, v.Gesture())
	assert.Equal(t, "Select a box first [tab]", v.StatusBar().Message())
}

func TestView_Gesture_AutoScrollsNearEdge(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.placement.SaveViewport(context.Background(), env.sessionID, 0.5, 1))
	v := newView(env, nil)
	// 25 canvas rows of 16px give a 400px high container.
	v.SetDimensions(100, 27)
	apply(t, v, v.Open(env.sessionID))
	apply(t, v, press(v, "a"))

	press(v, "m")
	var listen tea.Cmd
	for range 11 {
		listen = press(v, "down")
	}
	require.NotNil(t, listen, "the pointer crossed the bottom edge band")

	msg := runCmd(t, listen)
	tick, ok := msg.(messages.AutoScrollTick)
	require.True(t, ok)
	assert.InDelta(t, 20, tick.Delta, 1e-9)

	next := func() tea.Cmd {
		_, cmd := v.Update(tick)
		return cmd
	}()
	assert.InDelta(t, 20, v.Viewport().Offset().Y, 1e-9)
	require.NotNil(t, v.gesture)
	assert.InDelta(t, 371, v.gesture.frame.Y, 1e-9)
	require.NotNil(t, next)

	press(v, "esc")
	assert.Nil(t, runCmd(t, next), "listener is released when the gesture ends")
}

func TestView_Cycle(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	press(v, "tab")
	assert.Empty(t, v.SelectedID())
	assert.Equal(t, "No boxes on this page", v.StatusBar().Message())

	apply(t, v, press(v, "a"))
	apply(t, v, press(v, "a"))
	first := v.Session().Placeholders[0].ID
	second := v.Session().Placeholders[1].ID
	assert.Equal(t, second, v.SelectedID())

	press(v, "tab")
	assert.Equal(t, first, v.SelectedID())
	press(v, "tab")
	assert.Equal(t, second, v.SelectedID())
}

func TestView_Remove_Renumbers(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	apply(t, v, press(v, "a"))
	apply(t, v, press(v, "a"))

	press(v, "tab")
	apply(t, v, press(v, "x"))

	require.Len(t, v.Session().Placeholders, 1)
	p := v.Session().Placeholders[0]
	assert.Equal(t, env.bob.ID, p.RecipientID)
	assert.Equal(t, 1, p.Order)
	assert.Empty(t, v.SelectedID())
}

func TestView_Remove_NeedsSelection(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	assert.Nil(t, press(v, "x"))
	assert.Equal(t, "Select a box first [tab]", v.StatusBar().Message())
}

func TestView_PageAndZoom_Persist(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	ctx := context.Background()

	apply(t, v, press(v, "n"))
	assert.Equal(t, 2, v.Viewport().CurrentPage())

	apply(t, v, press(v, "+"))
	assert.InDelta(t, 0.6, v.Viewport().Scale(), 1e-9)

	session, err := env.placement.GetSession(ctx, env.sessionID)
	require.NoError(t, err)
	assert.Equal(t, 2, session.CurrentPage)
	assert.InDelta(t, 0.6, session.Scale, 1e-9)

	apply(t, v, press(v, "f"))
	assert.InDelta(t, 0.5, v.Viewport().Scale(), 1e-9)

	apply(t, v, press(v, "p"))
	assert.Equal(t, 1, v.Viewport().CurrentPage())
}

func TestView_PageChange_DropsSelection(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)
	apply(t, v, press(v, "a"))
	require.NotEmpty(t, v.SelectedID())

	apply(t, v, press(v, "n"))

	assert.Empty(t, v.SelectedID())
}

func TestView_Submit_Disabled(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	assert.Nil(t, press(v, "s"))

	assert.Equal(t, status.StateError, v.StatusBar().State())
	assert.Equal(t, domain.ErrSubmissionDisabled.Error(), v.StatusBar().Message())

	// The next key clears the error.
	press(v, "tab")
	assert.NotEqual(t, status.StateError, v.StatusBar().State())
}

func TestView_Back_SavesAndCloses(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	cmd := press(v, "esc")
	require.NotNil(t, cmd)
	assert.Nil(t, v.Session())

	batch, ok := runCmd(t, cmd).(tea.BatchMsg)
	require.True(t, ok)
	var views []messages.ViewType
	for _, c := range batch {
		if m, ok := runCmd(t, c).(messages.ViewChanged); ok {
			views = append(views, m.View)
		}
	}
	assert.Equal(t, []messages.ViewType{messages.ViewSessions}, views)
}

func TestView_NavigationKeys(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"?", messages.ViewChanged{View: messages.ViewHelp}},
		{"e", messages.ViewChanged{View: messages.ViewRecipients}},
		{"q", messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cmd := press(v, tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestView_WatcherReload(t *testing.T) {
	env := newTestEnv(t)
	watcher := &stubWatcher{ch: make(chan struct{}, 1)}
	v := newView(env, watcher)
	v.SetDimensions(100, 52)

	wait := apply(t, v, v.Open(env.sessionID))
	require.NotNil(t, wait)
	assert.Equal(t, "/docs/contract.pdf", watcher.watched)

	apply(t, v, press(v, "n"))
	apply(t, v, press(v, "+"))
	apply(t, v, press(v, "a"))
	press(v, "m")

	env.loader.set(tall, tall, tall)
	watcher.ch <- struct{}{}
	changed := runCmd(t, wait)
	assert.Equal(t, messages.DocumentChanged{SessionID: env.sessionID}, changed)

	_, cmd := v.Update(changed)
	assert.Equal(t, GestureNone, v.Gesture(), "a reload abandons the gesture")
	batch, ok := runCmd(t, cmd).(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)

	v.Update(runCmd(t, batch[0]))

	assert.Equal(t, 3, v.Viewport().NumPages())
	assert.Equal(t, 2, v.Viewport().CurrentPage())
	assert.InDelta(t, 0.5, v.Viewport().Scale(), 1e-9, "auto-fit runs again after a reload")
	assert.Equal(t, "Document reloaded", v.StatusBar().Message())
	assert.Len(t, v.Session().Placeholders, 1)

	v.Close()
	assert.Error(t, watcher.ctx.Err(), "closing the canvas stops the watch")
}

func TestView_DocumentChanged_OtherSession(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	_, cmd := v.Update(messages.DocumentChanged{SessionID: "other"})

	assert.Nil(t, cmd)
}

func TestView_NoSession_EscGoesBack(t *testing.T) {
	v := NewView(nil, nil, nil, nil, domain.DefaultAppSettings())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSessions}, cmd())
}

func TestView_SetSettings(t *testing.T) {
	env := newTestEnv(t)
	v := env.openView(t, nil)

	custom := domain.DefaultAppSettings()
	custom.TUI.CellWidth = 4
	custom.Zoom.Max = 1.0
	v.SetSettings(custom)

	assert.Nil(t, v.Session(), "changing settings closes the canvas")
	assert.InDelta(t, 400, v.Viewport().Container().Width, 1e-9)

	apply(t, v, v.Open(env.sessionID))
	for range 10 {
		apply(t, v, press(v, "+"))
	}
	assert.InDelta(t, 1.0, v.Viewport().Scale(), 1e-9)
}
