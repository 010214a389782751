package canvas

import (
	"context"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/sigplace/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/geometry"
	"github.com/custodia-labs/sigplace/internal/core/placement"
)

// GestureKind identifies what a gesture changes.
type GestureKind int

const (
	// GestureNone means no gesture is in progress.
	GestureNone GestureKind = iota
	// GestureMove drags the whole box.
	GestureMove
	// GestureResize drags the bottom-right handle.
	GestureResize
)

// String returns the status bar verb for the gesture.
func (k GestureKind) String() string {
	switch k {
	case GestureMove:
		return "Moving"
	case GestureResize:
		return "Resizing"
	default:
		return ""
	}
}

// gesture is an uncommitted move or resize. The frame is page-relative
// screen space and only reaches the service on commit.
type gesture struct {
	kind      GestureKind
	id        string
	name      string
	frame     geometry.ScreenBox
	done      chan struct{}
	listening bool
}

// startGesture begins a gesture on the selected placeholder.
func (v *View) startGesture(kind GestureKind) {
	p, ok := v.selectedPlaceholder()
	if !ok {
		v.statusBar.SetMessage("Select a box first [tab]")
		return
	}
	page, _ := v.currentPageDims()
	v.gesture = &gesture{
		kind:  kind,
		id:    p.ID,
		name:  p.RecipientName,
		frame: geometry.ToScreen(p, page, v.viewport.Scale()),
		done:  make(chan struct{}),
	}
	v.refreshStatus()
}

// nudge applies one arrow-key step to the gesture frame and drives the
// autoscroller from the pointer position.
func (v *View) nudge(dx, dy float64) tea.Cmd {
	g := v.gesture
	page, _ := v.currentPageDims()
	rendered := geometry.ScreenPageSize(page, v.viewport.Scale())

	switch g.kind {
	case GestureMove:
		g.frame.X = clamp(g.frame.X+dx, 0, rendered.Width-g.frame.Width)
		g.frame.Y = clamp(g.frame.Y+dy, 0, rendered.Height-g.frame.Height)
	case GestureResize:
		g.frame.Width = clamp(g.frame.Width+dx, v.cellWidth(), rendered.Width-g.frame.X)
		g.frame.Height = clamp(g.frame.Height+dy, v.cellHeight(), rendered.Height-g.frame.Y)
	case GestureNone:
		return nil
	}

	return v.driveAutoScroll()
}

// pointerY is where the dragged handle sits relative to the visible container.
func (v *View) pointerY() float64 {
	g := v.gesture
	y := g.frame.Center().Y
	if g.kind == GestureResize {
		y = g.frame.Bottom()
	}
	return y - v.viewport.Offset().Y
}

// driveAutoScroll starts, retunes or stops the autoscroller. It returns a
// listener command when a new one is needed.
func (v *View) driveAutoScroll() tea.Cmd {
	container := v.viewport.Container()
	velocity := placement.Velocity(
		v.pointerY(),
		container.Height,
		v.settings.AutoScroll.Edge,
		v.settings.AutoScroll.Speed,
	)
	if velocity == 0 {
		v.scroller.Stop()
		return nil
	}

	v.scroller.Start(v.ctx, velocity)
	if v.gesture.listening {
		return nil
	}
	v.gesture.listening = true
	return waitForScroll(v.ctx, v.scrollCh, v.gesture.done)
}

// handleAutoScroll applies one tick: the container scrolls and the frame
// follows the pointer, which stays put on screen.
func (v *View) handleAutoScroll(delta float64) tea.Cmd {
	g := v.gesture
	if g == nil {
		return nil
	}
	g.listening = false

	page, ok := v.currentPageDims()
	if !ok {
		v.scroller.Stop()
		return nil
	}
	before := v.viewport.Offset().Y
	v.viewport.ScrollBy(0, delta, page)
	moved := v.viewport.Offset().Y - before
	if moved == 0 {
		v.scroller.Stop()
		return nil
	}

	rendered := geometry.ScreenPageSize(page, v.viewport.Scale())
	switch g.kind {
	case GestureMove:
		g.frame.Y = clamp(g.frame.Y+moved, 0, rendered.Height-g.frame.Height)
	case GestureResize:
		g.frame.Height = clamp(g.frame.Height+moved, v.cellHeight(), rendered.Height-g.frame.Y)
	case GestureNone:
	}

	if !v.scroller.Running() {
		return nil
	}
	g.listening = true
	return waitForScroll(v.ctx, v.scrollCh, g.done)
}

// commitGesture ends the gesture and sends its terminal frame to the service.
func (v *View) commitGesture() tea.Cmd {
	g := v.gesture
	v.endGesture()

	var change domain.ScreenChange
	switch g.kind {
	case GestureMove:
		change = domain.MoveTo(g.frame.X, g.frame.Y)
	case GestureResize:
		// Top-left stays where it is, so Y is sent with the new height.
		change = domain.ScreenChange{
			X:      &g.frame.X,
			Y:      &g.frame.Y,
			Width:  &g.frame.Width,
			Height: &g.frame.Height,
		}
	case GestureNone:
		return nil
	}

	sessionID := v.session.ID
	scale := v.viewport.Scale()
	return v.mutate(func(ctx context.Context) error {
		_, err := v.placementService.UpdatePlaceholder(ctx, sessionID, g.id, change, scale)
		return err
	})
}

// abandonGesture drops the gesture without touching the stored placeholder.
func (v *View) abandonGesture() {
	v.endGesture()
	v.statusBar.SetMessage("Cancelled")
}

// endGesture stops the autoscroller and releases the listener.
func (v *View) endGesture() {
	if v.gesture == nil {
		return
	}
	v.scroller.Stop()
	close(v.gesture.done)
	v.gesture = nil

	// Drop a tick that raced the stop.
	select {
	case <-v.scrollCh:
	default:
	}
	v.refreshStatus()
}

// waitForScroll returns a command that blocks until the next autoscroll tick.
func waitForScroll(ctx context.Context, ch <-chan float64, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case delta := <-ch:
			return messages.AutoScrollTick{Delta: delta}
		case <-done:
			return nil
		case <-ctx.Done():
			return nil
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
