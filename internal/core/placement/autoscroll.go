package placement

import (
	"context"
	"sync"
	"time"
)

// Velocity returns the scroll delta per tick for a pointer at pointerY
// inside a container of the given height: -speed within edge of the top,
// +speed within edge of the bottom, zero elsewhere.
func Velocity(pointerY, containerHeight, edge, speed float64) float64 {
	switch {
	case pointerY < edge:
		return -speed
	case pointerY > containerHeight-edge:
		return speed
	default:
		return 0
	}
}

// AutoScroller scrolls the container on a fixed tick while a drag gesture
// is near the container edge. It is owned by the view running the gesture,
// which must call Stop on drag end and on teardown.
type AutoScroller struct {
	interval time.Duration
	scroll   func(delta float64)

	mu       sync.Mutex
	running  bool
	velocity float64
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewAutoScroller creates a stopped autoscroller that calls scroll with the
// current velocity on every tick.
func NewAutoScroller(interval time.Duration, scroll func(delta float64)) *AutoScroller {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	return &AutoScroller{
		interval: interval,
		scroll:   scroll,
	}
}

// Start begins ticking with velocity, or updates the velocity if already
// running. A zero velocity stops the ticker.
func (a *AutoScroller) Start(ctx context.Context, velocity float64) {
	if velocity == 0 {
		a.Stop()
		return
	}

	a.mu.Lock()
	a.velocity = velocity
	if a.running {
		a.mu.Unlock()
		return
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.run(ctx, a.stopCh, a.doneCh)
	a.mu.Unlock()
}

// Stop cancels the ticker and waits for the tick goroutine to exit.
// Safe to call when not running.
func (a *AutoScroller) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	a.velocity = 0
	close(a.stopCh)
	done := a.doneCh
	a.mu.Unlock()

	<-done
}

// Running reports whether the ticker is active.
func (a *AutoScroller) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// run ticks until stopCh closes or ctx ends. Each run owns its done
// channel, so a Stop never waits on a later run.
func (a *AutoScroller) run(ctx context.Context, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.mu.Lock()
			if a.stopCh == stopCh && a.running {
				a.running = false
				a.velocity = 0
			}
			a.mu.Unlock()
			return
		case <-stopCh:
			return
		case <-ticker.C:
			a.mu.Lock()
			v := a.velocity
			a.mu.Unlock()
			if v != 0 && a.scroll != nil {
				a.scroll(v)
			}
		}
	}
}
