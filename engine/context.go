package engine

import (
	"sync/atomic"
	"time"
)

// SimContext bundles the world, clock, and scheduler for one
// simulation session; the single assembly point for all frontends
type SimContext struct {
	World     *World
	Clock     *PausableClock
	Scheduler *ClockScheduler

	IsPaused atomic.Bool

	frameReady chan struct{}
	updateDone <-chan struct{}
}

// NewSimContext assembles a simulation running at the given tick interval
func NewSimContext(tickInterval time.Duration) *SimContext {
	return NewSimContextWithClock(tickInterval, NewPausableClock())
}

// NewSimContextWithClock assembles a simulation over a caller-provided
// clock; tests pass a clock backed by MockTimeProvider
func NewSimContextWithClock(tickInterval time.Duration, clock *PausableClock) *SimContext {
	ctx := &SimContext{
		World:      NewWorld(),
		Clock:      clock,
		frameReady: make(chan struct{}, 1),
	}

	scheduler, updateDone := NewClockScheduler(
		ctx.World,
		ctx.Clock,
		&ctx.IsPaused,
		tickInterval,
		ctx.frameReady,
	)
	ctx.Scheduler = scheduler
	ctx.updateDone = updateDone

	return ctx
}

// Start launches the scheduler loop
func (c *SimContext) Start() {
	c.Scheduler.Start()
}

// Stop halts the scheduler loop
func (c *SimContext) Stop() {
	c.Scheduler.Stop()
}

// SignalFrameReady tells the scheduler the renderer finished a frame
// Non-blocking; a slow renderer drops the signal and the scheduler
// falls back to its timeout
func (c *SimContext) SignalFrameReady() {
	select {
	case c.frameReady <- struct{}{}:
	default:
	}
}

// WaitUpdateDone blocks until the next tick completes or timeout
// Returns false on timeout
func (c *SimContext) WaitUpdateDone(timeout time.Duration) bool {
	select {
	case <-c.updateDone:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Pause freezes simulation time and tick processing
func (c *SimContext) Pause() {
	c.IsPaused.Store(true)
	c.Clock.Pause()
}

// Resume continues simulation time and tick processing
func (c *SimContext) Resume() {
	c.Clock.Resume()
	c.IsPaused.Store(false)
}

// Snapshot returns a deep copy of the latest outbound frame
func (c *SimContext) Snapshot() FrameSnapshot {
	return c.World.Snapshot()
}
