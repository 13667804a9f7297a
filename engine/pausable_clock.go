package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock provides pausable simulation time with pause duration
// tracking; real time keeps flowing for logging and telemetry
type PausableClock struct {
	mu sync.RWMutex

	provider TimeProvider

	// Base time tracking
	realStartTime time.Time // When clock was created (real time)
	gameStartTime time.Time // Simulation time epoch (adjusted for pauses)

	// Pause state
	isPaused        atomic.Bool
	pauseStartTime  time.Time     // When current pause started (real time)
	totalPausedTime time.Duration // Cumulative pause duration
}

// NewPausableClock creates a clock backed by the system time source
func NewPausableClock() *PausableClock {
	return NewPausableClockWith(NewMonotonicTimeProvider())
}

// NewPausableClockWith creates a clock backed by the given provider
// Tests inject a MockTimeProvider for deterministic advancement
func NewPausableClockWith(provider TimeProvider) *PausableClock {
	now := provider.Now()
	return &PausableClock{
		provider:      provider,
		realStartTime: now,
		gameStartTime: now,
	}
}

// Now returns current simulation time (affected by pause)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		// During pause: return frozen time at pause point
		return pc.gameStartTime.Add(pc.pauseStartTime.Sub(pc.realStartTime) - pc.totalPausedTime)
	}

	// Game elapsed = real elapsed - total paused time
	realElapsed := pc.provider.Now().Sub(pc.realStartTime)
	gameElapsed := realElapsed - pc.totalPausedTime
	return pc.gameStartTime.Add(gameElapsed)
}

// RealTime returns wall clock time (unaffected by pause)
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

// Elapsed returns simulation time since clock creation
func (pc *PausableClock) Elapsed() time.Duration {
	return pc.Now().Sub(pc.gameStartTime)
}

// Pause stops simulation time advancement
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		defer pc.mu.Unlock()
		pc.pauseStartTime = pc.provider.Now()
	}
}

// Resume continues simulation time advancement
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		defer pc.mu.Unlock()

		if !pc.pauseStartTime.IsZero() {
			pauseDuration := pc.provider.Now().Sub(pc.pauseStartTime)
			pc.totalPausedTime += pauseDuration
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		// Include current pause duration
		total += pc.provider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
