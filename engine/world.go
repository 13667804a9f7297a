package engine

import (
	"sync"
	"sync/atomic"

	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/status"
)

// World owns the simulation systems and their shared resources
// Systems communicate through resources and the event queue only
type World struct {
	mu sync.RWMutex

	// Singleton resources, direct fields for hot-path access
	Resource Resource

	// Direct pointers for the PushEvent hot path
	eventQueue   *event.EventQueue
	frameCounter atomic.Int64

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates a world with initialized resources and event queue
func NewWorld() *World {
	queue := event.NewEventQueue()
	w := &World{
		eventQueue: queue,
		systems:    make([]System, 0),
	}
	w.Resource = Resource{
		Time:     &TimeResource{},
		Event:    &EventQueueResource{Queue: queue},
		Activity: &ActivityResource{},
		Snapshot: &SnapshotResource{},
		Cascade:  &CascadeLayoutResource{},
		Tuning:   NewTuningResource(),
		Stage:    &StageResource{},
		Status:   status.NewRegistry(),
	}
	return w
}

// AddSystem adds a system to the world and sorts by priority
func (w *World) AddSystem(system System) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.systems = append(w.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(w.systems)-1; i++ {
		for j := 0; j < len(w.systems)-i-1; j++ {
			if w.systems[j].Priority() > w.systems[j+1].Priority() {
				w.systems[j], w.systems[j+1] = w.systems[j+1], w.systems[j]
			}
		}
	}
}

// Systems returns a copy of all registered systems
// Used by ClockScheduler for event handler auto-registration
func (w *World) Systems() []System {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]System, len(w.systems))
	copy(result, w.systems)
	return result
}

// RunSafe executes a function while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Lock acquires the world's update mutex
func (w *World) Lock() {
	w.updateMutex.Lock()
}

// TryLock attempts to acquire the update mutex without blocking
// Returns true if lock acquired, false if already held
func (w *World) TryLock() bool {
	return w.updateMutex.TryLock()
}

// Unlock releases the update mutex
func (w *World) Unlock() {
	w.updateMutex.Unlock()
}

// Update runs all systems sequentially under the update lock
func (w *World) Update() {
	w.RunSafe(func() {
		w.UpdateLocked()
	})
}

// UpdateLocked runs all systems assuming the caller already holds the
// update mutex
func (w *World) UpdateLocked() {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Update()
	}
}

// InitSystems re-initializes every system in priority order
// Used for session reset while the world lock is held
func (w *World) InitSystems() {
	w.mu.RLock()
	systems := make([]System, len(w.systems))
	copy(systems, w.systems)
	w.mu.RUnlock()

	for _, system := range systems {
		system.Init()
	}
}

// FrameNumber returns the current authoritative tick index
// Optimized for hot-path access by producers stamping events
func (w *World) FrameNumber() int64 {
	return w.frameCounter.Load()
}

// AdvanceFrame increments and returns the tick index
// Called once per tick by the ClockScheduler
func (w *World) AdvanceFrame() int64 {
	return w.frameCounter.Add(1)
}

// PushEvent emits a simulation event stamped with the current frame
// This is the hot path for all producer communication; safe from any
// goroutine
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.eventQueue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.frameCounter.Load(),
	})
}

// Snapshot returns a deep copy of the current outbound frame
// Safe to call from any goroutine; blocks briefly if a tick is running
func (w *World) Snapshot() FrameSnapshot {
	var snap FrameSnapshot
	w.RunSafe(func() {
		snap = w.Resource.Snapshot.Frame.Clone()
	})
	return snap
}
