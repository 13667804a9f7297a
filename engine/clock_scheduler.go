package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/emberlit/afterglow/event"
)

// ClockScheduler runs the simulation on a fixed tick
// Drains the event queue, then updates systems, so every tick observes
// a fully merged event batch before any decay computation
// Handles pause-aware scheduling without busy-wait
type ClockScheduler struct {
	world   *World
	timeRes *TimeResource

	pausableClock *PausableClock
	isPaused      *atomic.Bool

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time // Next tick deadline for drift correction

	// Tick counter for metrics
	tickCount atomic.Uint64
	mu        sync.RWMutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Frame synchronization channels
	frameReady <-chan struct{} // Receive signal that frame is ready
	updateDone chan<- struct{} // Send signal that update is complete

	// Event routing
	eventRouter *event.Router
	registered  atomic.Bool

	// Cached metric pointer
	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler with the given tick interval
// Receives the frameReady (receive) channel and returns the updateDone
// (send) channel for the render handshake
func NewClockScheduler(
	world *World,
	pausableClock *PausableClock,
	isPaused *atomic.Bool,
	tickInterval time.Duration,
	frameReady <-chan struct{},
) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)

	cs := &ClockScheduler{
		world:         world,
		timeRes:       world.Resource.Time,
		pausableClock: pausableClock,
		isPaused:      isPaused,
		tickInterval:  tickInterval,
		eventRouter:   event.NewRouter(world.Resource.Event.Queue),
		frameReady:    frameReady,
		updateDone:    updateDone,
		stopChan:      make(chan struct{}),
		statTicks:     world.Resource.Status.Ints.Get("engine.ticks"),
	}

	return cs, updateDone
}

// RegisterEventHandler adds a non-system handler to the router
// Must be called before Start()
func (cs *ClockScheduler) RegisterEventHandler(handler event.Handler) {
	cs.eventRouter.Register(handler)
}

// registerSystemHandlers subscribes every system that declares event
// interest; runs once on first Start
func (cs *ClockScheduler) registerSystemHandlers() {
	if !cs.registered.CompareAndSwap(false, true) {
		return
	}
	for _, s := range cs.world.Systems() {
		if h, ok := s.(event.Handler); ok {
			cs.eventRouter.Register(h)
		}
	}
}

// Start begins the scheduler loop
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.registerSystemHandlers()
		cs.wg.Add(1)
		go cs.schedulerLoop()
	}
}

// Stop halts the scheduler loop
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		if cs.running.CompareAndSwap(true, false) {
			close(cs.stopChan)
			cs.wg.Wait()
		}
	})
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// schedulerLoop runs the main scheduling loop with pause awareness
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.pausableClock.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if cs.isPaused.Load() {
			// Increase sleep interval while paused to save CPU
			sleepDuration = cs.tickInterval * 2
		} else {
			gameNow := cs.pausableClock.Now()

			cs.mu.RLock()
			deadline := cs.nextTickDeadline
			cs.mu.RUnlock()

			if !gameNow.Before(deadline) {
				select {
				case <-cs.frameReady:
				case <-time.After(cs.tickInterval * 2):
				case <-cs.stopChan:
					return
				}

				cs.processTick()

				cs.mu.Lock()
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

				maxBehind := cs.tickInterval * 2
				if gameNow.Sub(cs.nextTickDeadline) > maxBehind {
					cs.nextTickDeadline = gameNow.Add(cs.tickInterval)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				cs.tickCount.Add(1)

				select {
				case cs.updateDone <- struct{}{}:
				default:
				}

				sleepDuration = deadline.Sub(cs.pausableClock.Now())
				if sleepDuration < 0 {
					sleepDuration = 0
				}
			} else {
				sleepDuration = deadline.Sub(gameNow)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}

// DispatchEventsImmediately processes all pending events synchronously
// Used by tests and session reset paths
func (cs *ClockScheduler) DispatchEventsImmediately() {
	cs.world.RunSafe(func() {
		cs.eventRouter.DispatchAll()
	})
}

// processTick executes one clock cycle
func (cs *ClockScheduler) processTick() {
	if cs.isPaused.Load() {
		return
	}

	cs.world.RunSafe(func() {
		now := cs.pausableClock.Now()
		frame := cs.world.AdvanceFrame()
		cs.timeRes.Update(
			now,
			cs.pausableClock.RealTime(),
			cs.tickInterval,
			cs.pausableClock.Elapsed().Seconds(),
			frame,
		)

		// Process buffered events, then run systems
		cs.eventRouter.DispatchAll()
		cs.world.UpdateLocked()

		cs.world.Resource.Snapshot.Frame.FrameNumber = frame
		cs.world.Resource.Snapshot.Frame.Elapsed = cs.timeRes.Elapsed
	})

	cs.statTicks.Store(int64(cs.tickCount.Load() + 1))
}
