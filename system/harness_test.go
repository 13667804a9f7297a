package system

import (
	"time"

	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
)

// simHarness drives a world tick-by-tick with deterministic time,
// mirroring the scheduler's drain-then-update ordering
type simHarness struct {
	world   *engine.World
	router  *event.Router
	base    time.Time
	elapsed float64
	frame   int64
}

func newHarness() *simHarness {
	w := engine.NewWorld()
	return &simHarness{
		world:  w,
		router: event.NewRouter(w.Resource.Event.Queue),
		base:   time.Unix(0, 0),
	}
}

// add registers a system with the world and, when it declares event
// interest, with the router
func (h *simHarness) add(s engine.System) {
	h.world.AddSystem(s)
	if handler, ok := s.(event.Handler); ok {
		h.router.Register(handler)
	}
}

// tick advances simulation time, dispatches buffered events, then
// updates systems — the same phase ordering the scheduler guarantees
func (h *simHarness) tick(dt float64) {
	h.elapsed += dt
	h.frame++
	now := h.base.Add(time.Duration(h.elapsed * float64(time.Second)))
	h.world.Resource.Time.Update(now, now, time.Duration(dt*float64(time.Second)), h.elapsed, h.frame)
	h.router.DispatchAll()
	h.world.Update()
}

// run ticks at the reference frame interval for the given duration
func (h *simHarness) run(seconds float64) {
	const dt = 1.0 / 60.0
	for t := 0.0; t < seconds; t += dt {
		h.tick(dt)
	}
}

// nowMs returns the harness clock in epoch milliseconds for event
// timestamps
func (h *simHarness) nowMs() int64 {
	return h.base.Add(time.Duration(h.elapsed * float64(time.Second))).UnixMilli()
}

func (h *simHarness) activity() engine.ActivityState {
	return h.world.Resource.Activity.State
}
