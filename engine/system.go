package engine

// System is implemented by every simulation system
// Systems receive the world at construction and read dt from the
// time resource; event subscription is declared separately through
// the event.Handler interface and auto-registered by the scheduler
type System interface {
	// Init resets the system to its initial state
	Init()

	// Priority orders system updates within a tick (lower runs first)
	Priority() int

	// Update advances the system by one tick
	// Called under the world update lock, after event dispatch
	Update()
}
