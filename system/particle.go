package system

import (
	"sync/atomic"

	"github.com/emberlit/afterglow/constant"
	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/parameter"
	"github.com/emberlit/afterglow/vmath"
)

// particleSlot is one reusable storage unit in the pool
// Identity is the slot index; an expired slot is not cleared, just
// overwritten by a later spawn
type particleSlot struct {
	birthElapsed float64
	lifetime     float64
	origin       [3]float64
	seed         float64
	speed        float64
	used         bool
}

// ParticleSystem is the fixed-capacity lifecycle pool for transient
// visual elements
// Spawn writes at spawnCounter % capacity and overwrites unconditionally,
// so cost stays O(1) per spawn and O(capacity) per tick no matter how
// fast events arrive; premature overwrite under burst pressure is the
// intended degradation, not an error
type ParticleSystem struct {
	world *engine.World
	rng   *vmath.FastRand

	capacity     int
	slots        []particleSlot
	spawnCounter uint64

	// Reused record buffer; the snapshot clone copies it out
	records []engine.ParticleRenderRecord

	// Telemetry
	statSpawns *atomic.Int64
	statLive   *atomic.Int64
}

// NewParticleSystem creates a pool with the default capacity
func NewParticleSystem(world *engine.World, seed uint64) engine.System {
	return NewParticleSystemSized(world, parameter.ParticleCapacity, seed)
}

// NewParticleSystemSized creates a pool with an explicit capacity
// Capacity is clamped into the supported range; it is structural and
// fixed for the system's lifetime
func NewParticleSystemSized(world *engine.World, capacity int, seed uint64) engine.System {
	if capacity < parameter.ParticleCapacityMin {
		capacity = parameter.ParticleCapacityMin
	}
	if capacity > parameter.ParticleCapacityMax {
		capacity = parameter.ParticleCapacityMax
	}

	s := &ParticleSystem{
		world:    world,
		rng:      vmath.NewFastRand(seed),
		capacity: capacity,
		slots:    make([]particleSlot, capacity),
		records:  make([]engine.ParticleRenderRecord, 0, capacity),
	}

	s.statSpawns = world.Resource.Status.Ints.Get("particle.spawns")
	s.statLive = world.Resource.Status.Ints.Get("particle.live")

	return s
}

func (s *ParticleSystem) Init() {
	for i := range s.slots {
		s.slots[i] = particleSlot{}
	}
	s.spawnCounter = 0
	s.records = s.records[:0]
	s.statLive.Store(0)
	s.world.Resource.Snapshot.Frame.Particles = nil
}

func (s *ParticleSystem) Priority() int {
	return constant.PriorityParticle
}

// Capacity returns the fixed slot count
func (s *ParticleSystem) Capacity() int {
	return s.capacity
}

func (s *ParticleSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventParticleSpawnRequest,
		event.EventSubmission,
		event.EventClick,
		event.EventSessionReset,
	}
}

// HandleEvent converts spawn requests and one-shot interaction events
// into pool writes; all paths serialize through the single spawn counter
// because dispatch runs on the tick goroutine
func (s *ParticleSystem) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventParticleSpawnRequest:
		p, ok := ev.Payload.(*event.ParticleSpawnRequestPayload)
		if !ok {
			return
		}
		for i := 0; i < p.Count; i++ {
			s.spawnScattered(p.X, p.Y, p.Z, p.Spread, p.Speed)
		}
		event.ReleaseSpawnRequest(p)

	case event.EventSubmission:
		// Burst from screen center; the pulse-driven renderer carries
		// the rest of the effect
		for i := 0; i < parameter.SubmissionBurstCount; i++ {
			s.spawnScattered(0.5, 0.5, 0,
				parameter.TypingSpawnSpread*2,
				s.rng.Range(parameter.ParticleSpeedMin, parameter.ParticleSpeedMax))
		}

	case event.EventClick:
		origin := [3]float64{0.5, 0.5, 0}
		if act := s.world.Resource.Activity; act.PointerValid {
			origin[0] = act.PointerX
			origin[1] = act.PointerY
		}
		for i := 0; i < parameter.ClickBurstCount; i++ {
			s.spawnScattered(origin[0], origin[1], origin[2],
				parameter.TypingSpawnSpread,
				s.rng.Range(parameter.ParticleSpeedMin, parameter.ParticleSpeedMax))
		}

	case event.EventSessionReset:
		s.Init()
	}
}

// spawnScattered jitters the origin before writing the slot
func (s *ParticleSystem) spawnScattered(x, y, z, spread, speed float64) {
	s.Spawn(
		[3]float64{
			x + s.rng.Range(-spread, spread),
			y + s.rng.Range(-spread, spread),
			z,
		},
		speed,
		s.rng.Float64(),
	)
}

// Spawn writes a particle into the next wrap-around slot and returns
// its index; never fails, old slot contents are discarded
func (s *ParticleSystem) Spawn(origin [3]float64, speedHint, seedHint float64) int {
	idx := int(s.spawnCounter % uint64(s.capacity))
	s.spawnCounter++

	s.slots[idx] = particleSlot{
		birthElapsed: s.world.Resource.Time.Elapsed,
		lifetime:     s.rng.Range(parameter.ParticleLifetimeMin, parameter.ParticleLifetimeMax),
		origin:       origin,
		seed:         vmath.Clamp(seedHint, 0, 0.999999),
		speed:        speedHint,
		used:         true,
	}

	s.statSpawns.Add(1)
	return idx
}

// Update recomputes every slot's normalized age and publishes the live
// render records; expired slots are skipped, not removed
func (s *ParticleSystem) Update() {
	elapsed := s.world.Resource.Time.Elapsed

	s.records = s.records[:0]
	for i := range s.slots {
		slot := &s.slots[i]
		if !slot.used || slot.lifetime <= 0 {
			continue
		}
		age := (elapsed - slot.birthElapsed) / slot.lifetime
		if age > 1 {
			continue
		}
		if age < 0 {
			age = 0
		}
		s.records = append(s.records, engine.ParticleRenderRecord{
			SlotIndex:     i,
			NormalizedAge: age,
			Origin:        slot.origin,
			Seed:          slot.seed,
			Speed:         slot.speed,
		})
	}

	s.world.Resource.Snapshot.Frame.Particles = s.records
	s.statLive.Store(int64(len(s.records)))
}
