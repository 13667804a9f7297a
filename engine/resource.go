package engine

import (
	"time"

	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/parameter"
	"github.com/emberlit/afterglow/stage"
	"github.com/emberlit/afterglow/status"
)

// Resource holds singleton simulation resources, initialized during
// world creation, accessed via World.Resource
type Resource struct {
	Time     *TimeResource
	Event    *EventQueueResource
	Activity *ActivityResource
	Snapshot *SnapshotResource
	Cascade  *CascadeLayoutResource
	Tuning   *TuningResource
	Stage    *StageResource

	// Telemetry
	Status *status.Registry
}

// TimeResource wraps time data for systems
// It is updated by the ClockScheduler at the start of a tick
type TimeResource struct {
	// GameTime is the current simulation time (affected by pause)
	GameTime time.Time

	// RealTime is the wall-clock time (unaffected by pause)
	RealTime time.Time

	// DeltaTime is the duration since the last update
	DeltaTime time.Duration

	// Elapsed is simulation seconds since start, pause-adjusted
	// Transient entities store birth times against this axis
	Elapsed float64

	// FrameNumber is the current tick count
	FrameNumber int64
}

// Update modifies TimeResource fields in-place (zero allocation)
// Must be called under world lock to prevent races with system reads
func (tr *TimeResource) Update(gameTime, realTime time.Time, deltaTime time.Duration, elapsed float64, frameNumber int64) {
	tr.GameTime = gameTime
	tr.RealTime = realTime
	tr.DeltaTime = deltaTime
	tr.Elapsed = elapsed
	tr.FrameNumber = frameNumber
}

// EventQueueResource wraps the event queue for system access
type EventQueueResource struct {
	Queue *event.EventQueue
}

// ActivityResource publishes the aggregator's current drive state
// Written by ActivitySystem each tick; read-only to every other system
// Pointer position rides along so downstream systems consume it from
// here instead of subscribing to the pooled pointer events themselves
type ActivityResource struct {
	State ActivityState

	PointerX     float64
	PointerY     float64
	PointerValid bool
}

// SnapshotResource is the live outbound frame assembled during update
// Systems write their sections under the world lock; consumers take
// deep copies via World.Snapshot
type SnapshotResource struct {
	Frame FrameSnapshot
}

// CascadeLayoutResource publishes the static cascade geometry
// Set once by CascadeSystem at init; renderers and transports read it
type CascadeLayoutResource struct {
	Nodes []CascadeNodeLayout
}

// StageResource tracks the loaded stage script and current position
// Index advances on question-change events
type StageResource struct {
	Script *stage.Script
	Index  int
}

// TuningResource holds the hot-reloadable tuning values
// Mutated only under the world lock; systems read fields per tick
// Structural settings (pool capacity, topology) are fixed at startup
// and intentionally absent here
type TuningResource struct {
	IdleTimeoutMs        int64
	TypingSpawnRate      float64
	ChainProbabilityMin  float64
	ChainProbabilityMax  float64
	RefireGuardThreshold float64
	MaxActiveSignals     int
	AmbientIntervalIdle  float64
	AmbientIntervalActive float64
	ProximityFireRadius  float64
}

// NewTuningResource returns tuning initialized from package defaults
func NewTuningResource() *TuningResource {
	return &TuningResource{
		IdleTimeoutMs:         parameter.IdleTimeoutMs,
		TypingSpawnRate:       parameter.TypingSpawnRate,
		ChainProbabilityMin:   parameter.ChainProbabilityMin,
		ChainProbabilityMax:   parameter.ChainProbabilityMax,
		RefireGuardThreshold:  parameter.RefireGuardThreshold,
		MaxActiveSignals:      parameter.MaxActiveSignals,
		AmbientIntervalIdle:   parameter.AmbientIntervalIdle,
		AmbientIntervalActive: parameter.AmbientIntervalActive,
		ProximityFireRadius:   parameter.ProximityFireRadius,
	}
}
