package parameter

import "time"

// Simulation Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// SimulationTickInterval is the simulation update interval (clock tick)
	// One tick per rendered frame; decay constants are tuned at this rate
	SimulationTickInterval = 16 * time.Millisecond

	// SnapshotStreamInterval is the cadence for pushing frame snapshots
	// to remote stream consumers (slower than the local render loop)
	SnapshotStreamInterval = 50 * time.Millisecond

	// ReferenceFrameRate is the frame rate the per-frame decay and
	// smoothing constants are tuned against
	ReferenceFrameRate = 60.0

	// MaxTickDelta caps the dt fed to systems after a stall so decaying
	// state does not snap to zero when the host hiccups
	MaxTickDelta = 0.1
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047
)
