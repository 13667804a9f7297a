package parameter

// Cascade Topology (fixed at construction)
const (
	// CascadeLayers is the layer count of the network
	CascadeLayers = 5

	// CascadeNodes is the total node count distributed across layers
	CascadeNodes = 45

	// CascadeConnectionsMin and CascadeConnectionsMax bound the outgoing
	// edge count per node; edges only target the next layer
	CascadeConnectionsMin = 2
	CascadeConnectionsMax = 4

	// CascadeLayerJitter is the vertical jitter applied to node
	// positions within a layer (normalized units)
	CascadeLayerJitter = 0.06
)

// Firing Dynamics
const (
	// FiringDecayPerFrame drains a fired node back toward dormant
	// within roughly 0.35s at the reference frame rate
	FiringDecayPerFrame = 0.86

	// RefireGuardThreshold blocks chain re-firing while a node is still
	// hot; the load-bearing bound against self-sustaining cascades
	RefireGuardThreshold = 0.3

	// DormantFiringLevel is the level below which a node reads as dormant
	DormantFiringLevel = 0.05
)

// Signal Propagation
const (
	// SignalDurationMin and SignalDurationMax bound the randomized
	// edge-traversal time (seconds)
	SignalDurationMin = 0.25
	SignalDurationMax = 0.40

	// SignalStagger delays successive signals from one firing so a
	// fan-out does not travel as a single flat wavefront
	SignalStagger = 0.03

	// MaxActiveSignals is the global ceiling on in-flight signals;
	// fan-out past the ceiling is dropped
	MaxActiveSignals = 96
)

// Chain Probability
const (
	// ChainProbabilityMin and ChainProbabilityMax bound the re-fire
	// probability derived from the activity drives
	ChainProbabilityMin = 0.3
	ChainProbabilityMax = 0.9
)

// External Triggers
const (
	// ProximityFireRadius is the normalized pointer distance within
	// which a dormant node is fired by pointer movement
	ProximityFireRadius = 0.12

	// AmbientIntervalIdle is the mean seconds between ambient fires
	// while the scene is quiescent
	AmbientIntervalIdle = 3.0

	// AmbientIntervalActive is the mean seconds between ambient fires
	// at full activity
	AmbientIntervalActive = 0.8

	// SubmissionFireCount is how many entry-layer nodes fire on submission
	SubmissionFireCount = 3
)
