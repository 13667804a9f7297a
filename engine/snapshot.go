package engine

// Outbound snapshot types sampled once per frame
// Value copies only; consumers never see live simulation storage

// ActivityState is the bounded drive state produced by the aggregator
// Every numeric field stays inside its declared range after every tick
type ActivityState struct {
	TypingSpeed     float64 `json:"typingSpeed"`     // [0, 3]
	ActivityLevel   float64 `json:"activityLevel"`   // [0, 1]
	SubmissionPulse float64 `json:"submissionPulse"` // [0, 1]
	ClickPulse      float64 `json:"clickPulse"`      // [0, 1]
	MouseSpeed      float64 `json:"mouseSpeed"`      // [0, 1]
	ScrollVelocity  float64 `json:"scrollVelocity"`  // [0, 1]
	IsTyping        bool    `json:"isTyping"`
	IdleTimeMs      int64   `json:"idleTimeMs"`
	InputLength     int     `json:"inputLength"`
	QuestionIndex   int     `json:"questionIndex"`
}

// ParticleRenderRecord describes one live particle slot
// NormalizedAge is recomputed per frame and always within [0, 1];
// motion integration from these parameters is the renderer's concern
type ParticleRenderRecord struct {
	SlotIndex     int        `json:"slotIndex"`
	NormalizedAge float64    `json:"normalizedAge"`
	Origin        [3]float64 `json:"origin"`
	Seed          float64    `json:"seed"`
	Speed         float64    `json:"speed"`
}

// CascadeSignalRecord describes one in-flight edge traversal
type CascadeSignalRecord struct {
	From     int     `json:"fromNode"`
	To       int     `json:"toNode"`
	Progress float64 `json:"progress"` // [0, 1]
}

// CascadeRenderRecord carries per-node firing levels and active signals
type CascadeRenderRecord struct {
	NodeFiringLevels []float64             `json:"nodeFiringLevels"`
	ActiveSignals    []CascadeSignalRecord `json:"activeSignals"`
}

// CascadeNodeLayout is the static geometry of one node
// Published once at construction; positions and edges never change
type CascadeNodeLayout struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Layer       int     `json:"layer"`
	Connections []int   `json:"connections"`
}

// FrameSnapshot bundles everything a rendering collaborator needs
// for one frame
type FrameSnapshot struct {
	FrameNumber int64                  `json:"frame"`
	Elapsed     float64                `json:"elapsed"`
	Activity    ActivityState          `json:"activity"`
	Particles   []ParticleRenderRecord `json:"particles"`
	Cascade     CascadeRenderRecord    `json:"cascade"`
}

// Clone returns a deep copy safe to hand across goroutines
// Slice storage is duplicated; the live snapshot keeps its buffers
func (s *FrameSnapshot) Clone() FrameSnapshot {
	out := FrameSnapshot{
		FrameNumber: s.FrameNumber,
		Elapsed:     s.Elapsed,
		Activity:    s.Activity,
	}
	if len(s.Particles) > 0 {
		out.Particles = make([]ParticleRenderRecord, len(s.Particles))
		copy(out.Particles, s.Particles)
	}
	if len(s.Cascade.NodeFiringLevels) > 0 {
		out.Cascade.NodeFiringLevels = make([]float64, len(s.Cascade.NodeFiringLevels))
		copy(out.Cascade.NodeFiringLevels, s.Cascade.NodeFiringLevels)
	}
	if len(s.Cascade.ActiveSignals) > 0 {
		out.Cascade.ActiveSignals = make([]CascadeSignalRecord, len(s.Cascade.ActiveSignals))
		copy(out.Cascade.ActiveSignals, s.Cascade.ActiveSignals)
	}
	return out
}
