package event

// SoundCue selects a synthesized audio cue
type SoundCue int

const (
	CueSubmission SoundCue = iota
	CueStageChange
	CueCascade
)

// KeystrokePayload carries one key press
// Timestamp comes from the source so inter-key timing survives queue latency
type KeystrokePayload struct {
	Key         rune
	InputLength int
	TimestampMs int64
}

// TypingSpeedSamplePayload carries a host-measured typing speed sample
type TypingSpeedSamplePayload struct {
	Speed float64
}

// SubmissionPayload carries a completed stage response
type SubmissionPayload struct {
	QuestionIndex  int
	ResponseLength int
	TimestampMs    int64
}

// QuestionChangePayload carries stage navigation
type QuestionChangePayload struct {
	FromIndex int
	ToIndex   int
}

// ClickPayload carries a discrete click
type ClickPayload struct {
	TimestampMs int64
}

// PointerMovePayload carries normalized pointer position in [0,1]
type PointerMovePayload struct {
	X float64
	Y float64
}

// ScrollPayload carries raw wheel delta; sign indicates direction
type ScrollPayload struct {
	DeltaY float64
}

// ParticleSpawnRequestPayload asks the pool for Count spawns around an origin
type ParticleSpawnRequestPayload struct {
	X, Y, Z float64
	Speed   float64
	Spread  float64
	Count   int
}

// SoundRequestPayload selects the cue to synthesize
type SoundRequestPayload struct {
	Cue SoundCue
}
