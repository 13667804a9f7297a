package event

// EventType identifies a simulation event
type EventType int

const (
	// EventNone is the zero value; never emitted
	EventNone EventType = iota

	// === Interaction Events (inbound taxonomy) ===

	// EventKeystroke signals one key press in the response field
	// Trigger: Input collaborators (terminal input, web ingest)
	// Consumer: ActivitySystem | Payload: *KeystrokePayload
	EventKeystroke

	// EventTypingSpeedSample delivers an externally measured typing speed
	// Trigger: Host apps that compute their own speed metric
	// Consumer: ActivitySystem | Payload: *TypingSpeedSamplePayload
	EventTypingSpeedSample

	// EventSubmission signals a completed stage response
	// Trigger: Submit action in input collaborators
	// Consumer: ActivitySystem, ParticleSystem, CascadeSystem, session recorder | Payload: *SubmissionPayload
	EventSubmission

	// EventQuestionChange signals navigation between stages
	// Trigger: Stage navigation in input collaborators
	// Consumer: ActivitySystem, session recorder | Payload: *QuestionChangePayload
	EventQuestionChange

	// EventClick signals a discrete pointer click
	// Trigger: Input collaborators
	// Consumer: ActivitySystem, ParticleSystem | Payload: *ClickPayload
	EventClick

	// EventPointerMove reports normalized pointer position
	// Trigger: Input collaborators, throttled at the source
	// Consumer: ActivitySystem, CascadeSystem | Payload: *PointerMovePayload
	EventPointerMove

	// EventScroll reports wheel or drag scrolling
	// Trigger: Input collaborators
	// Consumer: ActivitySystem | Payload: *ScrollPayload
	EventScroll

	// === Internal Events ===

	// EventParticleSpawnRequest asks the pool for drive-driven spawns
	// Trigger: ActivitySystem while typing is active
	// Consumer: ParticleSystem | Payload: *ParticleSpawnRequestPayload
	EventParticleSpawnRequest

	// EventSoundRequest requests an audio cue
	// Trigger: Simulation systems on notable transitions
	// Consumer: AudioSystem | Payload: *SoundRequestPayload
	EventSoundRequest

	// EventSessionReset restarts the experience from the first stage
	// Trigger: Input collaborators, web ingest
	// Consumer: All systems | Payload: nil
	EventSessionReset
)

// GameEvent is a single queued event with its origin frame
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
