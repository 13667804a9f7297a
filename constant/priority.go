package constant

// System Execution Priorities (lower runs first)
const (
	PriorityActivity = 10 // Drives first; downstream systems read its state
	PriorityParticle = 20 // After activity, consumes spawn requests
	PriorityCascade  = 30 // After activity, reads drive state for chain probability
	PriorityAudio    = 40 // After simulation, consumes sound requests
	PriorityRecorder = 50 // Last; samples the finished frame for persistence
)
