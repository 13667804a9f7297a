package parameter

// Drive Signal Bounds
const (
	// TypingSpeedMax is the upper bound of the typing speed drive
	TypingSpeedMax = 3.0

	// TypingSpeedFullRate is the keystroke rate (keys/sec) that maps to
	// TypingSpeedMax; faster typing clamps at the bound
	TypingSpeedFullRate = 12.0

	// KeystrokeRateSmoothing blends the instantaneous inter-key rate
	// into the running rate estimate on every keystroke
	KeystrokeRateSmoothing = 0.4

	// KeystrokeIntervalCeiling ignores inter-key gaps longer than this
	// (seconds) when estimating rate; the pause path handles long gaps
	KeystrokeIntervalCeiling = 2.0
)

// Per-Frame Decay Constants (tuned at ReferenceFrameRate)
const (
	// ClickPulseDecay drains the click pulse within ~1s
	ClickPulseDecay = 0.94

	// SubmissionPulseDecay drains the submission pulse within ~1.5s
	SubmissionPulseDecay = 0.97

	// MouseSpeedDecay drains pointer speed quickly once motion stops
	MouseSpeedDecay = 0.90

	// ScrollVelocityDecay drains scroll velocity slightly slower than
	// pointer speed so flick scrolling reads as sustained motion
	ScrollVelocityDecay = 0.92

	// TypingSpeedIdleDecayRate is the linear decay (units/sec) applied
	// to typing speed only while the typist is idle
	TypingSpeedIdleDecayRate = 6.0
)

// Activity Level Smoothing
const (
	// ActivitySmoothing is the per-frame interpolation factor pulling
	// the composite activity level toward its target
	ActivitySmoothing = 0.08

	// Target weights for the composite activity level
	// Each weight stays at or below 0.5; the summed target is clamped
	WeightTypingSpeed     = 0.40
	WeightMouseSpeed      = 0.20
	WeightClickPulse      = 0.15
	WeightSubmissionPulse = 0.15
	WeightScrollVelocity  = 0.10
)

// Idle Detection
const (
	// IdleTimeoutMs is the silence window (ms) after the last keystroke
	// before the typist is considered idle
	IdleTimeoutMs = 1500
)

// Pointer & Scroll Normalization
const (
	// MouseSpeedFullRate is the pointer travel rate (normalized
	// screen units/sec) that maps to full mouse speed
	MouseSpeedFullRate = 2.0

	// ScrollFullRate is the raw wheel delta per second that maps to
	// full scroll velocity (one notch is ~120 units)
	ScrollFullRate = 600.0
)
