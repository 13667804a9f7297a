package system

import (
	"sync/atomic"

	"github.com/emberlit/afterglow/constant"
	"github.com/emberlit/afterglow/engine"
	"github.com/emberlit/afterglow/event"
	"github.com/emberlit/afterglow/parameter"
	"github.com/emberlit/afterglow/status"
	"github.com/emberlit/afterglow/vmath"
)

// ActivitySystem converts the interaction event stream into the
// bounded, decaying ActivityState sampled once per tick
// Event handlers mutate raw accumulators only; all decay and smoothing
// happens in Update, so every frame observes one consistent state
type ActivitySystem struct {
	world *engine.World

	state engine.ActivityState

	// Keystroke rate estimation from source timestamps
	// Source timing survives queue latency between producer and tick
	lastKeystrokeMs int64
	hasKeystroke    bool
	keyRate         float64 // EMA of instantaneous keystrokes/sec

	// Idle tracking on the simulation time axis
	lastTypingElapsed float64
	typingSeen        bool

	// Pulses set by events skip decay for one tick so renderers see
	// the full spike
	submissionFresh bool
	clickFresh      bool

	// Pointer accumulators merged between ticks
	pointerX, pointerY float64
	pointerValid       bool
	mouseTravel        float64
	scrollTravel       float64

	// Fractional spawn budget for drive-driven particle requests
	spawnAccum float64

	// Telemetry
	statLevel     *status.AtomicFloat
	statSpeed     *status.AtomicFloat
	statSpeedPeak *status.AtomicFloat
	statTyping    *atomic.Bool
	statEvents    *atomic.Int64
}

func NewActivitySystem(world *engine.World) engine.System {
	s := &ActivitySystem{
		world: world,
	}

	s.statLevel = world.Resource.Status.Floats.Get("activity.level")
	s.statSpeed = world.Resource.Status.Floats.Get("activity.typing_speed")
	s.statSpeedPeak = world.Resource.Status.Floats.Get("activity.typing_speed_peak")
	s.statTyping = world.Resource.Status.Bools.Get("activity.typing")
	s.statEvents = world.Resource.Status.Ints.Get("activity.events")

	s.initLocked()
	return s
}

func (s *ActivitySystem) Init() {
	s.initLocked()
}

func (s *ActivitySystem) initLocked() {
	s.state = engine.ActivityState{}
	s.lastKeystrokeMs = 0
	s.hasKeystroke = false
	s.keyRate = 0
	s.lastTypingElapsed = 0
	s.typingSeen = false
	s.submissionFresh = false
	s.clickFresh = false
	s.pointerValid = false
	s.mouseTravel = 0
	s.scrollTravel = 0
	s.spawnAccum = 0
	s.statLevel.Set(0)
	s.statSpeed.Set(0)
	s.statSpeedPeak.Set(0)
	s.statTyping.Store(false)
	s.world.Resource.Stage.Index = 0
	s.publish()
}

func (s *ActivitySystem) Priority() int {
	return constant.PriorityActivity
}

func (s *ActivitySystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventKeystroke,
		event.EventTypingSpeedSample,
		event.EventSubmission,
		event.EventQuestionChange,
		event.EventClick,
		event.EventPointerMove,
		event.EventScroll,
		event.EventSessionReset,
	}
}

// HandleEvent applies one interaction event to the raw accumulators
// Out-of-range payload fields are clamped, never rejected
func (s *ActivitySystem) HandleEvent(ev event.GameEvent) {
	s.statEvents.Add(1)

	switch ev.Type {
	case event.EventKeystroke:
		p, ok := ev.Payload.(*event.KeystrokePayload)
		if !ok {
			return
		}
		s.applyKeystroke(p)
		event.ReleaseKeystroke(p)

	case event.EventTypingSpeedSample:
		p, ok := ev.Payload.(*event.TypingSpeedSamplePayload)
		if !ok {
			return
		}
		s.state.TypingSpeed = vmath.Clamp(p.Speed, 0, parameter.TypingSpeedMax)
		s.keyRate = s.state.TypingSpeed / parameter.TypingSpeedMax * parameter.TypingSpeedFullRate
		s.markTyping()

	case event.EventSubmission:
		p, ok := ev.Payload.(*event.SubmissionPayload)
		if !ok {
			return
		}
		s.state.SubmissionPulse = 1
		s.submissionFresh = true
		if p.QuestionIndex >= 0 {
			s.state.QuestionIndex = p.QuestionIndex
		}
		// Response field clears on submit
		s.state.InputLength = 0
		s.world.PushEvent(event.EventSoundRequest, event.AcquireSoundRequest(event.CueSubmission))

	case event.EventQuestionChange:
		p, ok := ev.Payload.(*event.QuestionChangePayload)
		if !ok {
			return
		}
		to := p.ToIndex
		if to < 0 {
			to = 0
		}
		s.state.QuestionIndex = to
		s.state.InputLength = 0
		s.statSpeedPeak.Set(0)
		s.world.Resource.Stage.Index = to
		s.world.PushEvent(event.EventSoundRequest, event.AcquireSoundRequest(event.CueStageChange))

	case event.EventClick:
		if _, ok := ev.Payload.(*event.ClickPayload); !ok {
			return
		}
		s.state.ClickPulse = 1
		s.clickFresh = true

	case event.EventPointerMove:
		p, ok := ev.Payload.(*event.PointerMovePayload)
		if !ok {
			return
		}
		x := vmath.Clamp01(p.X)
		y := vmath.Clamp01(p.Y)
		if s.pointerValid {
			s.mouseTravel += vmath.Dist(s.pointerX, s.pointerY, x, y)
		}
		s.pointerX, s.pointerY = x, y
		s.pointerValid = true
		event.ReleasePointerMove(p)

	case event.EventScroll:
		p, ok := ev.Payload.(*event.ScrollPayload)
		if !ok {
			return
		}
		delta := p.DeltaY
		if delta < 0 {
			delta = -delta
		}
		s.scrollTravel += delta
		event.ReleaseScroll(p)

	case event.EventSessionReset:
		s.Init()
	}
}

// applyKeystroke folds one key press into the rate estimate
func (s *ActivitySystem) applyKeystroke(p *event.KeystrokePayload) {
	if p.InputLength >= 0 {
		s.state.InputLength = p.InputLength
	}

	if s.hasKeystroke {
		dtk := float64(p.TimestampMs-s.lastKeystrokeMs) / 1000.0
		if dtk > 0 && dtk <= parameter.KeystrokeIntervalCeiling {
			instant := 1.0 / dtk
			s.keyRate = vmath.Lerp(s.keyRate, instant, parameter.KeystrokeRateSmoothing)
		}
	}
	s.lastKeystrokeMs = p.TimestampMs
	s.hasKeystroke = true

	s.state.TypingSpeed = vmath.Clamp01(s.keyRate/parameter.TypingSpeedFullRate) * parameter.TypingSpeedMax
	s.markTyping()
}

// markTyping flags typing on the simulation time axis
// The tick that dispatched this event has already updated TimeResource
func (s *ActivitySystem) markTyping() {
	s.state.IsTyping = true
	s.typingSeen = true
	s.lastTypingElapsed = s.world.Resource.Time.Elapsed
}

// Update advances decay and smoothing by one tick and publishes the
// state snapshot
func (s *ActivitySystem) Update() {
	res := s.world.Resource
	dt := res.Time.DeltaTime.Seconds()
	if dt > parameter.MaxTickDelta {
		dt = parameter.MaxTickDelta
	}
	elapsed := res.Time.Elapsed

	// Idle transition: typing stops idleTimeout after the last keystroke
	if s.typingSeen {
		s.state.IdleTimeMs = int64((elapsed - s.lastTypingElapsed) * 1000)
	} else {
		s.state.IdleTimeMs = int64(elapsed * 1000)
	}
	if s.state.IdleTimeMs < 0 {
		s.state.IdleTimeMs = 0
	}
	if s.state.IsTyping && s.state.IdleTimeMs > res.Tuning.IdleTimeoutMs {
		s.state.IsTyping = false
	}

	// Typing speed decays linearly, only while idle
	if !s.state.IsTyping && s.state.TypingSpeed > 0 {
		s.state.TypingSpeed -= parameter.TypingSpeedIdleDecayRate * dt
		if s.state.TypingSpeed < 0 {
			s.state.TypingSpeed = 0
		}
		s.keyRate = s.state.TypingSpeed / parameter.TypingSpeedMax * parameter.TypingSpeedFullRate
	}

	// Pulse decay; a pulse set since the last tick keeps its spike
	// for one frame
	if s.submissionFresh {
		s.submissionFresh = false
	} else {
		s.state.SubmissionPulse *= vmath.FrameDecay(parameter.SubmissionPulseDecay, dt, parameter.ReferenceFrameRate)
	}
	if s.clickFresh {
		s.clickFresh = false
	} else {
		s.state.ClickPulse *= vmath.FrameDecay(parameter.ClickPulseDecay, dt, parameter.ReferenceFrameRate)
	}

	// Pointer and scroll velocities: decayed value or the fresh
	// accumulated rate, whichever is higher
	mouseInstant := 0.0
	scrollInstant := 0.0
	if dt > 0 {
		mouseInstant = vmath.Clamp01(s.mouseTravel / dt / parameter.MouseSpeedFullRate)
		scrollInstant = vmath.Clamp01(s.scrollTravel / dt / parameter.ScrollFullRate)
	}
	s.mouseTravel = 0
	s.scrollTravel = 0

	decayedMouse := s.state.MouseSpeed * vmath.FrameDecay(parameter.MouseSpeedDecay, dt, parameter.ReferenceFrameRate)
	if mouseInstant > decayedMouse {
		s.state.MouseSpeed = mouseInstant
	} else {
		s.state.MouseSpeed = decayedMouse
	}

	decayedScroll := s.state.ScrollVelocity * vmath.FrameDecay(parameter.ScrollVelocityDecay, dt, parameter.ReferenceFrameRate)
	if scrollInstant > decayedScroll {
		s.state.ScrollVelocity = scrollInstant
	} else {
		s.state.ScrollVelocity = decayedScroll
	}

	// Composite activity level smoothed toward its weighted target
	target := vmath.Clamp01(
		parameter.WeightTypingSpeed*(s.state.TypingSpeed/parameter.TypingSpeedMax) +
			parameter.WeightMouseSpeed*s.state.MouseSpeed +
			parameter.WeightClickPulse*s.state.ClickPulse +
			parameter.WeightSubmissionPulse*s.state.SubmissionPulse +
			parameter.WeightScrollVelocity*s.state.ScrollVelocity)
	s.state.ActivityLevel += (target - s.state.ActivityLevel) *
		vmath.SmoothFactor(parameter.ActivitySmoothing, dt, parameter.ReferenceFrameRate)
	s.state.ActivityLevel = vmath.Clamp01(s.state.ActivityLevel)

	// Drive-driven particle spawns while typing
	if s.state.IsTyping && s.state.TypingSpeed > 0 {
		s.spawnAccum += res.Tuning.TypingSpawnRate * (s.state.TypingSpeed / parameter.TypingSpeedMax) * dt
		if n := int(s.spawnAccum); n > 0 {
			s.spawnAccum -= float64(n)
			s.world.PushEvent(event.EventParticleSpawnRequest, event.AcquireSpawnRequest(
				0.5, 0.85, 0,
				vmath.Lerp(parameter.ParticleSpeedMin, parameter.ParticleSpeedMax, s.state.TypingSpeed/parameter.TypingSpeedMax),
				parameter.TypingSpawnSpread,
				n,
			))
		}
	} else {
		s.spawnAccum = 0
	}

	s.publish()
}

// publish writes the state to the shared resources and telemetry
func (s *ActivitySystem) publish() {
	res := s.world.Resource
	res.Activity.State = s.state
	res.Activity.PointerX = s.pointerX
	res.Activity.PointerY = s.pointerY
	res.Activity.PointerValid = s.pointerValid
	res.Snapshot.Frame.Activity = s.state

	s.statLevel.Set(s.state.ActivityLevel)
	s.statSpeed.Set(s.state.TypingSpeed)
	s.statSpeedPeak.Max(s.state.TypingSpeed)
	s.statTyping.Store(s.state.IsTyping)
}
