package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/emberlit/afterglow/event"
)

const sampleRate = beep.SampleRate(48000)

// Player synthesizes short cue tones on demand
// Missing audio backends degrade to silence: every method is safe to
// call on an uninitialized player
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewPlayer creates a player without touching the audio backend
func NewPlayer() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and attaches the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences the mixer; beep has no speaker close
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// SetMuted toggles cue playback without tearing down the backend
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Play synthesizes one cue and hands it to the mixer
// Drained streamers fall out of the mixer on their own
func (p *Player) Play(cue event.SoundCue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}

	var streamer beep.Streamer
	switch cue {
	case event.CueSubmission:
		// Rising two-note chirp
		streamer = beep.Seq(
			NewEnvelope(NewTone(523, 90*time.Millisecond, sampleRate),
				90*time.Millisecond, 8*time.Millisecond, 30*time.Millisecond, sampleRate),
			NewEnvelope(NewTone(784, 140*time.Millisecond, sampleRate),
				140*time.Millisecond, 8*time.Millisecond, 60*time.Millisecond, sampleRate),
		)
	case event.CueStageChange:
		streamer = NewEnvelope(NewSweep(330, 494, 160*time.Millisecond, sampleRate),
			160*time.Millisecond, 10*time.Millisecond, 60*time.Millisecond, sampleRate)
	case event.CueCascade:
		streamer = NewEnvelope(NewTone(880, 45*time.Millisecond, sampleRate),
			45*time.Millisecond, 3*time.Millisecond, 25*time.Millisecond, sampleRate)
	default:
		return
	}

	speaker.Lock()
	p.mixer.Add(&effects.Gain{Streamer: streamer, Gain: -0.6})
	speaker.Unlock()
}
