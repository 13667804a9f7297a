package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// oscillator generates a fixed-duration sine tone with an optional
// linear frequency sweep
type oscillator struct {
	startFreq float64
	endFreq   float64
	phase     float64
	duration  int
	position  int
	rate      beep.SampleRate
}

// NewTone creates a constant-frequency sine streamer
func NewTone(freq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, rate)
}

// NewSweep creates a sine streamer sweeping linearly between two
// frequencies over its duration
func NewSweep(startFreq, endFreq float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		startFreq: startFreq,
		endFreq:   endFreq,
		duration:  rate.N(duration),
		rate:      rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		val := math.Sin(2 * math.Pi * o.phase)
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		freq := o.startFreq + (o.endFreq-o.startFreq)*t
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping so cues start and stop
// without clicks
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps a streamer with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		att = total / 2
		rel = total - att
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		pos := e.position + i
		gain := 1.0
		if pos < e.attackSamples {
			gain = float64(pos) / float64(e.attackSamples)
		} else if remaining := e.totalSamples - pos; remaining < e.releaseSamples {
			gain = float64(remaining) / float64(e.releaseSamples)
			if gain < 0 {
				gain = 0
			}
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	e.position += n
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
