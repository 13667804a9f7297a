package vmath

import "math"

// Clamp constrains v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 constrains v to the unit interval
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates from a to b by t
// t is not clamped; callers clamp when needed
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// FrameDecay converts a per-frame decay constant tuned at the reference
// frame rate into the equivalent factor for an arbitrary dt
// Keeps decay half-life stable when the tick interval changes
func FrameDecay(perFrame, dtSeconds, referenceRate float64) float64 {
	if dtSeconds <= 0 {
		return 1
	}
	return math.Pow(perFrame, dtSeconds*referenceRate)
}

// SmoothFactor converts a per-frame smoothing factor tuned at the
// reference frame rate into the equivalent factor for an arbitrary dt
func SmoothFactor(perFrame, dtSeconds, referenceRate float64) float64 {
	if dtSeconds <= 0 {
		return 0
	}
	return 1 - math.Pow(1-perFrame, dtSeconds*referenceRate)
}

// Dist returns the euclidean distance between two 2D points
func Dist(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// FastRand is a xorshift64 PRNG for visual randomness
// Not cryptographically secure; deterministic for a given seed
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator; zero seed is remapped to 1
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// Next returns the next raw 64-bit value
func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n); returns 0 when n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// Chance returns true with probability p
func (r *FastRand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}
