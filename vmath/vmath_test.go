package vmath

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  float64
		expected   float64
	}{
		{"below range", -0.5, 0, 1, 0},
		{"above range", 1.7, 0, 1, 1},
		{"inside range", 0.42, 0, 1, 0.42},
		{"at lower bound", 0, 0, 1, 0},
		{"at upper bound", 3, 0, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestFrameDecay(t *testing.T) {
	// At exactly one reference frame the factor equals the constant
	got := FrameDecay(0.95, 1.0/60.0, 60)
	if math.Abs(got-0.95) > 1e-9 {
		t.Errorf("FrameDecay at reference dt = %v, want 0.95", got)
	}

	// Two reference frames compound
	got = FrameDecay(0.95, 2.0/60.0, 60)
	if math.Abs(got-0.95*0.95) > 1e-9 {
		t.Errorf("FrameDecay at 2x reference dt = %v, want %v", got, 0.95*0.95)
	}

	// Zero dt decays nothing
	if got := FrameDecay(0.95, 0, 60); got != 1 {
		t.Errorf("FrameDecay with zero dt = %v, want 1", got)
	}
}

func TestSmoothFactorConvergence(t *testing.T) {
	// Applying the dt-corrected factor over N small steps must land at
	// the same point as N reference-rate steps of the base factor
	const base = 0.08
	const steps = 120

	ref := 0.0
	for i := 0; i < steps; i++ {
		ref += (1 - ref) * base
	}

	small := 0.0
	f := SmoothFactor(base, 1.0/120.0, 60)
	for i := 0; i < steps*2; i++ {
		small += (1 - small) * f
	}

	if math.Abs(ref-small) > 1e-6 {
		t.Errorf("smoothing diverged: reference %v, half-step %v", ref, small)
	}
}

func TestFastRandDeterminism(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)

	for i := 0; i < 1000; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("same seed diverged at iteration %d", i)
		}
	}
}

func TestFastRandFloat64Bounds(t *testing.T) {
	r := NewFastRand(7)
	for i := 0; i < 10000; i++ {
		v := r.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %v out of [0,1)", v)
		}
	}
}

func TestFastRandRange(t *testing.T) {
	r := NewFastRand(99)
	for i := 0; i < 10000; i++ {
		v := r.Range(0.25, 0.4)
		if v < 0.25 || v >= 0.4 {
			t.Fatalf("Range(0.25, 0.4) = %v out of bounds", v)
		}
	}
}

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	if r.Next() == 0 {
		t.Error("zero seed must be remapped, got zero state")
	}
}

func TestFastRandIntnDistribution(t *testing.T) {
	r := NewFastRand(1234)
	counts := make([]int, 4)
	for i := 0; i < 40000; i++ {
		counts[r.Intn(4)]++
	}
	for bucket, c := range counts {
		if c < 8000 || c > 12000 {
			t.Errorf("bucket %d heavily skewed: %d of 40000", bucket, c)
		}
	}
}

func TestChance(t *testing.T) {
	r := NewFastRand(5)
	if r.Chance(0) {
		t.Error("Chance(0) must never fire")
	}
	if !r.Chance(1) {
		t.Error("Chance(1) must always fire")
	}

	hits := 0
	for i := 0; i < 10000; i++ {
		if r.Chance(0.3) {
			hits++
		}
	}
	if hits < 2500 || hits > 3500 {
		t.Errorf("Chance(0.3) hit rate %d/10000, expected near 3000", hits)
	}
}
