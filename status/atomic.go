package status

import (
	"math"
	"sync"
	"sync/atomic"
)

// AtomicFloat provides atomic float64 operations using bit conversion
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a float64 value atomically
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the float64 value atomically
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add atomically adds delta to the current value and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		newVal := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(newVal)) {
			return newVal
		}
	}
}

// Max atomically raises the value to val if val is larger
func (f *AtomicFloat) Max(val float64) {
	for {
		old := f.bits.Load()
		if math.Float64frombits(old) >= val {
			return
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(val)) {
			return
		}
	}
}

// AtomicString provides mutex-guarded string storage
// Strings are rare in the hot path; a mutex is sufficient
type AtomicString struct {
	mu  sync.RWMutex
	val string
}

// Set stores a string value
func (s *AtomicString) Set(val string) {
	s.mu.Lock()
	s.val = val
	s.mu.Unlock()
}

// Get loads the string value
func (s *AtomicString) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.val
}
