package engine

import "time"

// TimeProvider abstracts the time source so clocks are testable
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real system clock with monotonic
// readings; the production time source
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates the production time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
