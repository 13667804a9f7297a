package status

import "sync/atomic"

// Registry is the central metrics facade
// Systems cache pointers during init; update loops write directly to atomics
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Export flattens the registry into a plain map for transport layers
// Values are read atomically; the map itself is a point-in-time copy
func (r *Registry) Export() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Bools.Range(func(key string, ptr *atomic.Bool) {
		out[key] = ptr.Load()
	})
	r.Ints.Range(func(key string, ptr *atomic.Int64) {
		out[key] = ptr.Load()
	})
	r.Floats.Range(func(key string, ptr *AtomicFloat) {
		out[key] = ptr.Get()
	})
	r.Strings.Range(func(key string, ptr *AtomicString) {
		out[key] = ptr.Get()
	})
	return out
}
