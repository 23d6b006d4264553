// Package metric collects lightweight counters, histograms and gauges
// without pulling in a full metrics client — every call is an in-process
// map update guarded by a mutex. Neither the dispatcher nor the pattern
// analyzer records into it; callers feed a collector themselves.
package metric

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/cinderlog/cinder/core"
)

// MetricsCollector is the contract DefaultMetricsCollector implements; it is
// the type accepted by logger.LoggerConfig and embedded by api.MetricsInterface.
type MetricsCollector interface {
	IncrementCounter(level core.Level, tags map[string]string)
	RecordHistogram(name string, value float64, tags map[string]string)
	GetHistogram(name string) (min, max, avg, p95 float64)
	RecordGauge(name string, value float64, tags map[string]string)
	GetCounter(name string) int64
	GetGauge(name string) float64
}

// DefaultMetricsCollector is the built-in MetricsCollector implementation.
// Counters are keyed by name, histograms retain their raw samples for
// min/max/avg/p95 computation, and gauges hold the last recorded value.
type DefaultMetricsCollector struct {
	mu         sync.RWMutex
	counters   map[string]int64
	histograms map[string][]float64
	gauges     map[string]float64
}

// NewDefaultMetricsCollector returns a collector with empty, non-nil maps.
func NewDefaultMetricsCollector() *DefaultMetricsCollector {
	return &DefaultMetricsCollector{
		counters:   make(map[string]int64),
		histograms: make(map[string][]float64),
		gauges:     make(map[string]float64),
	}
}

// IncrementCounter bumps "log.<level>" (lowercase) for a valid level. Tags
// are accepted for interface compatibility but not yet broken out per-tag.
// An out-of-range level is silently dropped rather than corrupting the
// counter namespace with a garbage key.
func (m *DefaultMetricsCollector) IncrementCounter(level core.Level, tags map[string]string) {
	if level < core.TRACE || level > core.CRITICAL {
		return
	}
	name := "log." + strings.ToLower(level.String())
	m.mu.Lock()
	m.counters[name]++
	m.mu.Unlock()
}

// RecordHistogram appends value to the named histogram's sample set.
func (m *DefaultMetricsCollector) RecordHistogram(name string, value float64, tags map[string]string) {
	m.mu.Lock()
	m.histograms[name] = append(m.histograms[name], value)
	m.mu.Unlock()
}

// GetHistogram returns min, max, avg and p95 over the recorded samples.
// A nonexistent or empty histogram returns all zeros.
func (m *DefaultMetricsCollector) GetHistogram(name string) (min, max, avg, p95 float64) {
	m.mu.RLock()
	samples := m.histograms[name]
	cp := make([]float64, len(samples))
	copy(cp, samples)
	m.mu.RUnlock()

	if len(cp) == 0 {
		return 0, 0, 0, 0
	}

	sort.Float64s(cp)
	min = cp[0]
	max = cp[len(cp)-1]

	var sum float64
	for _, v := range cp {
		sum += v
	}
	avg = sum / float64(len(cp))

	idx := int(math.Ceil(0.95*float64(len(cp)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(cp) {
		idx = len(cp) - 1
	}
	p95 = cp[idx]

	return min, max, avg, p95
}

// RecordGauge overwrites the last recorded value for name.
func (m *DefaultMetricsCollector) RecordGauge(name string, value float64, tags map[string]string) {
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()
}

// GetCounter returns the current value of a named counter, case-sensitive,
// or 0 if it has never been incremented.
func (m *DefaultMetricsCollector) GetCounter(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[name]
}

// GetGauge returns the last recorded gauge value, or 0 if unset.
func (m *DefaultMetricsCollector) GetGauge(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[name]
}
