// Package perf records named operation durations. It is an observability
// aid, not a correctness requirement: callers may skip it entirely.
package perf

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventease/server/internal/metrics"
)

// SlowThreshold is the single-sample duration above which a warning is
// logged.
const SlowThreshold = 100 * time.Millisecond

// Monitor keeps an append-only duration series per operation name and
// mirrors every sample into the operation latency histogram.
type Monitor struct {
	mu      sync.RWMutex
	samples map[string][]time.Duration
	logger  zerolog.Logger
}

func NewMonitor(logger zerolog.Logger) *Monitor {
	return &Monitor{
		samples: make(map[string][]time.Duration),
		logger:  logger.With().Str("component", "perf").Logger(),
	}
}

// Record appends a sample for an operation, warning when a single sample
// crosses the slow threshold.
func (m *Monitor) Record(operation string, d time.Duration) {
	m.mu.Lock()
	m.samples[operation] = append(m.samples[operation], d)
	m.mu.Unlock()

	metrics.OperationDuration.WithLabelValues(operation).Observe(d.Seconds())

	if d > SlowThreshold {
		m.logger.Warn().
			Str("operation", operation).
			Dur("duration", d).
			Msg("slow operation")
	}
}

// Time runs fn and records its duration under the operation name.
func (m *Monitor) Time(operation string, fn func()) {
	start := time.Now()
	fn()
	m.Record(operation, time.Since(start))
}

// Average returns the mean duration in milliseconds for one operation and
// whether any samples exist for it.
func (m *Monitor) Average(operation string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	series, ok := m.samples[operation]
	if !ok || len(series) == 0 {
		return 0, false
	}
	return averageMillis(series), true
}

// Averages returns the mean duration in milliseconds per operation.
func (m *Monitor) Averages() map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]float64, len(m.samples))
	for operation, series := range m.samples {
		if len(series) > 0 {
			out[operation] = averageMillis(series)
		}
	}
	return out
}

// averageMillis keeps fractional milliseconds so sub-millisecond operations
// do not average to zero.
func averageMillis(series []time.Duration) float64 {
	var total time.Duration
	for _, d := range series {
		total += d
	}
	return float64(total) / float64(time.Millisecond) / float64(len(series))
}

// Preload warms caches at startup so first requests do not pay the seed
// cost, recording its own duration. Failures are logged only; startup
// continues either way.
func Preload(ctx context.Context, m *Monitor, warm func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error().Interface("panic", r).Msg("preload failed")
		}
	}()
	start := time.Now()
	warm(ctx)
	m.Record("preload", time.Since(start))
}
