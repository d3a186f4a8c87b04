package dispatch

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/tilekeys/internal/action"
)

// Metrics collects dispatch statistics.
type Metrics struct {
	mu sync.RWMutex

	perKind map[action.Kind]*KindMetrics

	totalDispatches uint64
	totalUnbound    uint64
	totalErrors     uint64
	totalDuration   time.Duration
}

// KindMetrics holds statistics for one action kind.
type KindMetrics struct {
	Kind          action.Kind
	DispatchCount uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// Snapshot is a point-in-time copy of the metrics.
type Snapshot struct {
	TotalDispatches uint64
	TotalUnbound    uint64
	TotalErrors     uint64
	TotalDuration   time.Duration
	Kinds           []KindMetrics
}

// NewMetrics creates a metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{perKind: make(map[action.Kind]*KindMetrics)}
}

// RecordDispatch records an executed action.
func (m *Metrics) RecordDispatch(kind action.Kind, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += d
	if err != nil {
		m.totalErrors++
	}

	km := m.perKind[kind]
	if km == nil {
		km = &KindMetrics{Kind: kind}
		m.perKind[kind] = km
	}
	km.DispatchCount++
	km.TotalDuration += d
	km.LastDispatch = time.Now()
	if d > km.MaxDuration {
		km.MaxDuration = d
	}
	if err != nil {
		km.ErrorCount++
	}
}

// RecordUnbound records a chord with no binding.
func (m *Metrics) RecordUnbound() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalUnbound++
}

// Snapshot returns a copy of the metrics, kinds sorted by kind.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		TotalDispatches: m.totalDispatches,
		TotalUnbound:    m.totalUnbound,
		TotalErrors:     m.totalErrors,
		TotalDuration:   m.totalDuration,
		Kinds:           make([]KindMetrics, 0, len(m.perKind)),
	}
	for _, km := range m.perKind {
		s.Kinds = append(s.Kinds, *km)
	}
	sort.Slice(s.Kinds, func(i, j int) bool {
		return s.Kinds[i].Kind < s.Kinds[j].Kind
	})
	return s
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.perKind = make(map[action.Kind]*KindMetrics)
	m.totalDispatches = 0
	m.totalUnbound = 0
	m.totalErrors = 0
	m.totalDuration = 0
}
