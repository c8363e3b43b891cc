// Package stats tracks service-level counters and a rolling window of
// edit latencies for the /api/stats endpoint.
package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// Snapshot is a point-in-time aggregate of service activity.
type Snapshot struct {
	DocumentsOpened int64 `json:"documents_opened"`
	EditsApplied    int64 `json:"edits_applied"`
	RunsChanged     int64 `json:"runs_changed"`
	ExportsRendered int64 `json:"exports_rendered"`

	EditCount int     `json:"edit_count"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P95Ms     float64 `json:"p95_ms"`
}

// Service accumulates counters and recent edit latencies within a
// rolling window.
type Service struct {
	mu sync.Mutex

	documentsOpened int64
	editsApplied    int64
	runsChanged     int64
	exportsRendered int64

	samples []sample
	maxAge  time.Duration
}

func New(maxAge time.Duration) *Service {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Service{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

func (s *Service) DocumentOpened() {
	s.mu.Lock()
	s.documentsOpened++
	s.mu.Unlock()
}

func (s *Service) ExportRendered() {
	s.mu.Lock()
	s.exportsRendered++
	s.mu.Unlock()
}

// EditApplied records one edit call: how many runs it changed and how
// long it took.
func (s *Service) EditApplied(runsChanged int, duration time.Duration) {
	ms := duration.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.editsApplied++
	s.runsChanged += int64(runsChanged)
	s.pruneLocked(now)
	s.samples = append(s.samples, sample{timestamp: now, durationMs: ms})
}

func (s *Service) Snapshot() Snapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := Snapshot{
		DocumentsOpened: s.documentsOpened,
		EditsApplied:    s.editsApplied,
		RunsChanged:     s.runsChanged,
		ExportsRendered: s.exportsRendered,
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.EditCount = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	return snap
}

func (s *Service) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
