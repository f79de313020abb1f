package metrics

import (
	"math"
	"slices"
	"sync"
	"time"
)

// DefaultCapacity bounds how many samples a Latency keeps, however short
// the window.
const DefaultCapacity = 1024

// Snapshot is a point-in-time aggregate of latency samples.
type Snapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

type sample struct {
	at time.Time
	d  time.Duration
}

// Latency keeps the durations of one pipeline phase in a ring buffer and
// reports on those recorded within the window.
type Latency struct {
	mu     sync.Mutex
	window time.Duration
	ring   []sample
	next   int
	now    func() time.Time
}

// NewLatency returns a tracker over the given window. A non-positive
// window means one hour.
func NewLatency(window time.Duration) *Latency {
	return newLatency(window, DefaultCapacity, time.Now)
}

func newLatency(window time.Duration, capacity int, now func() time.Time) *Latency {
	if window <= 0 {
		window = time.Hour
	}
	return &Latency{
		window: window,
		ring:   make([]sample, 0, capacity),
		now:    now,
	}
}

// Record adds one duration. Negative durations count as zero. Once the
// buffer is full the oldest sample is overwritten.
func (l *Latency) Record(d time.Duration) {
	s := sample{at: l.now(), d: max(d, 0)}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.ring) < cap(l.ring) {
		l.ring = append(l.ring, s)
		return
	}
	l.ring[l.next] = s
	l.next = (l.next + 1) % len(l.ring)
}

// Since records the time elapsed from start.
func (l *Latency) Since(start time.Time) {
	l.Record(l.now().Sub(start))
}

// Snapshot aggregates the samples inside the window. Percentiles use the
// nearest-rank method.
func (l *Latency) Snapshot() Snapshot {
	cutoff := l.now().Add(-l.window)

	l.mu.Lock()
	ds := make([]time.Duration, 0, len(l.ring))
	for _, s := range l.ring {
		if !s.at.Before(cutoff) {
			ds = append(ds, s.d)
		}
	}
	l.mu.Unlock()

	if len(ds) == 0 {
		return Snapshot{}
	}
	slices.Sort(ds)

	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return Snapshot{
		Count: len(ds),
		MinMs: ds[0].Milliseconds(),
		MaxMs: ds[len(ds)-1].Milliseconds(),
		AvgMs: ms(total / time.Duration(len(ds))),
		P50Ms: ms(nearestRank(ds, 0.50)),
		P95Ms: ms(nearestRank(ds, 0.95)),
		P99Ms: ms(nearestRank(ds, 0.99)),
	}
}

// nearestRank picks the smallest sample with at least q of the samples at
// or below it. sorted must be ascending and non-empty.
func nearestRank(sorted []time.Duration, q float64) time.Duration {
	rank := int(math.Ceil(q * float64(len(sorted))))
	return sorted[min(max(rank, 1), len(sorted))-1]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// Phases groups the latencies recorded by the question pipeline.
type Phases struct {
	Extract  *Latency
	Generate *Latency
}

func NewPhases(window time.Duration) *Phases {
	return &Phases{
		Extract:  NewLatency(window),
		Generate: NewLatency(window),
	}
}

// Snapshot returns per-phase aggregates keyed by phase name.
func (p *Phases) Snapshot() map[string]Snapshot {
	return map[string]Snapshot{
		"extract":  p.Extract.Snapshot(),
		"generate": p.Generate.Snapshot(),
	}
}
