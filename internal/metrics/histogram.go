// Package metrics keeps in-process latency distributions for the status endpoint.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"
)

const defaultHistogramSize = 4096

// Histogram keeps the most recent duration samples in a ring buffer and
// reports percentiles over them.
type Histogram struct {
	mu      sync.RWMutex
	samples []float64 // milliseconds
	next    int
	full    bool
	total   uint64
}

// NewHistogram creates a histogram retaining at most size samples.
func NewHistogram(size int) *Histogram {
	if size <= 0 {
		size = defaultHistogramSize
	}
	return &Histogram{samples: make([]float64, size)}
}

// Record adds a sample, overwriting the oldest one once the buffer is full.
func (h *Histogram) Record(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.samples[h.next] = float64(d.Microseconds()) / 1000.0
	h.next++
	if h.next == len(h.samples) {
		h.next = 0
		h.full = true
	}
	h.total++
}

// Count returns the number of retained samples.
func (h *Histogram) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.countLocked()
}

// Total returns the number of samples ever recorded.
func (h *Histogram) Total() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Percentile returns the p-th percentile (0-100) in milliseconds, with
// linear interpolation between neighbouring samples.
func (h *Histogram) Percentile(p float64) float64 {
	return percentile(h.sorted(), p)
}

// Mean returns the average in milliseconds.
func (h *Histogram) Mean() float64 {
	values := h.sorted()
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Summary is a point-in-time view of a histogram.
type Summary struct {
	Count int     `json:"count"`
	Total uint64  `json:"total"`
	Mean  float64 `json:"mean_ms"`
	P50   float64 `json:"p50_ms"`
	P95   float64 `json:"p95_ms"`
	Max   float64 `json:"max_ms"`
}

// Summary computes all reported statistics from one sorted copy.
func (h *Histogram) Summary() Summary {
	h.mu.RLock()
	total := h.total
	h.mu.RUnlock()

	values := h.sorted()
	s := Summary{Count: len(values), Total: total}
	if len(values) == 0 {
		return s
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	s.Mean = sum / float64(len(values))
	s.P50 = percentile(values, 50)
	s.P95 = percentile(values, 95)
	s.Max = values[len(values)-1]
	return s
}

// Reset drops all samples.
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next = 0
	h.full = false
	h.total = 0
}

func (h *Histogram) countLocked() int {
	if h.full {
		return len(h.samples)
	}
	return h.next
}

func (h *Histogram) sorted() []float64 {
	h.mu.RLock()
	out := make([]float64, h.countLocked())
	copy(out, h.samples[:len(out)])
	h.mu.RUnlock()

	sort.Float64s(out)
	return out
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	fraction := index - float64(lower)
	return sorted[lower]*(1-fraction) + sorted[upper]*fraction
}
