// Package metrics provides the dispatcher's rate-tracking primitive.
package metrics

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// ============================================================================
// RateMeter - sliding-window rate counter
// ============================================================================

// RateMeter tracks a count (triggers dispatched, callbacks invoked, moments
// queued — whatever the caller adds) over a sliding 60-second window, using
// 60 one-second buckets.
type RateMeter struct {
	mu       sync.RWMutex
	clock    clock.Clock
	buckets  [60]int64 // one bucket per second of the window
	lastIdx  int       // index last written
	lastTime time.Time // time of the last write
}

// NewRateMeter creates an empty rate meter backed by the real clock.
func NewRateMeter() *RateMeter {
	return NewRateMeterWithClock(clock.New())
}

// NewRateMeterWithClock creates an empty rate meter backed by c, letting
// tests advance time deterministically instead of sleeping.
func NewRateMeterWithClock(c clock.Clock) *RateMeter {
	return &RateMeter{
		clock:    c,
		lastTime: c.Now(),
	}
}

// Add records n events against the current bucket, rolling the window
// forward first by one bucket for every whole-second boundary the clock
// has crossed since the last write.
func (r *RateMeter) Add(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	seconds := int(now.Truncate(time.Second).Sub(r.lastTime.Truncate(time.Second)) / time.Second)

	if seconds > 0 {
		if seconds >= 60 {
			r.buckets = [60]int64{}
			r.lastIdx = 0
		} else {
			for i := 0; i < seconds && i < 60; i++ {
				r.lastIdx = (r.lastIdx + 1) % 60
				r.buckets[r.lastIdx] = 0
			}
		}
	}

	r.lastTime = now
	r.buckets[r.lastIdx] += n
}

// Rate returns the average events-per-second over the trailing 60 seconds.
func (r *RateMeter) Rate() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, v := range r.buckets {
		total += v
	}

	return float64(total) / 60.0
}

// Total returns the sum of counts currently held in the window.
func (r *RateMeter) Total() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, v := range r.buckets {
		total += v
	}
	return total
}

// Reset clears the window.
func (r *RateMeter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buckets = [60]int64{}
	r.lastIdx = 0
	r.lastTime = r.clock.Now()
}

// LastUpdate returns the time of the most recent Add.
func (r *RateMeter) LastUpdate() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastTime
}
