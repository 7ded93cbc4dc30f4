package slidingwindow

import (
	"time"

	"github.com/ajiwo/throttle/strategies"
)

// Window implements a sliding window counter over exact request timestamps.
//
// Every admitted request appends its timestamp; entries older than the
// window length are pruned lazily before each check. The admission gate is
// the count of retained timestamps staying below the configured ceiling.
//
// A Window is not safe for concurrent use on its own; the owner serializes
// access with its partition lock.
type Window struct {
	length time.Duration
	limit  int
	times  []time.Time // admitted timestamps, oldest first
}

// New creates an empty window. The config must have been validated.
func New(config Config) *Window {
	return &Window{
		length: config.Window,
		limit:  config.MaxRequests,
	}
}

// prune drops timestamps that have left the rolling interval.
// Entries exactly on the boundary expire too, so a full window always
// reports a positive wait.
func (w *Window) prune(now time.Time) {
	cutoff := now.Add(-w.length)
	i := 0
	for i < len(w.times) && !w.times[i].After(cutoff) {
		i++
	}
	if i > 0 {
		w.times = append(w.times[:0], w.times[i:]...)
	}
}

// TryRecord prunes stale entries and appends now if the ceiling permits.
func (w *Window) TryRecord(now time.Time) bool {
	w.prune(now)
	if len(w.times) < w.limit {
		w.times = append(w.times, now)
		return true
	}
	return false
}

// Forget removes the most recent recording. Used to roll back a recording
// that could not be committed.
func (w *Window) Forget() {
	if n := len(w.times); n > 0 {
		w.times = w.times[:n-1]
	}
}

// TimeUntilAvailable reports how long until the oldest retained entry
// expires and frees a slot, or zero if a slot is already free.
func (w *Window) TimeUntilAvailable(now time.Time) time.Duration {
	w.prune(now)
	if len(w.times) < w.limit {
		return 0
	}
	wait := w.times[0].Add(w.length).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// Peek reports the current outlook without recording anything.
func (w *Window) Peek(now time.Time) strategies.Result {
	w.prune(now)
	return strategies.Result{
		Allowed:    len(w.times) < w.limit,
		Remaining:  w.limit - len(w.times),
		RetryAfter: w.TimeUntilAvailable(now),
	}
}

// Len reports the number of timestamps currently retained.
func (w *Window) Len(now time.Time) int {
	w.prune(now)
	return len(w.times)
}

// Reset discards all recorded timestamps.
func (w *Window) Reset() {
	w.times = w.times[:0]
}
