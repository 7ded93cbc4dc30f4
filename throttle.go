// Package throttle regulates outbound call rate to a remote HTTP API and
// retries transient failures transparently. Admission is decided by a token
// bucket (burst smoothing) and a sliding one-minute window (rolling ceiling)
// together; a call proceeds only when both algorithms admit it. State is
// optionally partitioned by a caller-supplied key.
package throttle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ajiwo/throttle/strategies"
	"github.com/ajiwo/throttle/strategies/slidingwindow"
	"github.com/ajiwo/throttle/strategies/tokenbucket"
	"github.com/ajiwo/throttle/utils"
)

// recheckInterval bounds the re-poll delay when an admission slot freed
// during a wait was taken by a concurrent caller.
const recheckInterval = 10 * time.Millisecond

// Throttler is the admission and retry engine. All methods are safe for
// concurrent use; callers throttling against different partition keys never
// block each other.
type Throttler struct {
	config   Config
	observer Observer

	mu     sync.RWMutex
	states map[string]*state
}

// state is one partition: a token bucket and a sliding window guarded by a
// single mutex so the dual-algorithm admission commits as one atomic unit.
type state struct {
	mu     sync.Mutex
	bucket *tokenbucket.Bucket
	window *slidingwindow.Window
}

// New creates a Throttler with functional options applied over
// DefaultConfig. Invalid settings fail here, before any call is throttled.
func New(opts ...Option) (*Throttler, error) {
	config := DefaultConfig()

	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	observer := config.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	return &Throttler{
		config:   config,
		observer: observer,
		states:   make(map[string]*state),
	}, nil
}

// resolveState returns the partition state for key, creating it on first
// use. The map is append-only, so the fast path needs only the read lock.
func (t *Throttler) resolveState(key string) *state {
	t.mu.RLock()
	st, ok := t.states[key]
	t.mu.RUnlock()
	if ok {
		return st
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.states[key]; ok {
		return st
	}

	st = &state{
		bucket: tokenbucket.New(t.config.bucketConfig(), time.Now()),
		window: slidingwindow.New(t.config.windowConfig()),
	}
	t.states[key] = st
	return st
}

// Acquire blocks until both algorithms admit one call for key, recording
// the admission. An empty key maps to DefaultKey. It fails only when ctx is
// cancelled while waiting; the error wraps both ErrWaitCancelled and the
// context's own error.
func (t *Throttler) Acquire(ctx context.Context, key string) error {
	if key == "" {
		key = DefaultKey
	}
	st := t.resolveState(key)

	var waited time.Duration
	for {
		if err := ctx.Err(); err != nil {
			return newWaitCancelledError(err)
		}

		st.mu.Lock()
		now := time.Now()
		wait := st.bucket.TimeUntilAvailable(now, 1)
		if windowWait := st.window.TimeUntilAvailable(now); windowWait > wait {
			wait = windowWait
		}
		if wait <= 0 {
			admitted := st.bucket.TryConsume(now, 1)
			if admitted && !st.window.TryRecord(now) {
				// The pair commits together or not at all.
				st.bucket.Refund(now, 1)
				admitted = false
			}
			st.mu.Unlock()
			if admitted {
				if waited > 0 {
					t.observer.AdmissionWaited(key, waited)
				}
				return nil
			}
			// Another caller took the freed slot between checks.
			wait = recheckInterval
		} else {
			st.mu.Unlock()
		}

		if err := utils.SleepContext(ctx, wait); err != nil {
			return newWaitCancelledError(err)
		}
		waited += wait
	}
}

// Peek reports the current admission outlook for key without consuming
// quota, one result per algorithm.
func (t *Throttler) Peek(key string) strategies.Results {
	if key == "" {
		key = DefaultKey
	}
	st := t.resolveState(key)

	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	return strategies.Results{
		"token_bucket":   st.bucket.Peek(now),
		"sliding_window": st.window.Peek(now),
	}
}

// Reset clears the rate limit state for key (mainly for testing).
func (t *Throttler) Reset(key string) {
	if key == "" {
		key = DefaultKey
	}
	st := t.resolveState(key)

	st.mu.Lock()
	defer st.mu.Unlock()

	st.bucket.Reset(time.Now())
	st.window.Reset()
}
