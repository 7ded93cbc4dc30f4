package throttle

import (
	"context"

	"github.com/ajiwo/throttle/utils"
)

// Do runs op through admission and the retry policy of t. Each attempt,
// including every retry, re-enters rate limit admission first. The result
// of a successful attempt and the original error of a fatal or exhausted
// one pass through unchanged.
func Do[T any](ctx context.Context, t *Throttler, op func(context.Context) (T, error)) (T, error) {
	var zero T

	key := t.callKey(ctx)
	controller := newRetryController(t.config)

	for {
		if err := t.Acquire(ctx, key); err != nil {
			return zero, err
		}

		result, err := op(ctx)

		switch classify(err) {
		case classSuccess:
			return result, nil
		case classFatal:
			t.observer.FatalFailure(key, err)
			return zero, err
		}

		delay, retry := controller.next(err)
		if !retry {
			t.observer.RetryExhausted(key, controller.attempts(), err)
			return zero, err
		}
		t.observer.RetryScheduled(key, controller.attempt, delay, err)

		if sleepErr := utils.SleepContext(ctx, delay); sleepErr != nil {
			return zero, newWaitCancelledError(sleepErr)
		}
	}
}

// Wrap returns a throttled, retrying version of op bound to t.
//
// Wrapping an already wrapped operation throttles it twice; compose once
// per underlying call.
func Wrap[T any](t *Throttler, op func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		return Do(ctx, t, op)
	}
}

// Do is the non-generic convenience for operations without a result.
func (t *Throttler) Do(ctx context.Context, op func(context.Context) error) error {
	_, err := Do(ctx, t, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// callKey derives the partition key for one call. Extraction failures and
// invalid keys fall back to the shared default partition rather than
// failing the call.
func (t *Throttler) callKey(ctx context.Context) string {
	if t.config.KeyFunc == nil {
		return DefaultKey
	}
	key := t.config.KeyFunc(ctx)
	if key == "" || utils.ValidateKey(key) != nil {
		return DefaultKey
	}
	return key
}
