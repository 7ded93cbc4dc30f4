package throttle

import "time"

// Observer receives discrete throttling events. Implementations must be
// safe for concurrent use and should return quickly; the core emits events
// inline with the call it is regulating.
type Observer interface {
	// AdmissionWaited reports that a call blocked for wait before admission.
	AdmissionWaited(key string, wait time.Duration)

	// RetryScheduled reports that a failed attempt will be retried after delay.
	// attempt is 1 for the first retry.
	RetryScheduled(key string, attempt int, delay time.Duration, err error)

	// RetryExhausted reports that the attempt budget ran out; attempts counts
	// the initial attempt plus every retry.
	RetryExhausted(key string, attempts int, err error)

	// FatalFailure reports a failure that was not eligible for retry.
	FatalFailure(key string, err error)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) AdmissionWaited(string, time.Duration)            {}
func (NopObserver) RetryScheduled(string, int, time.Duration, error) {}
func (NopObserver) RetryExhausted(string, int, error)                {}
func (NopObserver) FatalFailure(string, error)                       {}

// MultiObserver fans events out to several sinks in order.
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) AdmissionWaited(key string, wait time.Duration) {
	for _, o := range m {
		o.AdmissionWaited(key, wait)
	}
}

func (m multiObserver) RetryScheduled(key string, attempt int, delay time.Duration, err error) {
	for _, o := range m {
		o.RetryScheduled(key, attempt, delay, err)
	}
}

func (m multiObserver) RetryExhausted(key string, attempts int, err error) {
	for _, o := range m {
		o.RetryExhausted(key, attempts, err)
	}
}

func (m multiObserver) FatalFailure(key string, err error) {
	for _, o := range m {
		o.FatalFailure(key, err)
	}
}
