package filesystem

// Observer records filesystem operation metrics. The metrics package provides
// the Prometheus implementation.
type Observer interface {
	// ObserveRetryAttempt records a retry after a stale handle error.
	ObserveRetryAttempt(op, volume string)
	// ObserveRetrySuccess records an operation that succeeded after retrying.
	ObserveRetrySuccess(op, volume string)
	// ObserveRetryFailure records an operation that exhausted its retries.
	ObserveRetryFailure(op, volume string)
	// ObserveRetryDuration records total time spent in a retried operation.
	ObserveRetryDuration(op, volume string, durationSeconds float64)
	// ObserveStaleError records a single ESTALE occurrence.
	ObserveStaleError(op, volume string)
}

type nopObserver struct{}

func (nopObserver) ObserveRetryAttempt(string, string)           {}
func (nopObserver) ObserveRetrySuccess(string, string)           {}
func (nopObserver) ObserveRetryFailure(string, string)           {}
func (nopObserver) ObserveRetryDuration(string, string, float64) {}
func (nopObserver) ObserveStaleError(string, string)             {}

var defaultObserver Observer = nopObserver{}

// SetObserver sets the package-level metrics observer. Passing nil restores
// the no-op observer.
func SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	defaultObserver = o
}

func observe() Observer {
	return defaultObserver
}
