package httpapi

import (
	"net/http"
	"sync"
)

// LoadingTracker counts in-flight requests and reports busy transitions to
// a single callback. It backs the UI loading flag without the UI polling
// the HTTP layer.
type LoadingTracker struct {
	onChange func(bool)
	inflight int
	mu       sync.Mutex
}

// NewLoadingTracker creates a tracker that calls onChange(true) when the
// first request starts and onChange(false) when the last one finishes.
func NewLoadingTracker(onChange func(bool)) *LoadingTracker {
	return &LoadingTracker{onChange: onChange}
}

// Start records a request beginning.
func (l *LoadingTracker) Start() {
	l.mu.Lock()
	l.inflight++
	first := l.inflight == 1
	l.mu.Unlock()
	if first && l.onChange != nil {
		l.onChange(true)
	}
}

// Done records a request finishing.
func (l *LoadingTracker) Done() {
	l.mu.Lock()
	if l.inflight > 0 {
		l.inflight--
	}
	last := l.inflight == 0
	l.mu.Unlock()
	if last && l.onChange != nil {
		l.onChange(false)
	}
}

// Loading is the outermost pipeline stage: it brackets every request with
// the tracker, regardless of outcome.
func Loading(tracker *LoadingTracker) Middleware {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			tracker.Start()
			defer tracker.Done()
			return next(req)
		}
	}
}
