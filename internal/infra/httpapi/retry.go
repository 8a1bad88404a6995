package httpapi

import (
	"net/http"
	"time"

	"taskdeck/internal/domain"
)

// Default retry policy for idempotent reads.
const (
	DefaultRetryAttempts = 2
	DefaultRetryDelay    = 500 * time.Millisecond
)

// Retry retries idempotent GET requests on transient failures: network
// errors and 5xx responses. Writes are never retried, to avoid duplicate
// side effects; 4xx responses are never transient. The delay between
// attempts is fixed.
func Retry(attempts int, delay time.Duration, logger domain.Logger) Middleware {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if req.Method != http.MethodGet {
				return resp, err
			}

			for attempt := 1; attempt <= attempts && shouldRetry(err); attempt++ {
				logger.Warn("http", "retrying request",
					"url", req.URL.String(), "attempt", attempt)

				select {
				case <-req.Context().Done():
					return nil, req.Context().Err()
				case <-time.After(delay):
				}

				resp, err = next(req)
			}
			return resp, err
		}
	}
}

// shouldRetry reports whether the normalized error is transient.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}
	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		return false
	}
	return apiErr.IsNetworkError() || apiErr.StatusCode >= 500
}
