package httpapi

import (
	"net/http"
	"strings"
	"sync"

	"taskdeck/internal/domain"
)

// refreshResult carries the outcome of a single refresh shared by every
// request queued behind it.
type refreshResult struct {
	done  chan struct{}
	token string
	err   error
}

// AuthMiddleware attaches the bearer token to outgoing requests and runs
// the 401 recovery protocol: at most one refresh is in flight at a time;
// requests that observe a 401 while a refresh is already running queue
// behind it and retry with the new token once it resolves. All queued
// requests succeed or fail together based on that single refresh.
type AuthMiddleware struct {
	refresher domain.SessionRefresher
	logger    domain.Logger
	inflight  *refreshResult
	mu        sync.Mutex
}

// NewAuthMiddleware creates an AuthMiddleware around the given refresher.
func NewAuthMiddleware(refresher domain.SessionRefresher, logger domain.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		refresher: refresher,
		logger:    logger,
	}
}

// Middleware returns the pipeline stage. It must sit outside the error
// normalization stage so that 401s arrive as *domain.APIError values.
func (a *AuthMiddleware) Middleware() Middleware {
	return func(next RoundTripFunc) RoundTripFunc {
		return func(req *http.Request) (*http.Response, error) {
			if token := a.refresher.Token(); token != "" {
				setBearer(req, token)
			}

			resp, err := next(req)
			if err == nil || isAuthEndpoint(req.URL.Path) {
				return resp, err
			}
			apiErr, ok := domain.AsAPIError(err)
			if !ok || !apiErr.IsUnauthorized() {
				return resp, err
			}

			// 401 on a decorated request: refresh once (or join the
			// refresh already in flight) and retry with the new token.
			token, refreshErr := a.awaitRefresh(req)
			if refreshErr != nil {
				a.logger.Error("http", "token refresh failed", "error", refreshErr)
				return nil, err
			}

			retried, rewindErr := rewindRequest(req)
			if rewindErr != nil {
				return nil, err
			}
			setBearer(retried, token)
			return next(retried)
		}
	}
}

// awaitRefresh runs a refresh, or joins the one already in flight.
func (a *AuthMiddleware) awaitRefresh(req *http.Request) (string, error) {
	a.mu.Lock()
	if a.inflight != nil {
		result := a.inflight
		a.mu.Unlock()

		select {
		case <-result.done:
			return result.token, result.err
		case <-req.Context().Done():
			return "", req.Context().Err()
		}
	}

	result := &refreshResult{done: make(chan struct{})}
	a.inflight = result
	a.mu.Unlock()

	a.logger.Debug("http", "attempting token refresh")
	result.token, result.err = a.refresher.Refresh(req.Context())

	a.mu.Lock()
	a.inflight = nil
	a.mu.Unlock()
	close(result.done)

	return result.token, result.err
}

// rewindRequest clones the request so it can be re-issued. Requests with a
// consumed body need GetBody to replay it.
func rewindRequest(req *http.Request) (*http.Request, error) {
	retried := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retried.Body = body
	}
	return retried, nil
}

func setBearer(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// isAuthEndpoint reports whether the path belongs to the auth surface.
// A 401 from login or refresh means bad credentials, not a stale token,
// and must not trigger the recovery protocol.
func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "/auth/")
}
