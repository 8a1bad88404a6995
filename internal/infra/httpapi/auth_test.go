package httpapi

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
	"taskdeck/internal/testutil"
)

// stubRefresher is a minimal SessionRefresher with a controllable refresh.
type stubRefresher struct {
	refreshFn func(ctx context.Context) (string, error)
	token     string
	calls     atomic.Int32
	mu        sync.Mutex
}

func (s *stubRefresher) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *stubRefresher) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *stubRefresher) Refresh(ctx context.Context) (string, error) {
	s.calls.Add(1)
	token, err := s.refreshFn(ctx)
	if err == nil {
		s.setToken(token)
	}
	return token, err
}

func TestAuthMiddleware_AttachesBearerToken(t *testing.T) {
	refresher := &stubRefresher{token: "tok-1"}
	mw := NewAuthMiddleware(refresher, testutil.NopLogger{})

	var seen string
	base := func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get("Authorization")
		return jsonResponse(200, "{}"), nil
	}
	rt := Chain(base, mw.Middleware())

	_, err := rt(newRequest(t, http.MethodGet, "http://api/tasks"))

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", seen)
}

func TestAuthMiddleware_NoHeaderWithoutToken(t *testing.T) {
	refresher := &stubRefresher{}
	mw := NewAuthMiddleware(refresher, testutil.NopLogger{})

	var seen string
	base := func(req *http.Request) (*http.Response, error) {
		seen = req.Header.Get("Authorization")
		return jsonResponse(200, "{}"), nil
	}
	rt := Chain(base, mw.Middleware())

	_, err := rt(newRequest(t, http.MethodGet, "http://api/tasks"))

	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestAuthMiddleware_RefreshesAndRetriesOn401(t *testing.T) {
	refresher := &stubRefresher{
		token: "stale",
		refreshFn: func(context.Context) (string, error) {
			return "fresh", nil
		},
	}
	mw := NewAuthMiddleware(refresher, testutil.NopLogger{})

	var tokens []string
	base := func(req *http.Request) (*http.Response, error) {
		tokens = append(tokens, req.Header.Get("Authorization"))
		if req.Header.Get("Authorization") == "Bearer stale" {
			return jsonResponse(401, ""), nil
		}
		return jsonResponse(200, "{}"), nil
	}
	rt := Chain(base, mw.Middleware(), NormalizeErrors(testutil.NopLogger{}))

	resp, err := rt(newRequest(t, http.MethodGet, "http://api/tasks"))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []string{"Bearer stale", "Bearer fresh"}, tokens)
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestAuthMiddleware_ConcurrentUnauthorizedSharesOneRefresh(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	refresher := &stubRefresher{
		token: "stale",
		refreshFn: func(context.Context) (string, error) {
			once.Do(func() { close(started) })
			<-release
			return "fresh", nil
		},
	}
	mw := NewAuthMiddleware(refresher, testutil.NopLogger{})

	var retried atomic.Int32
	base := func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("Authorization") == "Bearer stale" {
			return jsonResponse(401, ""), nil
		}
		retried.Add(1)
		return jsonResponse(200, "{}"), nil
	}
	rt := Chain(base, mw.Middleware(), NormalizeErrors(testutil.NopLogger{}))

	errs := make(chan error, 2)
	for range 2 {
		go func() {
			_, err := rt(newRequest(t, http.MethodGet, "http://api/tasks"))
			errs <- err
		}()
	}

	// Let both requests observe the 401 and pile up behind the refresh,
	// then let it resolve.
	<-started
	time.Sleep(20 * time.Millisecond)
	close(release)

	for range 2 {
		require.NoError(t, <-errs)
	}
	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, int32(2), retried.Load())
}

func TestAuthMiddleware_RefreshFailureReturnsOriginal401(t *testing.T) {
	refresher := &stubRefresher{
		token: "stale",
		refreshFn: func(context.Context) (string, error) {
			return "", domain.ErrNoRefreshToken
		},
	}
	mw := NewAuthMiddleware(refresher, testutil.NopLogger{})

	base := func(*http.Request) (*http.Response, error) {
		return jsonResponse(401, ""), nil
	}
	rt := Chain(base, mw.Middleware(), NormalizeErrors(testutil.NopLogger{}))

	_, err := rt(newRequest(t, http.MethodGet, "http://api/tasks"))

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestAuthMiddleware_AuthEndpointsSkipRecovery(t *testing.T) {
	refresher := &stubRefresher{
		token: "stale",
		refreshFn: func(context.Context) (string, error) {
			return "fresh", nil
		},
	}
	mw := NewAuthMiddleware(refresher, testutil.NopLogger{})

	base := func(*http.Request) (*http.Response, error) {
		return jsonResponse(401, ""), nil
	}
	rt := Chain(base, mw.Middleware(), NormalizeErrors(testutil.NopLogger{}))

	_, err := rt(newRequest(t, http.MethodPost, "http://api/auth/login"))

	// A 401 from the auth surface means bad credentials; no refresh runs.
	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, int32(0), refresher.calls.Load())
}

func TestAuthMiddleware_Non401ErrorsPassThrough(t *testing.T) {
	refresher := &stubRefresher{
		token: "tok",
		refreshFn: func(context.Context) (string, error) {
			return "fresh", nil
		},
	}
	mw := NewAuthMiddleware(refresher, testutil.NopLogger{})

	base := func(*http.Request) (*http.Response, error) {
		return jsonResponse(500, ""), nil
	}
	rt := Chain(base, mw.Middleware(), NormalizeErrors(testutil.NopLogger{}))

	_, err := rt(newRequest(t, http.MethodGet, "http://api/tasks"))

	apiErr, ok := domain.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 500, apiErr.StatusCode)
	assert.Equal(t, int32(0), refresher.calls.Load())
}
