// Package session owns authentication state and mediates all token
// lifecycle operations against the REST backend.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/domain"
	"taskdeck/internal/watch"
)

// State identifies where the session is in its lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	StateAuthenticated   State = "authenticated"
	StateRefreshPending  State = "refresh_pending"
)

// DefaultRefreshThreshold is how close to expiry a token must be before
// a proactive refresh is attempted.
const DefaultRefreshThreshold = 5 * time.Minute

// Manager maintains authentication state: the current user, the token pair
// and their persistence. All operations are safe for concurrent use, but
// the manager does not serialize refreshes; the HTTP layer's single-flight
// gate does (see httpapi.AuthMiddleware).
type Manager struct {
	api              domain.AuthAPI
	store            domain.SessionStore
	logger           domain.Logger
	clock            domain.Clock
	user             *watch.Value[*domain.User]
	authenticated    *watch.Value[bool]
	session          *domain.Session
	state            State
	refreshThreshold time.Duration
	mu               sync.Mutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithRefreshThreshold overrides the proactive refresh window.
func WithRefreshThreshold(threshold time.Duration) Option {
	return func(m *Manager) {
		m.refreshThreshold = threshold
	}
}

// NewManager creates a Manager and restores the persisted session, if any.
// A stored token and user together mean the session starts authenticated.
func NewManager(api domain.AuthAPI, store domain.SessionStore, logger domain.Logger, clock domain.Clock, opts ...Option) *Manager {
	m := &Manager{
		api:              api,
		store:            store,
		logger:           logger,
		clock:            clock,
		state:            StateUnauthenticated,
		refreshThreshold: DefaultRefreshThreshold,
		user:             watch.NewValue[*domain.User](nil),
		authenticated:    watch.NewValue(false),
	}
	for _, opt := range opts {
		opt(m)
	}

	stored, err := store.Load()
	if err != nil {
		logger.Warn("session", "failed to load persisted session", "error", err)
	} else if stored.IsAuthenticated() {
		m.session = stored
		m.state = StateAuthenticated
		m.user.Set(stored.User)
		m.authenticated.Set(true)
	}

	logger.Info("session", "session manager initialized", "authenticated", m.state == StateAuthenticated)
	return m
}

// SetAPI binds the auth API after construction. The manager and the HTTP
// pipeline reference each other (the pipeline asks the manager for tokens,
// the manager calls the auth endpoints through the pipeline), so the
// composition root creates the manager first and binds the API once the
// client exists. Must be called before any auth operation.
func (m *Manager) SetAPI(api domain.AuthAPI) {
	m.api = api
}

// Login exchanges credentials for a session. On failure the session state
// is left unchanged and the error is surfaced without retry.
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	m.setState(StateAuthenticating)
	m.logger.Info("session", "login attempt", "email", creds.Email)

	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		m.restoreStateAfterFailedAuth()
		m.logger.Error("session", "login failed", "error", err)
		return nil, err
	}

	m.handleAuthSuccess(resp, creds.RememberMe)
	m.logger.Info("session", "login successful", "userID", resp.User.ID)
	return resp.User, nil
}

// Register creates a new account. The server-issued user is treated as
// already authenticated, identical to a successful login.
func (m *Manager) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	m.setState(StateAuthenticating)
	m.logger.Info("session", "registration attempt", "email", reg.Email)

	resp, err := m.api.Register(ctx, reg)
	if err != nil {
		m.restoreStateAfterFailedAuth()
		m.logger.Error("session", "registration failed", "error", err)
		return nil, err
	}

	m.handleAuthSuccess(resp, false)
	m.logger.Info("session", "registration successful", "userID", resp.User.ID)
	return resp.User, nil
}

// Logout notifies the server best-effort, then clears all stored session
// data. Local logout always succeeds: a reachable server is not required.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		m.logger.Warn("session", "server logout failed", "error", err)
	}
	m.clearAuthData()
	m.logger.Info("session", "logged out")
}

// Refresh uses the stored refresh token to obtain a new access token. It
// fails fast when no refresh token is stored. An API failure is terminal:
// the session is logged out locally and the error surfaced, never retried.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	m.mu.Lock()
	refreshToken := ""
	if m.session != nil {
		refreshToken = m.session.RefreshToken
	}
	m.mu.Unlock()

	if refreshToken == "" {
		m.logger.Error("session", "no refresh token available")
		return "", domain.ErrNoRefreshToken
	}

	m.setState(StateRefreshPending)
	m.logger.Debug("session", "refreshing token")

	resp, err := m.api.Refresh(ctx, refreshToken)
	if err != nil {
		m.logger.Error("session", "token refresh failed, logging out", "error", err)
		m.clearAuthData()
		return "", fmt.Errorf("refresh token: %w", err)
	}

	rememberMe := false
	m.mu.Lock()
	if m.session != nil {
		rememberMe = m.session.RememberMe
	}
	m.mu.Unlock()

	m.handleAuthSuccess(resp, rememberMe)
	m.logger.Info("session", "token refreshed")
	return resp.Token, nil
}

// Token returns the current access token, or "" if unauthenticated.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.Token
}

// RefreshTokenValue returns the stored refresh token, or "".
func (m *Manager) RefreshTokenValue() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return ""
	}
	return m.session.RefreshToken
}

// CurrentUser returns the authenticated user, or nil.
func (m *Manager) CurrentUser() *domain.User {
	return m.user.Get()
}

// IsAuthenticated reports whether a token and user are both present.
func (m *Manager) IsAuthenticated() bool {
	return m.authenticated.Get()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// HasRole reports whether the current user has the given role.
func (m *Manager) HasRole(role domain.Role) bool {
	user := m.user.Get()
	return user != nil && user.HasRole(role)
}

// IsAdmin reports whether the current user is an administrator.
func (m *Manager) IsAdmin() bool {
	return m.HasRole(domain.RoleAdmin)
}

// SubscribeAuthenticated registers fn for authentication state changes and
// returns a disposer.
func (m *Manager) SubscribeAuthenticated(fn func(bool)) func() {
	return m.authenticated.Subscribe(fn)
}

// SubscribeUser registers fn for current-user changes and returns a disposer.
func (m *Manager) SubscribeUser(fn func(*domain.User)) func() {
	return m.user.Subscribe(fn)
}

// ShouldRefreshToken reports whether the access token is still valid but
// within the refresh threshold of expiring. Malformed tokens fail closed:
// the error is logged and no refresh is requested.
func (m *Manager) ShouldRefreshToken() bool {
	token := m.Token()
	if token == "" {
		return false
	}

	expiry, err := decodeExpiry(token)
	if err != nil {
		m.logger.Error("session", "failed to check token expiry", "error", err)
		return false
	}

	untilExpiry := expiry.Sub(m.clock.Now())
	return untilExpiry > 0 && untilExpiry < m.refreshThreshold
}

// IsTokenExpired reports whether the stored token's expiry has passed.
// Missing or undecodable tokens are treated as expired.
func (m *Manager) IsTokenExpired() bool {
	token := m.Token()
	if token == "" {
		return true
	}

	expiry, err := decodeExpiry(token)
	if err != nil {
		m.logger.Error("session", "failed to decode token", "error", err)
		return true
	}

	return !m.clock.Now().Before(expiry)
}

// handleAuthSuccess stores the token bundle and user as a group and emits
// the authenticated state.
func (m *Manager) handleAuthSuccess(resp *domain.AuthResponse, rememberMe bool) {
	sess := &domain.Session{
		User:       resp.User,
		Token:      resp.Token,
		RememberMe: rememberMe,
	}
	if resp.RefreshToken != "" {
		sess.RefreshToken = resp.RefreshToken
	} else {
		// Keep the previous refresh token when the server omits one.
		m.mu.Lock()
		if m.session != nil {
			sess.RefreshToken = m.session.RefreshToken
		}
		m.mu.Unlock()
	}

	if err := m.store.Save(sess); err != nil {
		m.logger.Warn("session", "failed to persist session", "error", err)
	}

	m.mu.Lock()
	m.session = sess
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.user.Set(sess.User)
	m.authenticated.Set(true)
}

// clearAuthData clears memory and storage together and emits the
// unauthenticated state.
func (m *Manager) clearAuthData() {
	if err := m.store.Clear(); err != nil {
		m.logger.Warn("session", "failed to clear persisted session", "error", err)
	}

	m.mu.Lock()
	m.session = nil
	m.state = StateUnauthenticated
	m.mu.Unlock()

	m.user.Set(nil)
	m.authenticated.Set(false)
}

func (m *Manager) setState(state State) {
	m.mu.Lock()
	m.state = state
	m.mu.Unlock()
}

// restoreStateAfterFailedAuth returns to the state implied by the current
// session: a failed login attempt must not disturb an existing session.
func (m *Manager) restoreStateAfterFailedAuth() {
	m.mu.Lock()
	if m.session.IsAuthenticated() {
		m.state = StateAuthenticated
	} else {
		m.state = StateUnauthenticated
	}
	m.mu.Unlock()
}

// Ensure Manager satisfies the HTTP layer's refresher contract.
var _ domain.SessionRefresher = (*Manager)(nil)
