// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"taskdeck/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debug(string, string, ...any) {}
func (NopLogger) Info(string, string, ...any)  {}
func (NopLogger) Warn(string, string, ...any)  {}
func (NopLogger) Error(string, string, ...any) {}

// MockSessionStore is an in-memory test double for domain.SessionStore.
type MockSessionStore struct {
	Stored     *domain.Session
	LoadErr    error
	SaveErr    error
	ClearErr   error
	SaveCalls  int
	ClearCalls int
	mu         sync.Mutex
}

// Load returns the stored session.
func (m *MockSessionStore) Load() (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Stored, nil
}

// Save stores the session.
func (m *MockSessionStore) Save(session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Stored = session
	return nil
}

// Clear removes the stored session.
func (m *MockSessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Stored = nil
	return nil
}

// MockAuthAPI is a test double for domain.AuthAPI.
type MockAuthAPI struct {
	LoginResp     *domain.AuthResponse
	LoginErr      error
	RegisterResp  *domain.AuthResponse
	RegisterErr   error
	LogoutErr     error
	RefreshResp   *domain.AuthResponse
	RefreshErr    error
	LoginCalls    int
	RegisterCalls int
	LogoutCalls   int
	RefreshCalls  int
	LastRefresh   string
	mu            sync.Mutex
}

// Login returns the configured response.
func (m *MockAuthAPI) Login(_ context.Context, _ domain.Credentials) (*domain.AuthResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls++
	return m.LoginResp, m.LoginErr
}

// Register returns the configured response.
func (m *MockAuthAPI) Register(_ context.Context, _ domain.Registration) (*domain.AuthResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls++
	return m.RegisterResp, m.RegisterErr
}

// Logout returns the configured error.
func (m *MockAuthAPI) Logout(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogoutCalls++
	return m.LogoutErr
}

// Refresh returns the configured response.
func (m *MockAuthAPI) Refresh(_ context.Context, refreshToken string) (*domain.AuthResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshCalls++
	m.LastRefresh = refreshToken
	return m.RefreshResp, m.RefreshErr
}

// MockTaskAPI is a test double for domain.TaskAPI.
type MockTaskAPI struct {
	ListTasks  []domain.Task
	ListErr    error
	GetTask    *domain.Task
	GetErr     error
	Created    *domain.Task
	CreateErr  error
	Updated    *domain.Task
	UpdateErr  error
	DeleteErr  error
	StatsResp  *domain.TaskStats
	StatsErr   error
	LastFilter domain.TaskFilter
	LastOpts   domain.ListOptions
	LastID     string
	LastDraft  domain.TaskDraft
	LastPatch  domain.TaskPatch
	LastQuery  string
	ListCalls  int
}

// List returns the configured task list.
func (m *MockTaskAPI) List(_ context.Context, filter domain.TaskFilter, opts domain.ListOptions) ([]domain.Task, error) {
	m.ListCalls++
	m.LastFilter = filter
	m.LastOpts = opts
	return m.ListTasks, m.ListErr
}

// Get returns the configured task.
func (m *MockTaskAPI) Get(_ context.Context, id string) (*domain.Task, error) {
	m.LastID = id
	return m.GetTask, m.GetErr
}

// Create returns the configured created task.
func (m *MockTaskAPI) Create(_ context.Context, draft domain.TaskDraft) (*domain.Task, error) {
	m.LastDraft = draft
	return m.Created, m.CreateErr
}

// Update returns the configured updated task.
func (m *MockTaskAPI) Update(_ context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	m.LastID = id
	m.LastPatch = patch
	return m.Updated, m.UpdateErr
}

// Delete returns the configured error.
func (m *MockTaskAPI) Delete(_ context.Context, id string) error {
	m.LastID = id
	return m.DeleteErr
}

// Stats returns the configured stats.
func (m *MockTaskAPI) Stats(_ context.Context) (*domain.TaskStats, error) {
	return m.StatsResp, m.StatsErr
}

// Recent returns the configured task list.
func (m *MockTaskAPI) Recent(_ context.Context, _ int) ([]domain.Task, error) {
	return m.ListTasks, m.ListErr
}

// Overdue returns the configured task list.
func (m *MockTaskAPI) Overdue(_ context.Context) ([]domain.Task, error) {
	return m.ListTasks, m.ListErr
}

// DueToday returns the configured task list.
func (m *MockTaskAPI) DueToday(_ context.Context) ([]domain.Task, error) {
	return m.ListTasks, m.ListErr
}

// Search returns the configured task list.
func (m *MockTaskAPI) Search(_ context.Context, query string) ([]domain.Task, error) {
	m.LastQuery = query
	return m.ListTasks, m.ListErr
}

// MakeToken builds an unsigned JWT-shaped token with the given expiry,
// good enough for client-side claim decoding in tests.
func MakeToken(expiry time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString(
		[]byte(fmt.Sprintf(`{"sub":"1","exp":%d}`, expiry.Unix())))
	return header + "." + payload + ".testsig"
}

// MakeTokenWithClaims builds an unsigned JWT-shaped token from arbitrary claims.
func MakeTokenWithClaims(claims map[string]any) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, _ := json.Marshal(claims)
	payload := base64.RawURLEncoding.EncodeToString(body)
	return header + "." + payload + ".testsig"
}

// Ensure mocks satisfy their interfaces.
var (
	_ domain.Clock        = (*MockClock)(nil)
	_ domain.Logger       = NopLogger{}
	_ domain.SessionStore = (*MockSessionStore)(nil)
	_ domain.AuthAPI      = (*MockAuthAPI)(nil)
	_ domain.TaskAPI      = (*MockTaskAPI)(nil)
)
