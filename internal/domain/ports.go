package domain

import (
	"context"
	"time"
)

// AuthAPI is the authentication surface of the REST backend.
type AuthAPI interface {
	// Login exchanges credentials for a token bundle.
	Login(ctx context.Context, creds Credentials) (*AuthResponse, error)

	// Register creates a new account and returns it already authenticated.
	Register(ctx context.Context, reg Registration) (*AuthResponse, error)

	// Logout invalidates the session on the server.
	Logout(ctx context.Context) error

	// Refresh exchanges a refresh token for a new token bundle.
	Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error)
}

// TaskAPI is the task surface of the REST backend.
type TaskAPI interface {
	// List retrieves tasks matching the filter and options.
	List(ctx context.Context, filter TaskFilter, opts ListOptions) ([]Task, error)

	// Get retrieves a task by ID.
	Get(ctx context.Context, id string) (*Task, error)

	// Create creates a new task.
	Create(ctx context.Context, draft TaskDraft) (*Task, error)

	// Update updates an existing task.
	Update(ctx context.Context, id string, patch TaskPatch) (*Task, error)

	// Delete removes a task by ID.
	Delete(ctx context.Context, id string) error

	// Stats retrieves the dashboard statistics.
	Stats(ctx context.Context) (*TaskStats, error)

	// Recent retrieves the most recently updated tasks.
	Recent(ctx context.Context, limit int) ([]Task, error)

	// Overdue retrieves tasks past their due date and not done.
	Overdue(ctx context.Context) ([]Task, error)

	// DueToday retrieves tasks due on the current day.
	DueToday(ctx context.Context) ([]Task, error)

	// Search retrieves tasks matching a free-text query.
	Search(ctx context.Context, query string) ([]Task, error)
}

// SessionStore persists the session across process restarts.
// Save and Clear act on the whole session as a group.
type SessionStore interface {
	// Load returns the persisted session, or nil if none is stored.
	Load() (*Session, error)

	// Save writes the session atomically.
	Save(session *Session) error

	// Clear removes all persisted session data.
	Clear() error
}

// TokenSource supplies the current access token for request decoration.
type TokenSource interface {
	// Token returns the current access token, or "" if unauthenticated.
	Token() string
}

// SessionRefresher drives the 401 recovery protocol in the HTTP layer.
type SessionRefresher interface {
	TokenSource

	// Refresh obtains a new access token using the stored refresh token.
	// A failure is terminal: the implementation logs the session out.
	Refresh(ctx context.Context) (string, error)
}

// Logger is the minimal logging surface used across the application.
type Logger interface {
	Debug(category, msg string, args ...any)
	Info(category, msg string, args ...any)
	Warn(category, msg string, args ...any)
	Error(category, msg string, args ...any)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
