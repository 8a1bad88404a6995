// Package sessionfile provides a JSON file-based implementation of
// SessionStore. The token pair, the user record and the remember-me flag
// are written and cleared together, never individually.
package sessionfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"taskdeck/internal/domain"
)

// fileData is the on-disk layout of the persisted session.
type fileData struct {
	CurrentUser  *domain.User `json:"current_user,omitempty"`
	AuthToken    string       `json:"auth_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
	RememberMe   bool         `json:"remember_me,omitempty"`
}

// Store implements domain.SessionStore using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a Store for the given file path.
// The file does not need to exist; it is created on first save.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Load returns the persisted session, or nil if none is stored.
func (s *Store) Load() (*domain.Session, error) {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return nil, err
	}
	defer s.releaseLock(lock)

	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var data fileData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}

	return &domain.Session{
		User:         data.CurrentUser,
		Token:        data.AuthToken,
		RefreshToken: data.RefreshToken,
		RememberMe:   data.RememberMe,
	}, nil
}

// Save writes the session atomically: the content goes to a temp file
// first and is renamed into place.
func (s *Store) Save(session *domain.Session) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data := fileData{
		CurrentUser:  session.User,
		AuthToken:    session.Token,
		RefreshToken: session.RefreshToken,
		RememberMe:   session.RememberMe,
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Clear removes all persisted session data as a group.
func (s *Store) Clear() error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// Ensure Store implements SessionStore.
var _ domain.SessionStore = (*Store)(nil)
