package sessionfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/internal/domain"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "session.json"))
}

func testSession() *domain.Session {
	return &domain.Session{
		User: &domain.User{
			ID:        "1",
			Email:     "admin@example.com",
			Username:  "admin",
			Role:      domain.RoleAdmin,
			Status:    domain.UserActive,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Token:        "access-token",
		RefreshToken: "refresh-token",
		RememberMe:   true,
	}
}

func TestStore_LoadMissingFileReturnsNil(t *testing.T) {
	store := testStore(t)

	session, err := store.Load()

	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestStore_SaveThenLoadRoundTrips(t *testing.T) {
	store := testStore(t)

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "access-token", loaded.Token)
	assert.Equal(t, "refresh-token", loaded.RefreshToken)
	assert.True(t, loaded.RememberMe)
	require.NotNil(t, loaded.User)
	assert.Equal(t, "admin@example.com", loaded.User.Email)
	assert.True(t, loaded.IsAuthenticated())
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Save(testSession()))

	updated := testSession()
	updated.Token = "rotated"
	require.NoError(t, store.Save(updated))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "rotated", loaded.Token)
}

func TestStore_ClearRemovesEverything(t *testing.T) {
	store := testStore(t)
	require.NoError(t, store.Save(testSession()))

	require.NoError(t, store.Clear())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	store := testStore(t)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Clear())
}

func TestStore_LoadCorruptFileFails(t *testing.T) {
	store := testStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.path), 0o750))
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o600))

	_, err := store.Load()

	assert.Error(t, err)
}

func TestStore_CreatesParentDirectory(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "nested", "deeper", "session.json"))

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
}
