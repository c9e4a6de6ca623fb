package client

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	session := &Session{Token: "tok", User: User{ID: "u1", Firstname: "Alice", Lastname: "Smith"}}

	require.NoError(t, SaveSession(path, session))

	loaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.Equal(t, session, loaded)
}

func TestLoadSessionMissingFile(t *testing.T) {
	_, err := LoadSession(filepath.Join(t.TempDir(), "session.json"))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestClearSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, SaveSession(path, &Session{Token: "tok"}))

	require.NoError(t, ClearSessionFile(path))
	_, err := LoadSession(path)
	assert.ErrorIs(t, err, ErrNoSession)

	// Clearing twice is fine.
	assert.NoError(t, ClearSessionFile(path))
}
