package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by LoadSession when no session has been saved.
var ErrNoSession = errors.New("no saved session")

// DefaultSessionPath returns the per-user location for the persisted
// session file.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cookbook", "session.json"), nil
}

// SaveSession writes the session to path, creating parent directories as
// needed. The file is user-only since it holds a bearer token.
func SaveSession(path string, session *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadSession reads a previously saved session, or ErrNoSession when the
// file does not exist.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	if session.Token == "" {
		return nil, ErrNoSession
	}
	return &session, nil
}

// ClearSessionFile removes the persisted session; a missing file is not an
// error.
func ClearSessionFile(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
