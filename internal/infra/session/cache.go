// Package session persists the Deezer session between plugin invocations so that a run
// can skip authentication.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/infra/deezer"
)

// FileName is the name of the session slot inside the cache directory.
const FileName = "session.json"

// ErrNotFound is returned by Load when no usable session is stored. A slot that exists
// but is unreadable or incomplete reports it too, wrapped with the reason.
var ErrNotFound = errors.New("session: not found")

// Cache is a single on-disk session slot. Invocations are serialized by the host, so
// the file is not locked.
type Cache struct {
	path string
}

// NewCache creates a cache backed by the file at path.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// InDir creates a cache at FileName inside dir.
func InDir(dir string) *Cache {
	return NewCache(filepath.Join(dir, FileName))
}

// Path returns the slot's file path.
func (c *Cache) Path() string {
	return c.path
}

// Load reads the stored session.
func (c *Cache) Load() (*deezer.Session, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s deezer.Session
	if err := json.Unmarshal(data, &s); err != nil {
		log.Warn().Err(err).Str("path", c.path).Msg("Discarding unreadable session cache")
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if !s.Valid() {
		log.Warn().Str("path", c.path).Msg("Discarding incomplete session cache")
		return nil, fmt.Errorf("%w: incomplete session", ErrNotFound)
	}

	log.Debug().Str("path", c.path).Str("username", s.Credentials.Username).Msg("Session loaded from cache")
	return &s, nil
}

// Save writes s to the slot. The file is replaced atomically and readable by the owner
// only.
func (c *Cache) Save(s *deezer.Session) error {
	if !s.Valid() {
		return fmt.Errorf("refusing to cache incomplete session")
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}

	log.Debug().Str("path", c.path).Msg("Session saved")
	return nil
}

// Clean removes the stored session. A missing slot is not an error.
func (c *Cache) Clean() error {
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	log.Debug().Str("path", c.path).Msg("Session cache cleaned")
	return nil
}
