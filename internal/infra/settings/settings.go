// Package settings handles the plugin's user settings.
// Settings are stored in ~/.config/stellar-deezer/settings.toml.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/infra/deezer"
)

const (
	defaultPath    = "~/.config/stellar-deezer/settings.toml"
	defaultTimeout = 30
)

// Settings holds the values a user edits from the host's settings screen.
type Settings struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Debug    bool   `toml:"debug"`
	Timeout  int    `toml:"timeout"` // seconds
	Device   string `toml:"device,omitempty"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{Timeout: defaultTimeout}
}

// Credentials hashes the stored password. The plaintext never leaves this package.
func (s Settings) Credentials() deezer.Credentials {
	return deezer.NewCredentials(s.Username, s.Password)
}

// HasCredentials reports whether both username and password are filled in.
func (s Settings) HasCredentials() bool {
	return strings.TrimSpace(s.Username) != "" && s.Password != ""
}

// RequestTimeout returns the configured timeout, falling back to the default.
func (s Settings) RequestTimeout() time.Duration {
	if s.Timeout <= 0 {
		return defaultTimeout * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

// Store reads and writes settings at a fixed path.
type Store struct {
	path string
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	return defaultPath
}

// NewStore creates a store for path. An empty path selects DefaultPath.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the resolved settings file path.
func (s *Store) Path() (string, error) {
	return resolvePath(s.path)
}

// Load reads settings, falling back to defaults if the file is missing. A malformed
// file is reported.
func (s *Store) Load() (Settings, error) {
	settings := Defaults()

	resolved, err := resolvePath(s.path)
	if err != nil {
		return settings, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", resolved).Msg("No settings file, using defaults")
			return settings, nil
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}

	if err := toml.Unmarshal(data, &settings); err != nil {
		return Defaults(), fmt.Errorf("parse settings %s: %w", resolved, err)
	}

	if settings.Timeout <= 0 {
		settings.Timeout = defaultTimeout
	}
	settings.Username = strings.TrimSpace(settings.Username)

	return settings, nil
}

// Save writes settings, creating directories as needed. The file holds a plaintext
// password and is readable by the owner only.
func (s *Store) Save(settings Settings) error {
	resolved, err := resolvePath(s.path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	log.Info().Str("path", resolved).Msg("Settings saved")
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
