package settings

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := NewStore("").Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s != Defaults() {
		t.Fatalf("Load = %+v, want defaults", s)
	}
	if s.HasCredentials() {
		t.Fatal("defaults should have no credentials")
	}
}

func TestLoad_ReadsHomeFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "stellar-deezer")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "username = \" alice \"\npassword = \"secret\"\ndebug = true\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := NewStore("~/.config/stellar-deezer/settings.toml").Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Username != "alice" {
		t.Fatalf("Username = %q, want %q", s.Username, "alice")
	}
	if !s.Debug {
		t.Fatal("Debug should be true")
	}
	if s.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %d, want default %d", s.Timeout, defaultTimeout)
	}
	if !s.HasCredentials() {
		t.Fatal("HasCredentials should be true")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("username = \n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := NewStore(path).Load()
	if err == nil {
		t.Fatal("Load should fail on malformed file")
	}
	if s != Defaults() {
		t.Fatalf("Load = %+v, want defaults on error", s)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "settings.toml")
	store := NewStore(path)

	want := Settings{Username: "bob", Password: "pw", Timeout: 5, Device: "tv"}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode = %o, want 600", perm)
	}
}

func TestCredentials(t *testing.T) {
	s := Settings{Username: "alice", Password: "secret"}
	c := s.Credentials()

	if c.Username != "alice" {
		t.Errorf("Username = %q", c.Username)
	}
	if c.PasswordHash == "secret" || len(c.PasswordHash) != 32 {
		t.Errorf("PasswordHash = %q, want md5 hex digest", c.PasswordHash)
	}
}

func TestRequestTimeout(t *testing.T) {
	tests := []struct {
		timeout int
		want    time.Duration
	}{
		{0, 30 * time.Second},
		{-1, 30 * time.Second},
		{10, 10 * time.Second},
	}

	for _, tt := range tests {
		if got := (Settings{Timeout: tt.timeout}).RequestTimeout(); got != tt.want {
			t.Errorf("RequestTimeout(%d) = %v, want %v", tt.timeout, got, tt.want)
		}
	}
}
