package mpd_test

import (
	"testing"

	"github.com/edumarques81/stellar-deezer/internal/infra/mpd"
)

func TestNewClient(t *testing.T) {
	client := mpd.NewClient("localhost", 6600, "")

	if client == nil {
		t.Fatal("NewClient should return a non-nil client")
	}
	if client.Addr() != "localhost:6600" {
		t.Errorf("Addr() = %q, want localhost:6600", client.Addr())
	}
}

func TestClientNowPlayingWithoutServer(t *testing.T) {
	client := mpd.NewClient("localhost", 16600, "")

	if _, err := client.NowPlaying(); err == nil {
		t.Error("NowPlaying should fail when MPD is unreachable")
	}
}

func TestClientPlayURLRejectsMarker(t *testing.T) {
	client := mpd.NewClient("localhost", 16600, "")

	if err := client.PlayURL("no-access"); err == nil {
		t.Error("PlayURL should reject non-HTTP values")
	}
}

func TestClientPlayURLWithoutServer(t *testing.T) {
	client := mpd.NewClient("localhost", 16600, "")

	if err := client.PlayURL("https://stream.example/42.mp3"); err == nil {
		t.Error("PlayURL should fail when MPD is unreachable")
	}
}

func TestClientCloseWithoutConnect(t *testing.T) {
	client := mpd.NewClient("localhost", 6600, "")

	if err := client.Close(); err != nil {
		t.Errorf("Close should be a no-op when not connected, got %v", err)
	}
}

// Integration test - requires a running MPD server
func TestClientIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := mpd.NewClient("localhost", 6600, "")
	defer client.Close()

	if _, err := client.NowPlaying(); err != nil {
		t.Skipf("MPD not available: %v", err)
	}
	if err := client.PlayURL("no-access"); err == nil {
		t.Error("PlayURL should reject non-HTTP values on a live connection")
	}
}
