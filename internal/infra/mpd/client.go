// Package mpd hands resolved stream URLs to an MPD server for playback.
package mpd

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fhs/gompd/v2/mpd"
	"github.com/rs/zerolog/log"
)

// Client wraps the MPD client with reconnection logic.
type Client struct {
	mu       sync.Mutex
	client   *mpd.Client
	host     string
	port     int
	password string
}

// NewClient creates a new MPD client wrapper.
func NewClient(host string, port int, password string) *Client {
	return &Client{
		host:     host,
		port:     port,
		password: password,
	}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// connectLocked establishes connection (must hold lock).
func (c *Client) connectLocked() error {
	addr := c.Addr()
	log.Info().Str("addr", addr).Msg("Connecting to MPD")

	client, err := mpd.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to MPD: %w", err)
	}

	if c.password != "" {
		if err := client.Command("password %s", c.password).OK(); err != nil {
			client.Close()
			return fmt.Errorf("MPD authentication failed: %w", err)
		}
	}

	c.client = client
	log.Info().Msg("Connected to MPD")
	return nil
}

// ensureConnectedLocked reconnects when the connection is missing or dead (must hold lock).
func (c *Client) ensureConnectedLocked() error {
	if c.client == nil {
		return c.connectLocked()
	}

	if err := c.client.Ping(); err != nil {
		log.Warn().Err(err).Msg("MPD connection lost, reconnecting...")
		c.client.Close()
		c.client = nil
		return c.connectLocked()
	}

	return nil
}

// Close closes the MPD connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// PlayURL appends a stream to the queue and starts playing it at once.
func (c *Client) PlayURL(url string) error {
	if !strings.HasPrefix(url, "http") {
		return fmt.Errorf("not a stream URL: %q", url)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnectedLocked(); err != nil {
		return err
	}

	id, err := c.client.AddID(url, -1)
	if err != nil {
		return fmt.Errorf("failed to queue stream: %w", err)
	}
	if err := c.client.PlayID(id); err != nil {
		return fmt.Errorf("failed to play stream: %w", err)
	}

	log.Info().Int("id", id).Msg("Stream handed to MPD")
	return nil
}

// NowPlaying returns "artist - title" of the current song, or its file when tags are
// missing. Stream URLs only carry tags once MPD has read the stream headers.
func (c *Client) NowPlaying() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureConnectedLocked(); err != nil {
		return "", err
	}

	song, err := c.client.CurrentSong()
	if err != nil {
		return "", err
	}
	if song["Title"] == "" {
		return song["file"], nil
	}
	if song["Artist"] == "" {
		return song["Title"], nil
	}
	return song["Artist"] + " - " + song["Title"], nil
}
