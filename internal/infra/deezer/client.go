// Package deezer is a client for the Deezer catalog API and its smart-TV streaming
// endpoints: authentication, paginated resource requests and stream resolution.
package deezer

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/transport/query"
	"github.com/edumarques81/stellar-deezer/internal/version"
)

const (
	// DefaultBaseURL is the Deezer API base URL
	DefaultBaseURL = "https://api.deezer.com/2.0"

	// DefaultAuthURL authenticates as a smart TV, which unlocks full-bitrate streams.
	DefaultAuthURL = "http://tv.deezer.com/smarttv/authentication.php"

	// DefaultStreamingURL resolves stream URLs for the smart TV device class.
	DefaultStreamingURL = "http://tv.deezer.com/smarttv/streaming.php"

	// DefaultDevice is the device class announced to the auth and streaming endpoints.
	DefaultDevice = "panasonic"

	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit stays below the API quota of 50 requests per 5 seconds.
	DefaultRateLimit = 8

	// DefaultMaxPages bounds how many "next" links a single request follows.
	DefaultMaxPages = 100
)

// Credentials identify a Deezer account. The password is only held as an MD5 hex digest.
type Credentials struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// NewCredentials hashes password and returns the resulting credentials.
// An empty password stays empty so that Empty() reports it.
func NewCredentials(username, password string) Credentials {
	c := Credentials{Username: strings.TrimSpace(username)}
	if password != "" {
		sum := md5.Sum([]byte(password))
		c.PasswordHash = hex.EncodeToString(sum[:])
	}
	return c
}

// Empty reports whether either field is missing.
func (c Credentials) Empty() bool {
	return c.Username == "" || c.PasswordHash == ""
}

// Session is an access token together with the credentials that produced it.
type Session struct {
	AccessToken string      `json:"access_token"`
	Credentials Credentials `json:"credentials"`
}

// Valid reports whether the session has both a token and credentials.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != "" && !s.Credentials.Empty()
}

// Client talks to the Deezer API. One client serves one plugin invocation.
type Client struct {
	baseURL      string
	authURL      string
	streamingURL string
	device       string
	userAgent    string
	maxPages     int
	httpClient   *http.Client
	limiter      *rateLimiter

	mu      sync.RWMutex
	session *Session
}

// Option is a functional option for configuring the client.
type Option func(*Client)

// WithBaseURL sets a custom API base URL (useful for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithAuthURL sets a custom authentication URL.
func WithAuthURL(u string) Option {
	return func(c *Client) {
		c.authURL = u
	}
}

// WithStreamingURL sets a custom streaming URL.
func WithStreamingURL(u string) Option {
	return func(c *Client) {
		c.streamingURL = u
	}
}

// WithDevice overrides the announced device class.
func WithDevice(device string) Option {
	return func(c *Client) {
		if device != "" {
			c.device = device
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit sets the maximum requests per second. Zero disables pacing.
func WithRateLimit(requestsPerSecond int) Option {
	return func(c *Client) {
		c.limiter = newRateLimiter(requestsPerSecond)
	}
}

// WithMaxPages bounds pagination.
func WithMaxPages(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxPages = n
		}
	}
}

// WithSession starts the client with an existing session.
func WithSession(s *Session) Option {
	return func(c *Client) {
		c.session = s
	}
}

// NewClient creates a new Deezer API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		authURL:      DefaultAuthURL,
		streamingURL: DefaultStreamingURL,
		device:       DefaultDevice,
		userAgent:    version.UserAgent(),
		maxPages:     DefaultMaxPages,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: newRateLimiter(DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Session returns the current session, or nil before authentication.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession replaces the current session.
func (c *Client) SetSession(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = s
}

func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}

// Authenticate obtains an access token for creds and adopts the resulting session.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (*Session, error) {
	if creds.Empty() {
		return nil, ErrEmptyCredentials
	}

	log.Debug().Str("username", creds.Username).Msg("Getting access token from API")

	params := query.New(
		"login", creds.Username,
		"password", creds.PasswordHash,
		"device", c.device,
	)

	payload, err := c.get(ctx, c.authURL+"?"+query.Encode(params))
	if err != nil {
		return nil, err
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := payload.Decode(&body); err != nil {
		return nil, &TransportError{Op: "decode", URL: redact(c.authURL), Err: err}
	}
	if body.AccessToken == "" {
		return nil, &APIError{Type: "API Error", Message: "authentication response carried no access token"}
	}

	session := &Session{AccessToken: body.AccessToken, Credentials: creds}
	c.SetSession(session)

	log.Info().Str("username", creds.Username).Msg("Authenticated with Deezer")
	return session, nil
}

// getRaw performs a paced GET and returns the response body. Non-200 answers fail
// unless they carry a JSON body, which the caller classifies.
func (c *Client) getRaw(ctx context.Context, rawURL string) ([]byte, error) {
	status, body, err := c.do(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && !looksLikeJSON(body) {
		return nil, &TransportError{
			Op:  "GET",
			URL: redact(rawURL),
			Err: fmt.Errorf("unexpected status: %d", status),
		}
	}
	return body, nil
}

// do performs a paced GET and returns the status and body. Only 429 is turned into
// an error here.
func (c *Client) do(ctx context.Context, rawURL string) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("url", redact(rawURL)).Msg("Requesting")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, &APIError{Type: "TimeoutException", Message: err.Error(), kind: ErrTimeout}
		}
		return 0, nil, &TransportError{Op: "GET", URL: redact(rawURL), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, &APIError{Type: "TimeoutException", Message: err.Error(), kind: ErrTimeout}
		}
		return 0, nil, &TransportError{Op: "read", URL: redact(rawURL), Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		log.Warn().Str("url", redact(rawURL)).Msg("Deezer rate limit exceeded")
		return 0, nil, &APIError{Code: CodeQuota, Type: "Exception", Message: "Quota limit exceeded", kind: ErrQuota}
	}
	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", redact(rawURL)).Msg("Unexpected status")
	}

	return resp.StatusCode, body, nil
}

// get performs a GET, decodes the JSON object and converts error payloads.
func (c *Client) get(ctx context.Context, rawURL string) (Payload, error) {
	body, err := c.getRaw(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	payload, err := decodePayload(body)
	if err != nil {
		return nil, &TransportError{Op: "decode", URL: redact(rawURL), Err: err}
	}
	if err := payload.Err(); err != nil {
		return nil, err
	}
	return payload, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func looksLikeJSON(body []byte) bool {
	trimmed := strings.TrimSpace(string(body))
	return strings.HasPrefix(trimmed, "{")
}

// redact drops the query string, which carries tokens and password hashes.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	return u.String()
}
