package app

import (
	"fmt"
	"strconv"

	"github.com/edumarques81/stellar-deezer/internal/transport/query"
)

// Arguments wraps the three values a host passes to the plugin: its base URL, the
// listing handle and the query string.
type Arguments struct {
	BaseURL string
	Handle  int

	params *query.Values
}

// NewArguments parses argv: base URL, numeric handle and query string (a leading "?"
// is optional).
func NewArguments(argv []string) (*Arguments, error) {
	if len(argv) < 3 {
		return nil, fmt.Errorf("expected base URL, handle and query, got %d arguments", len(argv))
	}

	handle, err := strconv.Atoi(argv[1])
	if err != nil {
		return nil, fmt.Errorf("invalid handle %q: %w", argv[1], err)
	}

	params, err := query.Decode(argv[2])
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", argv[2], err)
	}

	return &Arguments{BaseURL: argv[0], Handle: handle, params: params}, nil
}

// Get returns the first value of key, or "".
func (a *Arguments) Get(key string) string {
	return a.params.Get(key)
}

// GetDefault returns the first value of key, or def when key is absent.
func (a *Arguments) GetDefault(key, def string) string {
	if !a.params.Has(key) {
		return def
	}
	return a.params.Get(key)
}

// All returns every value of key.
func (a *Arguments) All(key string) []string {
	return a.params.All(key)
}

// Has reports whether key was given.
func (a *Arguments) Has(key string) bool {
	return a.params.Has(key)
}

// Set replaces the values of key.
func (a *Arguments) Set(key, value string) {
	a.params.Set(key, value)
}

// Path is the requested virtual path, "/" when absent.
func (a *Arguments) Path() string {
	path := a.GetDefault("path", "/")
	if path == "" {
		return "/"
	}
	return path
}
