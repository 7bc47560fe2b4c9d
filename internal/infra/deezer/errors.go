package deezer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// Common errors
var (
	// ErrEmptyCredentials indicates the username or password is blank; no request is made.
	ErrEmptyCredentials = errors.New("username and password are required")

	// ErrOAuth indicates the access token was rejected or has expired.
	ErrOAuth = errors.New("invalid or expired access token")

	// ErrQuota indicates the remote quota was exceeded.
	ErrQuota = errors.New("quota limit exceeded")

	// ErrTimeout indicates the request timed out (transient)
	ErrTimeout = errors.New("request timed out")
)

// Remote error codes with a dedicated kind.
const (
	CodeQuota        = 4
	CodeOAuth        = 200
	CodeInvalidToken = 300
)

// APIError is an error reported by the remote API in an {"error": {...}} payload.
type APIError struct {
	Code    int
	Type    string
	Message string

	kind error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Type, e.Code, e.Message)
}

// Unwrap returns the registered kind (ErrQuota, ErrOAuth, ...) or nil for generic errors.
func (e *APIError) Unwrap() error {
	return e.kind
}

// Header is the title shown to the user for this error.
func (e *APIError) Header() string {
	return e.Type
}

// TransportError wraps failures below the API: unreachable host, unreadable body, bad JSON.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

var (
	codesMu sync.RWMutex
	codes   = map[int]error{
		CodeQuota:        ErrQuota,
		CodeOAuth:        ErrOAuth,
		CodeInvalidToken: ErrOAuth,
	}
)

// RegisterErrorCode maps a remote error code to an error kind. APIErrors carrying
// that code unwrap to kind.
func RegisterErrorCode(code int, kind error) {
	codesMu.Lock()
	defer codesMu.Unlock()
	codes[code] = kind
}

func kindOf(code int) error {
	codesMu.RLock()
	defer codesMu.RUnlock()
	return codes[code]
}

type errorBody struct {
	Code    *int    `json:"code"`
	Type    *string `json:"type"`
	Message *string `json:"message"`
}

// classify converts a raw error object into an *APIError. Missing type defaults to
// "API Error"; a missing message is replaced by the raw error object.
func classify(raw json.RawMessage) *APIError {
	apiErr := &APIError{Type: "API Error", Message: string(raw)}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	if body.Code != nil {
		apiErr.Code = *body.Code
		apiErr.kind = kindOf(*body.Code)
	}
	if body.Type != nil && *body.Type != "" {
		apiErr.Type = *body.Type
	}
	if body.Message != nil {
		apiErr.Message = *body.Message
	}
	return apiErr
}

// IsOAuth reports whether err means the session must be re-authenticated.
func IsOAuth(err error) bool {
	return errors.Is(err, ErrOAuth)
}

// IsQuota reports whether err is a quota error.
func IsQuota(err error) bool {
	return errors.Is(err, ErrQuota)
}
