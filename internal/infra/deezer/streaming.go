package deezer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/transport/query"
)

// Stream kinds understood by the streaming endpoint.
const (
	KindTrack  = "track"
	KindRadio  = "radio"
	KindArtist = "artist"
)

// Stream is the outcome of a stream resolution. For track kinds URL holds the raw
// response: a playable URL, or a non-URL marker when the track cannot be played
// (removed, geo-restricted). Radio and artist kinds return a JSON Descriptor instead.
type Stream struct {
	URL        string
	Descriptor Payload
}

// Playable reports whether URL is an HTTP(S) stream. A non-playable stream is an
// expected outcome, not an error.
func (s Stream) Playable() bool {
	return strings.HasPrefix(s.URL, "http")
}

// RequestStreaming resolves the stream of item id. When no token is held yet, the
// session credentials are used to authenticate first.
func (c *Client) RequestStreaming(ctx context.Context, id, kind string) (Stream, error) {
	if kind == "" {
		kind = KindTrack
	}

	log.Info().Str("kind", kind).Str("id", id).Msg("Requesting streaming")

	if c.accessToken() == "" {
		var creds Credentials
		if s := c.Session(); s != nil {
			creds = s.Credentials
		}
		if _, err := c.Authenticate(ctx, creds); err != nil {
			return Stream{}, err
		}
	}

	params := query.New(
		"access_token", c.accessToken(),
		kind+"_id", id,
		"device", c.device,
	)

	rawURL := c.streamingURL + "?" + query.Encode(params)

	if strings.HasPrefix(kind, KindRadio) || strings.HasPrefix(kind, KindArtist) {
		body, err := c.getRaw(ctx, rawURL)
		if err != nil {
			return Stream{}, err
		}
		payload, err := decodePayload(body)
		if err != nil {
			return Stream{}, &TransportError{Op: "decode", URL: redact(c.streamingURL), Err: err}
		}
		if err := payload.Err(); err != nil {
			return Stream{}, err
		}
		return Stream{Descriptor: payload}, nil
	}

	// Track answers are handed back whatever the status, for the caller's playability
	// check. An expired token must still trigger re-authentication.
	status, body, err := c.do(ctx, rawURL)
	if err != nil {
		return Stream{}, err
	}
	if status != http.StatusOK {
		log.Warn().Int("status", status).Str("id", id).Msg("Streaming endpoint refused track")
	}

	if looksLikeJSON(body) {
		if payload, err := decodePayload(body); err == nil {
			if err := payload.Err(); err != nil && errors.Is(err, ErrOAuth) {
				return Stream{}, err
			}
		}
	}

	return Stream{URL: strings.TrimSpace(string(body))}, nil
}
