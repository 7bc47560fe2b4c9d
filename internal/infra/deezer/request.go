package deezer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/transport/query"
)

// Payload is one decoded JSON object returned by the API. Values stay raw until a caller
// decodes them into a typed record.
type Payload map[string]json.RawMessage

func decodePayload(body []byte) (Payload, error) {
	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if p == nil {
		p = Payload{}
	}
	return p, nil
}

// Has reports whether key is present.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Field decodes the value under key into v.
func (p Payload) Field(key string, v any) error {
	raw, ok := p[key]
	if !ok {
		return fmt.Errorf("field %q not found", key)
	}
	return json.Unmarshal(raw, v)
}

// Decode decodes the whole object into v.
func (p Payload) Decode(v any) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Err returns the classified API error when the payload carries an "error" object.
func (p Payload) Err() error {
	raw, ok := p["error"]
	if !ok {
		return nil
	}
	return classify(raw)
}

// Data decodes the "data" array. A missing array is empty.
func (p Payload) Data() ([]json.RawMessage, error) {
	raw, ok := p["data"]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	return items, nil
}

func (p Payload) next() (string, bool) {
	raw, ok := p["next"]
	if !ok {
		return "", false
	}
	var next string
	if err := json.Unmarshal(raw, &next); err != nil || next == "" {
		return "", false
	}
	return next, true
}

// Request fetches {base}/{service}/{id}/{method} with the session token and params.
// Paginated responses are followed to the end; the result holds every item in "data"
// and no "next" link.
func (c *Client) Request(ctx context.Context, service, id, method string, params *query.Values) (Payload, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s",
		c.baseURL, url.PathEscape(service), url.PathEscape(id), url.PathEscape(method))

	q := query.New("output", "json", "access_token", c.accessToken())
	for _, k := range params.Keys() {
		for _, v := range params.All(k) {
			q.Add(k, v)
		}
	}

	log.Debug().
		Str("service", service).
		Str("id", id).
		Str("method", method).
		Msg("Requesting resource")

	return c.fetchAll(ctx, endpoint+"?"+query.Encode(q))
}

// RequestURL fetches an absolute URL, e.g. a pagination cursor, with the same
// flattening and error handling as Request.
func (c *Client) RequestURL(ctx context.Context, rawURL string) (Payload, error) {
	return c.fetchAll(ctx, rawURL)
}

// fetchAll follows "next" links with an accumulator, stopping at maxPages or when a
// cursor repeats.
func (c *Client) fetchAll(ctx context.Context, rawURL string) (Payload, error) {
	first, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	next, more := first.next()
	if !more {
		return first, nil
	}

	data, err := first.Data()
	if err != nil {
		return nil, &TransportError{Op: "decode", URL: redact(rawURL), Err: err}
	}

	seen := map[string]bool{rawURL: true}
	for pages := 1; more; pages++ {
		if pages >= c.maxPages {
			log.Warn().Int("pages", pages).Str("url", redact(rawURL)).Msg("Page limit reached, truncating")
			break
		}
		if seen[next] {
			log.Warn().Str("next", redact(next)).Msg("Pagination cursor repeats, stopping")
			break
		}
		seen[next] = true

		page, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		items, err := page.Data()
		if err != nil {
			return nil, &TransportError{Op: "decode", URL: redact(next), Err: err}
		}
		data = append(data, items...)
		next, more = page.next()
	}

	if data == nil {
		data = []json.RawMessage{}
	}
	merged, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("merge pages: %w", err)
	}
	first["data"] = merged
	delete(first, "next")

	log.Debug().Int("items", len(data)).Str("url", redact(rawURL)).Msg("Merged paginated response")
	return first, nil
}
