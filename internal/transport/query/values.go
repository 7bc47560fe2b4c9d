// Package query encodes and decodes the query strings the host passes to the plugin
// and the navigation URLs the plugin hands back.
package query

import (
	"fmt"
	"net/url"
	"strings"
)

// Values is a query mapping that remembers key insertion order, so encoded URLs are
// deterministic.
type Values struct {
	keys   []string
	values map[string][]string
}

// New creates Values from alternating key/value pairs.
func New(pairs ...string) *Values {
	v := &Values{values: make(map[string][]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

// Set replaces the values of key.
func (v *Values) Set(key, value string) {
	v.init()
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = []string{value}
}

// Add appends value to key.
func (v *Values) Add(key, value string) {
	v.init()
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = append(v.values[key], value)
}

// Get returns the first value of key, or "" when absent.
func (v *Values) Get(key string) string {
	if v == nil {
		return ""
	}
	vs := v.values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// All returns every value stored for key.
func (v *Values) All(key string) []string {
	if v == nil {
		return nil
	}
	return v.values[key]
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	if v == nil {
		return false
	}
	_, ok := v.values[key]
	return ok
}

// Del removes key.
func (v *Values) Del(key string) {
	if v == nil || !v.Has(key) {
		return
	}
	delete(v.values, key)
	for i, k := range v.keys {
		if k == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Keys returns keys in insertion order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Len returns the number of keys.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

func (v *Values) init() {
	if v.values == nil {
		v.values = make(map[string][]string)
	}
}

// Decode parses a query string. A single leading '?' is ignored and the empty string
// yields empty Values. Blank values are kept: "k=" and "k" both decode to k = "".
func Decode(qs string) (*Values, error) {
	v := New()
	qs = strings.TrimPrefix(qs, "?")
	if qs == "" {
		return v, nil
	}

	for _, pair := range strings.Split(qs, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("decode key %q: %w", rawKey, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("decode value of %q: %w", key, err)
		}
		v.Add(key, value)
	}

	return v, nil
}

// Encode renders v as a query string in insertion order. Empty Values encode to "".
func Encode(v *Values) string {
	if v.Len() == 0 {
		return ""
	}

	var b strings.Builder
	for _, k := range v.keys {
		for _, val := range v.values[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}

// Path joins elements into a virtual path with exactly one leading slash.
//
//	Path()                  == "/"
//	Path("family", 1)       == "/family/1"
//	Path("/family/", "/1/") == "/family/1"
func Path(parts ...any) string {
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		s := strings.Trim(fmt.Sprint(p), "/")
		if s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return "/" + strings.Join(trimmed, "/")
}
