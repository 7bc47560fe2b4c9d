// Package router matches virtual paths such as "/albums/123" against registered
// patterns such as "/albums/{identifiant}" and dispatches to the matching handler.
package router

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// Params holds the values bound to a pattern's {name} segments.
type Params map[string]string

// Get returns the value bound to name.
func (p Params) Get(name string) string {
	return p[name]
}

// Handler serves one route. env carries whatever the application shares with its
// handlers.
type Handler[E, R any] func(ctx context.Context, env E, p Params) (R, error)

type route[E, R any] struct {
	pattern  string
	segments []string
	handler  Handler[E, R]
}

// Router holds routes in registration order.
type Router[E, R any] struct {
	routes []route[E, R]
}

// New creates an empty router.
func New[E, R any]() *Router[E, R] {
	return &Router[E, R]{}
}

// Add registers handler for pattern. Patterns are '/'-delimited; a segment wrapped in
// braces is a named parameter.
func (r *Router[E, R]) Add(pattern string, handler Handler[E, R]) {
	r.routes = append(r.routes, route[E, R]{
		pattern:  pattern,
		segments: strings.Split(pattern, "/"),
		handler:  handler,
	})
}

// Len returns the number of registered routes.
func (r *Router[E, R]) Len() int {
	return len(r.routes)
}

// Route invokes the first registered route matching path. ok is false when nothing
// matches, in which case no handler runs.
func (r *Router[E, R]) Route(ctx context.Context, path string, env E) (result R, ok bool, err error) {
	location := strings.Split(path, "/")

	for _, rt := range r.routes {
		params, matched := match(rt.segments, location)
		if !matched {
			continue
		}

		log.Debug().
			Str("path", path).
			Str("pattern", rt.pattern).
			Msg("Route matched")

		result, err = rt.handler(ctx, env, params)
		return result, true, err
	}

	log.Debug().Str("path", path).Msg("No route matched")
	return result, false, nil
}

// match compares segment lists of equal length: parameter segments bind anything,
// literal segments must be equal.
func match(pattern, location []string) (Params, bool) {
	if len(pattern) != len(location) {
		return nil, false
	}

	params := Params{}
	for i, part := range pattern {
		if name, isParam := paramName(part); isParam {
			params[name] = location[i]
			continue
		}
		if part != location[i] {
			return nil, false
		}
	}
	return params, true
}

func paramName(segment string) (string, bool) {
	if len(segment) >= 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
		return segment[1 : len(segment)-1], true
	}
	return "", false
}
