package router

import (
	"context"
	"errors"
	"testing"
)

// recorder counts calls and remembers the last bound parameters.
type recorder struct {
	calls  int
	params Params
	result string
}

func (r *recorder) handle(_ context.Context, _ struct{}, p Params) (string, error) {
	r.calls++
	r.params = p
	return r.result, nil
}

func TestRouteEmptyRouter(t *testing.T) {
	rt := New[struct{}, string]()

	_, ok, err := rt.Route(context.Background(), "/", struct{}{})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if ok {
		t.Error("expected no match on empty router")
	}
}

func TestRouteRoot(t *testing.T) {
	root := &recorder{result: "a"}
	personal := &recorder{result: "b"}

	rt := New[struct{}, string]()
	rt.Add("/", root.handle)
	rt.Add("/personal", personal.handle)

	got, ok, err := rt.Route(context.Background(), "/", struct{}{})
	if err != nil || !ok {
		t.Fatalf("Route() ok = %v, err = %v", ok, err)
	}
	if got != "a" {
		t.Errorf("Route() = %q, want %q", got, "a")
	}
	if root.calls != 1 {
		t.Errorf("root handler called %d times, want 1", root.calls)
	}
	if personal.calls != 0 {
		t.Errorf("personal handler called %d times, want 0", personal.calls)
	}
}

func TestRouteTable(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		patterns   []string
		wantIndex  int
		wantParams Params
	}{
		{
			name:      "registered after root",
			path:      "/",
			patterns:  []string{"/personal", "/"},
			wantIndex: 1,
		},
		{
			name:      "two deep",
			path:      "/personal/playlists",
			patterns:  []string{"/", "/personal/playlists"},
			wantIndex: 1,
		},
		{
			name:      "similar prefix",
			path:      "/personal/playlists",
			patterns:  []string{"/personal", "/personal/playlists"},
			wantIndex: 1,
		},
		{
			name:       "one parameter",
			path:       "/playlists/10",
			patterns:   []string{"/family", "/playlists/{identifiant}"},
			wantIndex:  1,
			wantParams: Params{"identifiant": "10"},
		},
		{
			name:       "two parameters",
			path:       "/playlists/10/track/2",
			patterns:   []string{"/family", "/playlists/{identifiant}/track/{id_track}"},
			wantIndex:  1,
			wantParams: Params{"identifiant": "10", "id_track": "2"},
		},
		{
			name:       "first registered wins on overlap",
			path:       "/artists/top",
			patterns:   []string{"/artists/{identifiant}", "/artists/top"},
			wantIndex:  0,
			wantParams: Params{"identifiant": "top"},
		},
		{
			name:      "no match",
			path:      "/unknown",
			patterns:  []string{"/", "/family", "/playlists/{identifiant}"},
			wantIndex: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := New[struct{}, string]()
			recs := make([]*recorder, len(tt.patterns))
			for i, p := range tt.patterns {
				recs[i] = &recorder{}
				rt.Add(p, recs[i].handle)
			}

			_, ok, err := rt.Route(context.Background(), tt.path, struct{}{})
			if err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if ok != (tt.wantIndex >= 0) {
				t.Fatalf("Route() ok = %v, want %v", ok, tt.wantIndex >= 0)
			}

			for i, rec := range recs {
				want := 0
				if i == tt.wantIndex {
					want = 1
				}
				if rec.calls != want {
					t.Errorf("handler %q called %d times, want %d", tt.patterns[i], rec.calls, want)
				}
			}

			if tt.wantIndex < 0 {
				return
			}
			got := recs[tt.wantIndex].params
			if len(got) != len(tt.wantParams) {
				t.Fatalf("params = %v, want %v", got, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if got.Get(k) != v {
					t.Errorf("param %s = %q, want %q", k, got.Get(k), v)
				}
			}
		})
	}
}

func TestRoutePropagatesError(t *testing.T) {
	want := errors.New("boom")
	rt := New[struct{}, string]()
	rt.Add("/fail", func(context.Context, struct{}, Params) (string, error) {
		return "", want
	})

	_, ok, err := rt.Route(context.Background(), "/fail", struct{}{})
	if !ok {
		t.Fatal("expected match")
	}
	if !errors.Is(err, want) {
		t.Errorf("Route() error = %v, want %v", err, want)
	}
}
