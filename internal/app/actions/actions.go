// Package actions holds what the plugin does at each virtual path: the menus, the
// catalog listings and track playback.
package actions

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/domain/catalog"
	"github.com/edumarques81/stellar-deezer/internal/domain/view"
	"github.com/edumarques81/stellar-deezer/internal/infra/deezer"
	"github.com/edumarques81/stellar-deezer/internal/transport/host"
	"github.com/edumarques81/stellar-deezer/internal/transport/query"
	"github.com/edumarques81/stellar-deezer/internal/transport/router"
)

// paramID is the name of the identifier segment in route patterns.
const paramID = "identifiant"

// Remote is the part of the Deezer client the handlers use.
type Remote interface {
	Request(ctx context.Context, service, id, method string, params *query.Values) (deezer.Payload, error)
	RequestStreaming(ctx context.Context, id, kind string) (deezer.Stream, error)
}

// Args gives access to the invocation's query parameters.
type Args interface {
	Get(key string) string
}

// Env is shared by every handler of a run.
type Env struct {
	Client    Remote
	Host      host.Host
	Args      Args
	Resources string // plugin resources directory, holding icons/
}

// Icon returns the path of a bundled icon.
func (e *Env) Icon(name string) string {
	return filepath.Join(e.Resources, "icons", name+".png")
}

// Router routes virtual paths to handlers.
type Router = router.Router[*Env, view.List]

// Handler is a route handler.
type Handler = router.Handler[*Env, view.List]

// NewRouter returns a router with every route loaded.
func NewRouter() *Router {
	r := router.New[*Env, view.List]()
	Load(r)
	return r
}

// Load registers the plugin routes. Order matters: the first matching pattern wins.
func Load(r *Router) {
	r.Add("/", Home)

	r.Add("/family", FamilyIndex)
	r.Add("/family/{identifiant}", FamilyShow)
	r.Add("/family/{identifiant}/playlists", UserPlaylists)
	r.Add("/family/{identifiant}/albums", UserAlbums)
	r.Add("/family/{identifiant}/artists", UserArtists)
	r.Add("/family/{identifiant}/flow", UserFlow)

	r.Add("/personal", PersonalIndex)
	r.Add("/personal/playlists", me(UserPlaylists))
	r.Add("/personal/albums", me(UserAlbums))
	r.Add("/personal/artists", me(UserArtists))
	r.Add("/personal/flow", me(UserFlow))

	r.Add("/playlists/{identifiant}", PlaylistShow)
	r.Add("/albums/{identifiant}", AlbumShow)
	r.Add("/tracks/{identifiant}/play", TrackPlay)

	r.Add("/artists/{identifiant}", ArtistShow)
	r.Add("/artists/{identifiant}/top", ArtistTop)
	r.Add("/artists/{identifiant}/albums", ArtistAlbums)

	r.Add("/search", SearchIndex)
	r.Add("/search/tracks", SearchTracks)
	r.Add("/search/albums", SearchAlbums)
	r.Add("/search/artists", SearchArtists)
}

// me runs a user handler for the authenticated user.
func me(h Handler) Handler {
	return func(ctx context.Context, env *Env, _ router.Params) (view.List, error) {
		return h(ctx, env, router.Params{paramID: "me"})
	}
}

// fetch requests a resource and decodes it into v.
func fetch(ctx context.Context, env *Env, v any, service, id, method string, params *query.Values) error {
	payload, err := env.Client.Request(ctx, service, id, method, params)
	if err != nil {
		return err
	}
	if err := payload.Decode(v); err != nil {
		return fmt.Errorf("decode %s/%s/%s: %w", service, id, method, err)
	}
	return nil
}

// hydrate completes tracks listed without their album by fetching each one. A track
// that cannot be fetched is kept as listed. Failures that would hit every track abort
// the listing.
func hydrate(ctx context.Context, env *Env, tracks []catalog.Track) error {
	for i := range tracks {
		if tracks[i].HasAlbum() {
			continue
		}

		var full catalog.Track
		if err := fetch(ctx, env, &full, "track", tracks[i].ID.String(), "", nil); err != nil {
			if fatal(err) {
				return err
			}
			log.Warn().Err(err).Str("track", tracks[i].ID.String()).Msg("Keeping track without album")
			continue
		}
		tracks[i].Merge(full)

		log.Debug().Str("track", tracks[i].ID.String()).Msg("Hydrated track album")
	}
	return nil
}

// fatal reports whether err must end the handler rather than degrade one record.
func fatal(err error) bool {
	var terr *deezer.TransportError
	switch {
	case errors.Is(err, deezer.ErrOAuth), errors.Is(err, deezer.ErrQuota), errors.Is(err, deezer.ErrTimeout):
		return true
	case errors.As(err, &terr):
		return true
	default:
		return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	}
}

// trackList fetches a track listing, completing tracks that lack their album.
func trackList(ctx context.Context, env *Env, service, id, method string, params *query.Values) (view.List, error) {
	var tracks catalog.List[catalog.Track]
	if err := fetch(ctx, env, &tracks, service, id, method, params); err != nil {
		return view.List{}, err
	}
	if err := hydrate(ctx, env, tracks.Data); err != nil {
		return view.List{}, err
	}
	return view.Tracks(tracks), nil
}
