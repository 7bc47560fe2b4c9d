package actions

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/domain/catalog"
	"github.com/edumarques81/stellar-deezer/internal/domain/view"
	"github.com/edumarques81/stellar-deezer/internal/transport/query"
	"github.com/edumarques81/stellar-deezer/internal/transport/router"
)

// Search kinds, as named by the search endpoint.
const (
	searchTrack  = "track"
	searchAlbum  = "album"
	searchArtist = "artist"
)

// SearchIndex is the search menu.
func SearchIndex(_ context.Context, env *Env, _ router.Params) (view.List, error) {
	icon := env.Icon("search")
	return view.Menu(
		view.Dir("/search/tracks", "Search tracks").WithIcon(icon),
		view.Dir("/search/albums", "Search albums").WithIcon(icon),
		view.Dir("/search/artists", "Search artists").WithIcon(icon),
	), nil
}

// searchQuery returns the q argument, or asks the user. ok is false when there is
// nothing to search for.
func searchQuery(env *Env, kind string) (string, bool) {
	q := strings.TrimSpace(env.Args.Get("q"))
	if q == "" {
		input, ok := env.Host.Input("Search")
		if !ok {
			log.Debug().Str("kind", kind).Msg("Search canceled")
			return "", false
		}
		q = strings.TrimSpace(input)
	}
	if q == "" {
		log.Debug().Str("kind", kind).Msg("Search canceled")
		return "", false
	}

	log.Info().Str("kind", kind).Str("query", q).Msg("Searching")
	return q, true
}

// SearchTracks searches tracks.
func SearchTracks(ctx context.Context, env *Env, _ router.Params) (view.List, error) {
	q, ok := searchQuery(env, searchTrack)
	if !ok {
		return view.Menu(), nil
	}
	return trackList(ctx, env, "search", searchTrack, "", query.New("q", q))
}

// SearchAlbums searches albums.
func SearchAlbums(ctx context.Context, env *Env, _ router.Params) (view.List, error) {
	q, ok := searchQuery(env, searchAlbum)
	if !ok {
		return view.Menu(), nil
	}

	var albums catalog.List[catalog.Album]
	if err := fetch(ctx, env, &albums, "search", searchAlbum, "", query.New("q", q)); err != nil {
		return view.List{}, err
	}
	return view.Albums(albums), nil
}

// SearchArtists searches artists.
func SearchArtists(ctx context.Context, env *Env, _ router.Params) (view.List, error) {
	q, ok := searchQuery(env, searchArtist)
	if !ok {
		return view.Menu(), nil
	}

	var artists catalog.List[catalog.Artist]
	if err := fetch(ctx, env, &artists, "search", searchArtist, "", query.New("q", q)); err != nil {
		return view.List{}, err
	}
	return view.Artists(artists), nil
}
