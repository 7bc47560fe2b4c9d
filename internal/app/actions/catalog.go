package actions

import (
	"context"

	"github.com/edumarques81/stellar-deezer/internal/domain/catalog"
	"github.com/edumarques81/stellar-deezer/internal/domain/view"
	"github.com/edumarques81/stellar-deezer/internal/transport/query"
	"github.com/edumarques81/stellar-deezer/internal/transport/router"
)

// PlaylistShow lists a playlist's tracks. playlist/{id} is requested instead of
// playlist/{id}/tracks because its track entries are lighter.
func PlaylistShow(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	var playlist catalog.Playlist
	if err := fetch(ctx, env, &playlist, "playlist", p.Get(paramID), "", nil); err != nil {
		return view.List{}, err
	}
	if err := hydrate(ctx, env, playlist.Tracks.Data); err != nil {
		return view.List{}, err
	}
	return view.Tracks(playlist.Tracks), nil
}

// AlbumShow lists an album's tracks with the album's title and covers.
func AlbumShow(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	var album catalog.Album
	if err := fetch(ctx, env, &album, "album", p.Get(paramID), "", nil); err != nil {
		return view.List{}, err
	}
	album.BackfillTracks()
	return view.Tracks(album.Tracks), nil
}

// ArtistShow is the menu of an artist.
func ArtistShow(_ context.Context, env *Env, p router.Params) (view.List, error) {
	id := p.Get(paramID)
	return view.Menu(
		view.Dir(query.Path("artists", id, "top"), "Top").WithIcon(env.Icon("chart")),
		view.Dir(query.Path("artists", id, "albums"), "Albums").WithIcon(env.Icon("albums")),
	), nil
}

// ArtistTop lists an artist's top tracks.
func ArtistTop(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	return trackList(ctx, env, "artist", p.Get(paramID), "top", nil)
}

// ArtistAlbums lists an artist's albums.
func ArtistAlbums(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	var albums catalog.List[catalog.Album]
	if err := fetch(ctx, env, &albums, "artist", p.Get(paramID), "albums", nil); err != nil {
		return view.List{}, err
	}
	return view.Albums(albums), nil
}
