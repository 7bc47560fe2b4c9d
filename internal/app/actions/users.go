package actions

import (
	"context"

	"github.com/edumarques81/stellar-deezer/internal/domain/catalog"
	"github.com/edumarques81/stellar-deezer/internal/domain/view"
	"github.com/edumarques81/stellar-deezer/internal/transport/query"
	"github.com/edumarques81/stellar-deezer/internal/transport/router"
)

// FamilyIndex lists the family profiles. The API has no profile endpoint, so the
// main profile's followings stand in for them.
func FamilyIndex(ctx context.Context, env *Env, _ router.Params) (view.List, error) {
	var users catalog.List[catalog.User]
	if err := fetch(ctx, env, &users, "user", "me", "followings", nil); err != nil {
		return view.List{}, err
	}
	return view.Users(users), nil
}

// FamilyShow is the menu of one family profile. A profile's flow stays reachable by
// path but is not listed.
func FamilyShow(_ context.Context, env *Env, p router.Params) (view.List, error) {
	return view.Menu(userMenu(env, query.Path("family", p.Get(paramID)))...), nil
}

// PersonalIndex is the menu of the authenticated user.
func PersonalIndex(_ context.Context, env *Env, _ router.Params) (view.List, error) {
	records := append(userMenu(env, "/personal"), view.Dir("/personal/flow", "Flow"))
	return view.Menu(records...), nil
}

func userMenu(env *Env, base string) []view.Record {
	return []view.Record{
		view.Dir(query.Path(base, "playlists"), "Playlists").WithIcon(env.Icon("playlists")),
		view.Dir(query.Path(base, "albums"), "Albums").WithIcon(env.Icon("albums")),
		view.Dir(query.Path(base, "artists"), "Artists").WithIcon(env.Icon("artists")),
	}
}

// UserPlaylists lists a user's playlists.
func UserPlaylists(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	var playlists catalog.List[catalog.Playlist]
	if err := fetch(ctx, env, &playlists, "user", p.Get(paramID), "playlists", nil); err != nil {
		return view.List{}, err
	}
	return view.Playlists(playlists), nil
}

// UserAlbums lists a user's favorite albums.
func UserAlbums(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	var albums catalog.List[catalog.Album]
	if err := fetch(ctx, env, &albums, "user", p.Get(paramID), "albums", nil); err != nil {
		return view.List{}, err
	}
	return view.Albums(albums), nil
}

// UserArtists lists a user's favorite artists.
func UserArtists(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	var artists catalog.List[catalog.Artist]
	if err := fetch(ctx, env, &artists, "user", p.Get(paramID), "artists", nil); err != nil {
		return view.List{}, err
	}
	return view.Artists(artists), nil
}

// UserFlow lists a user's flow tracks.
func UserFlow(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	return trackList(ctx, env, "user", p.Get(paramID), "flow", nil)
}
