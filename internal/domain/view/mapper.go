package view

import (
	"github.com/edumarques81/stellar-deezer/internal/domain/catalog"
	"github.com/edumarques81/stellar-deezer/internal/transport/query"
)

// DateLayout formats the date a track was added to a list.
const DateLayout = "02.01.2006"

// Content types hinted to the host for each kind of list.
const (
	ContentSongs = "songs"
	ContentNone  = ""
)

// Media types of record metadata.
const (
	MediaTypeSong  = "song"
	MediaTypeAlbum = "album"
)

// Track maps a track to a playable record.
func Track(t catalog.Track) Record {
	r := NewRecord(query.Path("tracks", t.ID, "play"), t.Title, false)
	r.Playable = true

	info := &MusicInfo{
		Title:     t.Title,
		Duration:  t.Duration,
		MediaType: MediaTypeSong,
	}
	if t.Album != nil {
		info.Album = t.Album.Title
		r.Art = Art{Thumb: t.Album.CoverBig, Icon: t.Album.CoverSmall}
	}
	if t.Artist != nil {
		info.Artist = t.Artist.Name
	}
	if added, ok := t.AddedAt(); ok {
		info.Date = added.Format(DateLayout)
	}
	r.Info = info

	return r
}

// Album maps an album to a directory of its tracks. The release date and the album
// artist are shown when the listing carries them.
func Album(a catalog.Album) Record {
	r := Dir(query.Path("albums", a.ID), a.Title)
	r.Art = Art{Thumb: a.CoverBig, Icon: a.CoverSmall}

	info := &MusicInfo{
		Title:     a.Title,
		Album:     a.Title,
		Year:      a.Year(),
		MediaType: MediaTypeAlbum,
	}
	if a.Artist != nil {
		info.Artist = a.Artist.Name
	}
	if released, ok := a.Released(); ok {
		info.Date = released.Format(DateLayout)
	}
	r.Info = info

	return r
}

// Artist maps an artist to its menu.
func Artist(a catalog.Artist) Record {
	r := Dir(query.Path("artists", a.ID), a.Name)
	r.Art = Art{Thumb: a.PictureBig, Icon: a.PictureSmall}
	return r
}

// Playlist maps a playlist to a directory of its tracks.
func Playlist(p catalog.Playlist) Record {
	r := Dir(query.Path("playlists", p.ID), p.Title)
	r.Art = Art{Thumb: p.PictureBig, Icon: p.PictureSmall}
	return r
}

// User maps a user to its family profile.
func User(u catalog.User) Record {
	return Dir(query.Path("family", u.ID), u.Name)
}
