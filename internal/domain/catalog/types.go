// Package catalog holds typed Deezer records. Fields missing from a response keep
// their zero value; nothing is looked up dynamically.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID is a Deezer identifier. The API sends numbers; "me" and cursor-provided ids may
// arrive as strings, so both are accepted.
type ID string

// UnmarshalJSON accepts a JSON number or string.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// AlbumRef is the album sub-object embedded in tracks.
type AlbumRef struct {
	ID         ID     `json:"id"`
	Title      string `json:"title"`
	CoverSmall string `json:"cover_small"`
	CoverBig   string `json:"cover_big"`
}

// ArtistRef is the artist sub-object embedded in tracks and albums.
type ArtistRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Track is a Deezer track.
type Track struct {
	ID       ID         `json:"id"`
	Title    string     `json:"title"`
	Duration int        `json:"duration"`           // seconds
	TimeAdd  int64      `json:"time_add,omitempty"` // unix seconds, set in favorites and playlists
	Album    *AlbumRef  `json:"album,omitempty"`
	Artist   *ArtistRef `json:"artist,omitempty"`
}

// AddedAt returns when the track was added to the list, if known.
func (t Track) AddedAt() (time.Time, bool) {
	if t.TimeAdd <= 0 {
		return time.Time{}, false
	}
	return time.Unix(t.TimeAdd, 0), true
}

// HasAlbum reports whether the album sub-object is present.
func (t Track) HasAlbum() bool {
	return t.Album != nil
}

// Merge fills fields missing from t with values from full, typically the same track
// fetched by id.
func (t *Track) Merge(full Track) {
	if t.Title == "" {
		t.Title = full.Title
	}
	if t.Duration == 0 {
		t.Duration = full.Duration
	}
	if t.TimeAdd == 0 {
		t.TimeAdd = full.TimeAdd
	}
	if t.Album == nil {
		t.Album = full.Album
	}
	if t.Artist == nil {
		t.Artist = full.Artist
	}
}

// Album is a Deezer album.
type Album struct {
	ID          ID          `json:"id"`
	Title       string      `json:"title"`
	CoverSmall  string      `json:"cover_small"`
	CoverBig    string      `json:"cover_big"`
	ReleaseDate string      `json:"release_date,omitempty"` // YYYY-MM-DD
	Artist      *ArtistRef  `json:"artist,omitempty"`
	Tracks      List[Track] `json:"tracks"`
}

// Ref returns the album as embedded in tracks.
func (a Album) Ref() *AlbumRef {
	return &AlbumRef{
		ID:         a.ID,
		Title:      a.Title,
		CoverSmall: a.CoverSmall,
		CoverBig:   a.CoverBig,
	}
}

// BackfillTracks gives every track without an embedded album this album's title and
// covers. Album endpoints list their tracks without that sub-object.
func (a *Album) BackfillTracks() {
	for i := range a.Tracks.Data {
		if a.Tracks.Data[i].Album == nil {
			a.Tracks.Data[i].Album = a.Ref()
		}
	}
}

// ReleaseLayout is the layout of Album.ReleaseDate.
const ReleaseLayout = "2006-01-02"

// Released returns the release date, if known.
func (a Album) Released() (time.Time, bool) {
	d, err := time.Parse(ReleaseLayout, a.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Year returns the release year, or 0 when unknown.
func (a Album) Year() int {
	if len(a.ReleaseDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(a.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// Artist is a Deezer artist.
type Artist struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	PictureSmall string `json:"picture_small"`
	PictureBig   string `json:"picture_big"`
}

// Playlist is a Deezer playlist.
type Playlist struct {
	ID           ID          `json:"id"`
	Title        string      `json:"title"`
	PictureSmall string      `json:"picture_small"`
	PictureBig   string      `json:"picture_big"`
	Tracks       List[Track] `json:"tracks"`
}

// User is a Deezer user profile, e.g. a family member.
type User struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// List is either a bare JSON array or a {"data": [...]} envelope.
type List[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total,omitempty"`
}

// UnmarshalJSON accepts both shapes.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		l.Data = items
		l.Total = len(items)
		return nil
	}

	var envelope struct {
		Data  []T `json:"data"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(b, &envelope); err != nil {
		return err
	}
	l.Data = envelope.Data
	l.Total = envelope.Total
	return nil
}
