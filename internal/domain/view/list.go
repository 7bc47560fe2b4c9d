package view

import "github.com/edumarques81/stellar-deezer/internal/domain/catalog"

// List is a listing of records. ContentType depends only on the mapper that built it.
type List struct {
	ContentType string
	Records     []Record
	IsMenu      bool // hand-built; no content type is hinted
}

// Menu wraps hand-built records, e.g. a navigation menu.
func Menu(records ...Record) List {
	return List{ContentType: ContentNone, Records: records, IsMenu: true}
}

// Len returns the number of records.
func (l List) Len() int {
	return len(l.Records)
}

func mapAll[T any](items catalog.List[T], contentType string, fn func(T) Record) List {
	records := make([]Record, 0, len(items.Data))
	for _, item := range items.Data {
		records = append(records, fn(item))
	}
	return List{ContentType: contentType, Records: records}
}

// Tracks maps tracks to a song listing.
func Tracks(items catalog.List[catalog.Track]) List {
	return mapAll(items, ContentSongs, Track)
}

// Albums maps albums.
func Albums(items catalog.List[catalog.Album]) List {
	return mapAll(items, ContentNone, Album)
}

// Artists maps artists.
func Artists(items catalog.List[catalog.Artist]) List {
	return mapAll(items, ContentNone, Artist)
}

// Playlists maps playlists.
func Playlists(items catalog.List[catalog.Playlist]) List {
	return mapAll(items, ContentNone, Playlist)
}

// Users maps users.
func Users(items catalog.List[catalog.User]) List {
	return mapAll(items, ContentNone, User)
}
