package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/edumarques81/stellar-deezer/internal/domain/catalog"
)

func TestTrack(t *testing.T) {
	tr := catalog.Track{
		ID:       "42",
		Title:    "One More Time",
		Duration: 320,
		TimeAdd:  1500000000,
		Album:    &catalog.AlbumRef{Title: "Discovery", CoverSmall: "s.jpg", CoverBig: "b.jpg"},
		Artist:   &catalog.ArtistRef{Name: "Daft Punk"},
	}

	r := Track(tr)

	if r.Path() != "/tracks/42/play" {
		t.Errorf("Path() = %q", r.Path())
	}
	if r.IsDir {
		t.Error("track must not be a directory")
	}
	if !r.Playable {
		t.Error("track must be playable")
	}
	if r.Label != "One More Time" {
		t.Errorf("Label = %q", r.Label)
	}
	if r.Art.Thumb != "b.jpg" || r.Art.Icon != "s.jpg" {
		t.Errorf("Art = %+v", r.Art)
	}

	want := MusicInfo{
		Title:     "One More Time",
		Duration:  320,
		Album:     "Discovery",
		Artist:    "Daft Punk",
		Date:      time.Unix(1500000000, 0).Format(DateLayout),
		MediaType: MediaTypeSong,
	}
	if r.Info == nil || *r.Info != want {
		t.Errorf("Info = %+v, want %+v", r.Info, want)
	}
}

func TestTrackMissingOptionalFields(t *testing.T) {
	r := Track(catalog.Track{ID: "7", Title: "Bare"})

	if r.Info.Album != "" || r.Info.Artist != "" || r.Info.Date != "" {
		t.Errorf("Info = %+v, optional fields should be empty", r.Info)
	}
	if r.Art != (Art{}) {
		t.Errorf("Art = %+v, want empty", r.Art)
	}
}

func TestDirectoryMappers(t *testing.T) {
	tests := []struct {
		name      string
		record    Record
		wantPath  string
		wantLabel string
		wantArt   Art
	}{
		{
			name:      "album",
			record:    Album(catalog.Album{ID: "302127", Title: "Discovery", CoverSmall: "s", CoverBig: "b"}),
			wantPath:  "/albums/302127",
			wantLabel: "Discovery",
			wantArt:   Art{Thumb: "b", Icon: "s"},
		},
		{
			name:      "artist",
			record:    Artist(catalog.Artist{ID: "27", Name: "Daft Punk", PictureSmall: "s", PictureBig: "b"}),
			wantPath:  "/artists/27",
			wantLabel: "Daft Punk",
			wantArt:   Art{Thumb: "b", Icon: "s"},
		},
		{
			name:      "playlist",
			record:    Playlist(catalog.Playlist{ID: "908622995", Title: "Flow", PictureSmall: "s", PictureBig: "b"}),
			wantPath:  "/playlists/908622995",
			wantLabel: "Flow",
			wantArt:   Art{Thumb: "b", Icon: "s"},
		},
		{
			name:      "user",
			record:    User(catalog.User{ID: "5", Name: "Alice"}),
			wantPath:  "/family/5",
			wantLabel: "Alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.record.IsDir {
				t.Error("expected a directory")
			}
			if tt.record.Playable {
				t.Error("directories are not playable")
			}
			if tt.record.Path() != tt.wantPath {
				t.Errorf("Path() = %q, want %q", tt.record.Path(), tt.wantPath)
			}
			if tt.record.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", tt.record.Label, tt.wantLabel)
			}
			if tt.record.Art != tt.wantArt {
				t.Errorf("Art = %+v, want %+v", tt.record.Art, tt.wantArt)
			}
		})
	}
}

func TestRecordURL(t *testing.T) {
	r := Dir("/family/1", "Alice")
	if got := r.URL("plugin://plugin.audio.deezer/"); got != "plugin://plugin.audio.deezer/?path=%2Ffamily%2F1" {
		t.Errorf("URL() = %q", got)
	}
}

func TestWithIcon(t *testing.T) {
	base := Dir("/search", "Search")
	r := base.WithIcon("/res/icons/search.png")

	if r.Art.Icon != "/res/icons/search.png" {
		t.Errorf("Icon = %q", r.Art.Icon)
	}
	if base.Art.Icon != "" {
		t.Error("WithIcon must not modify the receiver")
	}
}

func TestListContentType(t *testing.T) {
	var tracks catalog.List[catalog.Track]
	if err := json.Unmarshal([]byte(`[{"id":1,"title":"a"},{"id":2,"title":"b"}]`), &tracks); err != nil {
		t.Fatal(err)
	}
	var albums catalog.List[catalog.Album]
	if err := json.Unmarshal([]byte(`{"data":[{"id":1,"title":"a"}]}`), &albums); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		list     List
		want     string
		wantLen  int
		wantMenu bool
	}{
		{"tracks", Tracks(tracks), ContentSongs, 2, false},
		{"empty tracks", Tracks(catalog.List[catalog.Track]{}), ContentSongs, 0, false},
		{"albums", Albums(albums), ContentNone, 1, false},
		{"artists", Artists(catalog.List[catalog.Artist]{}), ContentNone, 0, false},
		{"playlists", Playlists(catalog.List[catalog.Playlist]{}), ContentNone, 0, false},
		{"users", Users(catalog.List[catalog.User]{}), ContentNone, 0, false},
		{"menu", Menu(Dir("/a", "A")), ContentNone, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.list.ContentType != tt.want {
				t.Errorf("ContentType = %q, want %q", tt.list.ContentType, tt.want)
			}
			if tt.list.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", tt.list.Len(), tt.wantLen)
			}
			if tt.list.IsMenu != tt.wantMenu {
				t.Errorf("IsMenu = %v, want %v", tt.list.IsMenu, tt.wantMenu)
			}
		})
	}
}

func TestAlbumInfo(t *testing.T) {
	r := Album(catalog.Album{
		ID:          "302127",
		Title:       "Discovery",
		ReleaseDate: "2001-03-07",
		Artist:      &catalog.ArtistRef{Name: "Daft Punk"},
	})

	want := MusicInfo{
		Title:     "Discovery",
		Album:     "Discovery",
		Artist:    "Daft Punk",
		Date:      "07.03.2001",
		Year:      2001,
		MediaType: MediaTypeAlbum,
	}
	if r.Info == nil || *r.Info != want {
		t.Errorf("Info = %+v, want %+v", r.Info, want)
	}
	if r.Playable {
		t.Error("albums are not playable")
	}
}

func TestAlbumInfoWithoutRelease(t *testing.T) {
	r := Album(catalog.Album{ID: "1", Title: "Untitled"})

	if r.Info == nil || r.Info.Date != "" || r.Info.Year != 0 || r.Info.Artist != "" {
		t.Errorf("Info = %+v, release fields should be empty", r.Info)
	}
}
