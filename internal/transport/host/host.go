// Package host defines what the plugin needs from the media center hosting it, with
// a terminal implementation and a JSON one for other frontends.
package host

import (
	"errors"

	"github.com/edumarques81/stellar-deezer/internal/domain/view"
)

// ErrNotInteractive is returned when a host cannot prompt the user.
var ErrNotInteractive = errors.New("host: not interactive")

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name. Unknown names read as LevelInfo.
func (l *Level) UnmarshalText(b []byte) error {
	switch string(b) {
	case "warning":
		*l = LevelWarning
	case "error":
		*l = LevelError
	default:
		*l = LevelInfo
	}
	return nil
}

// Item is one listing entry as handed to the host.
type Item struct {
	URL      string          `json:"url"`
	Label    string          `json:"label"`
	IsDir    bool            `json:"isDir"`
	Art      view.Art        `json:"art"`
	Info     *view.MusicInfo `json:"info,omitempty"`
	Playable bool            `json:"playable,omitempty"`
}

// NewItem converts a display record, resolving its target against the plugin base URL.
func NewItem(base string, r view.Record) Item {
	return Item{
		URL:      r.URL(base),
		Label:    r.Label,
		IsDir:    r.IsDir,
		Art:      r.Art,
		Info:     r.Info,
		Playable: r.Playable,
	}
}

// Items converts every record of a listing.
func Items(base string, records []view.Record) []Item {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, NewItem(base, r))
	}
	return items
}

// Host renders listings and talks to the user.
type Host interface {
	// SetContent hints how the listing should be displayed, e.g. "songs".
	SetContent(contentType string)
	AddItems(items []Item)
	// EndOfDirectory closes the listing. ok is false when the run failed.
	EndOfDirectory(ok bool)
	// Resolve answers a playback request with a stream URL.
	Resolve(ok bool, url string)
	// Notify shows a transient, non-blocking message.
	Notify(header, msg string, level Level)
	// Alert shows a blocking message.
	Alert(header, msg string)
	// Input prompts for text. ok is false when the user cancels.
	Input(heading string) (text string, ok bool)
	// OpenSettings lets the user edit the plugin settings.
	OpenSettings() error
}

// Player plays resolved stream URLs.
type Player interface {
	PlayURL(url string) error
}

// NowPlayer is implemented by players that can describe the current song.
type NowPlayer interface {
	NowPlaying() (string, error)
}
