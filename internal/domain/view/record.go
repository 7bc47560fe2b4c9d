// Package view turns catalog records into display records the host can list.
package view

import (
	"github.com/edumarques81/stellar-deezer/internal/transport/query"
)

// Art holds the artwork of a record.
type Art struct {
	Thumb string `json:"thumb,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

// MusicInfo is the metadata shown next to a song or an album.
type MusicInfo struct {
	Title     string `json:"title,omitempty"`
	Duration  int    `json:"duration,omitempty"` // seconds
	Album     string `json:"album,omitempty"`
	Artist    string `json:"artist,omitempty"`
	Date      string `json:"date,omitempty"` // DD.MM.YYYY
	Year      int    `json:"year,omitempty"`
	MediaType string `json:"mediatype,omitempty"`
}

// Record is one displayable entry. Target is the query that navigates to it.
type Record struct {
	Target   *query.Values
	Label    string
	IsDir    bool
	Art      Art
	Info     *MusicInfo
	Playable bool
}

// NewRecord builds a record that navigates to path.
func NewRecord(path, label string, isDir bool) Record {
	return Record{
		Target: query.New("path", path),
		Label:  label,
		IsDir:  isDir,
	}
}

// Dir builds a directory record that navigates to path.
func Dir(path, label string) Record {
	return NewRecord(path, label, true)
}

// WithIcon returns the record with its icon set.
func (r Record) WithIcon(path string) Record {
	r.Art.Icon = path
	return r
}

// Path returns the virtual path the record navigates to.
func (r Record) Path() string {
	return r.Target.Get("path")
}

// URL is the plugin URL of the record: base, "?" and the encoded target.
func (r Record) URL(base string) string {
	return base + "?" + query.Encode(r.Target)
}
