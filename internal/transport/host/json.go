package host

import (
	"encoding/json"
	"io"

	"github.com/rs/zerolog/log"
)

// Notice is a notification or alert recorded by the JSON host.
type Notice struct {
	Header  string `json:"header"`
	Message string `json:"message"`
	Level   Level  `json:"level"`
	Modal   bool   `json:"modal,omitempty"`
}

// Resolution is the answer to a playback request.
type Resolution struct {
	OK  bool   `json:"ok"`
	URL string `json:"url,omitempty"`
}

// Document is the full output of one run.
type Document struct {
	Handle      int         `json:"handle"`
	ContentType string      `json:"contentType"`
	Items       []Item      `json:"items"`
	OK          bool        `json:"ok"`
	Resolved    *Resolution `json:"resolved,omitempty"`
	Notices     []Notice    `json:"notices,omitempty"`
}

// JSON is a non-interactive host writing the run as one JSON document when the
// listing ends.
type JSON struct {
	out    io.Writer
	player Player
	doc    Document
}

// NewJSON creates a JSON host for the given listing handle.
func NewJSON(out io.Writer, handle int, player Player) *JSON {
	return &JSON{
		out:    out,
		player: player,
		doc:    Document{Handle: handle, Items: []Item{}},
	}
}

func (j *JSON) SetContent(contentType string) {
	j.doc.ContentType = contentType
}

func (j *JSON) AddItems(items []Item) {
	j.doc.Items = append(j.doc.Items, items...)
}

func (j *JSON) EndOfDirectory(ok bool) {
	j.doc.OK = ok

	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j.doc); err != nil {
		log.Error().Err(err).Msg("Failed to write listing")
	}
}

func (j *JSON) Resolve(ok bool, url string) {
	j.doc.Resolved = &Resolution{OK: ok, URL: url}
	if !ok || j.player == nil {
		return
	}
	if err := j.player.PlayURL(url); err != nil {
		log.Error().Err(err).Msg("Player rejected stream")
		j.Notify("Playback", err.Error(), LevelError)
	}
}

func (j *JSON) Notify(header, msg string, level Level) {
	j.doc.Notices = append(j.doc.Notices, Notice{Header: header, Message: msg, Level: level})
}

func (j *JSON) Alert(header, msg string) {
	j.doc.Notices = append(j.doc.Notices, Notice{Header: header, Message: msg, Level: LevelError, Modal: true})
}

func (j *JSON) Input(string) (string, bool) {
	return "", false
}

func (j *JSON) OpenSettings() error {
	return ErrNotInteractive
}

// Document returns what has been recorded so far.
func (j *JSON) Document() Document {
	return j.doc
}
