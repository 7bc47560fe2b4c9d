// Package hosttest provides a recording host for tests.
package hosttest

import (
	"github.com/edumarques81/stellar-deezer/internal/transport/host"
)

// Notice is a recorded notification or alert.
type Notice struct {
	Header  string
	Message string
	Level   host.Level
}

// Resolution is a recorded playback answer.
type Resolution struct {
	OK  bool
	URL string
}

// Recorder is a host.Host that records every call. Inputs are answered from the
// Inputs queue; OpenSettings runs OnSettings when set.
type Recorder struct {
	ContentTypes []string
	Items        []host.Item
	Ends         []bool
	Resolutions  []Resolution
	Notices      []Notice
	Alerts       []Notice

	Inputs        []string
	Prompts       []string
	SettingsCalls int
	OnSettings    func() error
}

var _ host.Host = (*Recorder)(nil)

func (r *Recorder) SetContent(contentType string) {
	r.ContentTypes = append(r.ContentTypes, contentType)
}

func (r *Recorder) AddItems(items []host.Item) {
	r.Items = append(r.Items, items...)
}

func (r *Recorder) EndOfDirectory(ok bool) {
	r.Ends = append(r.Ends, ok)
}

func (r *Recorder) Resolve(ok bool, url string) {
	r.Resolutions = append(r.Resolutions, Resolution{OK: ok, URL: url})
}

func (r *Recorder) Notify(header, msg string, level host.Level) {
	r.Notices = append(r.Notices, Notice{Header: header, Message: msg, Level: level})
}

func (r *Recorder) Alert(header, msg string) {
	r.Alerts = append(r.Alerts, Notice{Header: header, Message: msg, Level: host.LevelError})
}

// Input pops the next queued answer. An empty queue cancels.
func (r *Recorder) Input(heading string) (string, bool) {
	r.Prompts = append(r.Prompts, heading)
	if len(r.Inputs) == 0 {
		return "", false
	}
	text := r.Inputs[0]
	r.Inputs = r.Inputs[1:]
	return text, true
}

func (r *Recorder) OpenSettings() error {
	r.SettingsCalls++
	if r.OnSettings != nil {
		return r.OnSettings()
	}
	return nil
}
