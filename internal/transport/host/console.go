package host

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/infra/settings"
)

// Palette colors for the console host.
const (
	colorAccent  = "#A238FF"
	colorMuted   = "#7C7C8A"
	colorSuccess = "#50FA7B"
	colorWarning = "#F1FA8C"
	colorDanger  = "#FF5555"
)

type consoleStyles struct {
	Header  lipgloss.Style
	Dir     lipgloss.Style
	Song    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Alert   lipgloss.Style
}

func newConsoleStyles() consoleStyles {
	return consoleStyles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent)),
		Dir:     lipgloss.NewStyle().Bold(true),
		Song:    lipgloss.NewStyle(),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorDanger)),
		Alert: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorDanger)).
			Padding(0, 1),
	}
}

// Console is a terminal host: listings on out, prompts read from in.
type Console struct {
	out      io.Writer
	in       *bufio.Reader
	settings *settings.Store
	player   Player
	styles   consoleStyles

	contentType string
	count       int
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithSettings lets OpenSettings edit store.
func WithSettings(store *settings.Store) ConsoleOption {
	return func(c *Console) {
		c.settings = store
	}
}

// WithPlayer forwards resolved stream URLs to p.
func WithPlayer(p Player) ConsoleOption {
	return func(c *Console) {
		c.player = p
	}
}

// NewConsole creates a console host.
func NewConsole(out io.Writer, in io.Reader, opts ...ConsoleOption) *Console {
	c := &Console{
		out:    out,
		in:     bufio.NewReader(in),
		styles: newConsoleStyles(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) SetContent(contentType string) {
	c.contentType = contentType
}

func (c *Console) AddItems(items []Item) {
	for _, item := range items {
		c.count++
		fmt.Fprintln(c.out, c.renderItem(item))
	}
}

func (c *Console) renderItem(item Item) string {
	var b strings.Builder

	switch {
	case item.IsDir:
		b.WriteString(c.styles.Dir.Render("▸ " + item.Label))
	case item.Playable:
		b.WriteString(c.styles.Song.Render("♪ " + item.Label))
	default:
		b.WriteString(c.styles.Song.Render("  " + item.Label))
	}

	if info := item.Info; info != nil {
		var meta []string
		if info.Artist != "" {
			meta = append(meta, info.Artist)
		}
		if info.Album != "" && info.Album != item.Label {
			meta = append(meta, info.Album)
		}
		if info.Duration > 0 {
			meta = append(meta, fmt.Sprintf("%d:%02d", info.Duration/60, info.Duration%60))
		}
		switch {
		case info.Date != "":
			meta = append(meta, info.Date)
		case info.Year > 0:
			meta = append(meta, strconv.Itoa(info.Year))
		}
		if len(meta) > 0 {
			b.WriteString(c.styles.Muted.Render("  " + strings.Join(meta, " · ")))
		}
	}

	b.WriteString("\n  ")
	b.WriteString(c.styles.Muted.Render(item.URL))
	return b.String()
}

func (c *Console) EndOfDirectory(ok bool) {
	footer := fmt.Sprintf("%d items", c.count)
	if c.contentType != "" {
		footer += " (" + c.contentType + ")"
	}
	if !ok {
		fmt.Fprintln(c.out, c.styles.Danger.Render("listing failed"))
		return
	}
	fmt.Fprintln(c.out, c.styles.Muted.Render(footer))
}

func (c *Console) Resolve(ok bool, url string) {
	if !ok {
		fmt.Fprintln(c.out, c.styles.Danger.Render("✗ playback unavailable"))
		return
	}

	fmt.Fprintln(c.out, c.styles.Success.Render("▶ "+url))
	if c.player == nil {
		return
	}
	if err := c.player.PlayURL(url); err != nil {
		log.Error().Err(err).Msg("Player rejected stream")
		c.Notify("Playback", err.Error(), LevelError)
		return
	}

	np, ok := c.player.(NowPlayer)
	if !ok {
		return
	}
	song, err := np.NowPlaying()
	if err != nil {
		log.Debug().Err(err).Msg("Current song unknown")
		return
	}
	fmt.Fprintln(c.out, c.styles.Muted.Render("♫ "+song))
}

func (c *Console) Notify(header, msg string, level Level) {
	style := c.styles.Muted
	switch level {
	case LevelWarning:
		style = c.styles.Warning
	case LevelError:
		style = c.styles.Danger
	}
	fmt.Fprintln(c.out, style.Render(fmt.Sprintf("[%s] %s: %s", level, header, msg)))
}

func (c *Console) Alert(header, msg string) {
	body := c.styles.Header.Render(header) + "\n" + msg
	fmt.Fprintln(c.out, c.styles.Alert.Render(body))
}

func (c *Console) Input(heading string) (string, bool) {
	fmt.Fprint(c.out, c.styles.Header.Render(heading)+": ")
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimSpace(line), true
}

// OpenSettings prompts for credentials and saves them. An empty answer keeps the
// current value.
func (c *Console) OpenSettings() error {
	if c.settings == nil {
		return ErrNotInteractive
	}

	current, err := c.settings.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring unreadable settings")
	}

	username, ok := c.Input(fmt.Sprintf("Username [%s]", current.Username))
	if !ok {
		return ErrNotInteractive
	}
	if username != "" {
		current.Username = username
	}

	password, ok := c.Input("Password")
	if !ok {
		return ErrNotInteractive
	}
	if password != "" {
		current.Password = password
	}

	return c.settings.Save(current)
}
