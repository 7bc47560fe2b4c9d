// Package main is the entry point for the Stellar Deezer plugin. The host runs it once
// per navigation action:
//
//	stellar-deezer [flags] <base-url> <handle> <query>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/app"
	"github.com/edumarques81/stellar-deezer/internal/infra/deezer"
	"github.com/edumarques81/stellar-deezer/internal/infra/mpd"
	"github.com/edumarques81/stellar-deezer/internal/infra/session"
	"github.com/edumarques81/stellar-deezer/internal/infra/settings"
	"github.com/edumarques81/stellar-deezer/internal/transport/host"
	"github.com/edumarques81/stellar-deezer/internal/version"
)

const (
	outputConsole = "console"
	outputJSON    = "json"
)

type options struct {
	settingsPath string
	cacheDir     string
	resources    string
	output       string
	mpdHost      string
	mpdPort      int
	mpdPassword  string
	timeout      time.Duration
	debug        bool
	showVersion  bool
	argv         []string
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("stellar-deezer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.settingsPath, "settings", settings.DefaultPath(), "Settings file")
	fs.StringVar(&o.cacheDir, "cache-dir", defaultCacheDir(), "Directory holding the session cache")
	fs.StringVar(&o.resources, "resources", defaultResources(), "Plugin resources directory (icons)")
	fs.StringVar(&o.output, "output", outputConsole, "Listing output: console or json")
	fs.StringVar(&o.mpdHost, "mpd-host", "", "MPD host receiving resolved streams (disabled when empty)")
	fs.IntVar(&o.mpdPort, "mpd-port", 6600, "MPD port")
	fs.StringVar(&o.mpdPassword, "mpd-password", "", "MPD password")
	fs.DurationVar(&o.timeout, "timeout", 0, "Request timeout (overrides settings)")
	fs.BoolVar(&o.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.output != outputConsole && o.output != outputJSON {
		return o, fmt.Errorf("unknown output %q", o.output)
	}

	o.argv = fs.Args()
	if !o.showVersion && len(o.argv) < 3 {
		return o, fmt.Errorf("usage: stellar-deezer [flags] <base-url> <handle> <query>")
	}
	return o, nil
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "stellar-deezer")
	}
	return filepath.Join(dir, "stellar-deezer")
}

func defaultResources() string {
	exe, err := os.Executable()
	if err != nil {
		return "resources"
	}
	return filepath.Join(filepath.Dir(exe), "resources")
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	// stdout carries the listing
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Str("run", uuid.NewString()).Logger()
}

func newHost(o options, handle int, store *settings.Store, player host.Player) host.Host {
	if o.output == outputJSON {
		return host.NewJSON(os.Stdout, handle, player)
	}

	opts := []host.ConsoleOption{host.WithSettings(store)}
	if player != nil {
		opts = append(opts, host.WithPlayer(player))
	}
	return host.NewConsole(os.Stdout, os.Stdin, opts...)
}

func clientOptions(o options, st settings.Settings) []deezer.Option {
	timeout := st.RequestTimeout()
	if o.timeout > 0 {
		timeout = o.timeout
	}
	return []deezer.Option{
		deezer.WithTimeout(timeout),
		deezer.WithDevice(st.Device),
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	o, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if o.showVersion {
		fmt.Println(version.GetInfo().String())
		return 0
	}

	store := settings.NewStore(o.settingsPath)
	st, err := store.Load()
	setupLogging(o.debug || st.Debug)
	if err != nil {
		log.Warn().Err(err).Msg("Using default settings")
	}

	log.Info().Msgf("%s", version.GetInfo().String())

	args, err := app.NewArguments(o.argv)
	if err != nil {
		log.Error().Err(err).Msg("Invalid invocation")
		return 2
	}

	log.Debug().
		Str("cache_dir", o.cacheDir).
		Str("resources", o.resources).
		Str("output", o.output).
		Str("mpd_host", o.mpdHost).
		Bool("password_set", o.mpdPassword != "").
		Msg("Configuration")

	var player host.Player
	if o.mpdHost != "" {
		mpdClient := mpd.NewClient(o.mpdHost, o.mpdPort, o.mpdPassword)
		defer mpdClient.Close()
		player = mpdClient
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(app.Config{
		Args:      args,
		Host:      newHost(o, args.Handle, store, player),
		Cache:     session.InDir(o.cacheDir),
		Settings:  store,
		Client:    deezer.NewClient(clientOptions(o, st)...),
		Resources: o.resources,
	})

	if err := application.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Run failed")
		return 1
	}
	return 0
}
