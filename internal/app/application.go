// Package app runs one plugin invocation: it resolves a Deezer session, routes the
// requested path to its action and renders the result through the host.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/app/actions"
	"github.com/edumarques81/stellar-deezer/internal/domain/view"
	"github.com/edumarques81/stellar-deezer/internal/infra/deezer"
	"github.com/edumarques81/stellar-deezer/internal/infra/session"
	"github.com/edumarques81/stellar-deezer/internal/infra/settings"
	"github.com/edumarques81/stellar-deezer/internal/transport/host"
	"github.com/edumarques81/stellar-deezer/internal/version"
)

// MaxSessionRetries bounds how many times a run restarts after the session is
// rejected or credentials are missing.
const MaxSessionRetries = 2

const (
	errorHeader    = "Error"
	quotaMessage   = "Quota limit exceeded, please wait and retry."
	refreshMessage = "Refreshing token ..."
)

// SessionStore persists the session between invocations.
type SessionStore interface {
	Load() (*deezer.Session, error)
	Save(s *deezer.Session) error
	Clean() error
}

// SettingsSource provides the user's credentials.
type SettingsSource interface {
	Load() (settings.Settings, error)
}

// Config holds the collaborators of an Application.
type Config struct {
	Args      *Arguments
	Host      host.Host
	Cache     SessionStore
	Settings  SettingsSource
	Client    *deezer.Client
	Resources string
}

// Application is one invocation of the plugin.
type Application struct {
	args      *Arguments
	host      host.Host
	cache     SessionStore
	settings  SettingsSource
	client    *deezer.Client
	router    *actions.Router
	resources string
}

// New creates an application with every route loaded.
func New(cfg Config) *Application {
	return &Application{
		args:      cfg.Args,
		host:      cfg.Host,
		cache:     cfg.Cache,
		settings:  cfg.Settings,
		client:    cfg.Client,
		router:    actions.NewRouter(),
		resources: cfg.Resources,
	}
}

type state int

const (
	stateResolveSession state = iota
	stateRoute
	stateRender
	stateEnd
)

func (s state) String() string {
	switch s {
	case stateResolveSession:
		return "resolve_session"
	case stateRoute:
		return "route"
	case stateRender:
		return "render"
	default:
		return "end"
	}
}

// Run executes the invocation. The listing is always ended, unsuccessfully when Run
// returns an error.
func (a *Application) Run(ctx context.Context) error {
	log.Info().
		Str("version", version.Version).
		Str("path", a.args.Path()).
		Int("handle", a.args.Handle).
		Msg("Starting run")

	var (
		list     view.List
		restarts int
		st       = stateResolveSession
	)

	for {
		log.Debug().Stringer("state", st).Msg("Entering state")

		switch st {
		case stateResolveSession:
			if err := a.resolveSession(ctx); err != nil {
				a.fail(err)
				return err
			}
			st = stateRoute

		case stateRoute:
			result, err := a.route(ctx)
			if err == nil {
				list = result
				st = stateRender
				continue
			}

			restart, err := a.handleRouteError(err, restarts)
			if err != nil {
				return err
			}
			if restart {
				restarts++
				st = stateResolveSession
				continue
			}
			list = view.List{}
			st = stateRender

		case stateRender:
			a.render(list)
			st = stateEnd

		case stateEnd:
			a.saveSession()
			return nil
		}
	}
}

// resolveSession adopts the cached session or authenticates with the stored
// credentials, asking the user for them when they are missing.
func (a *Application) resolveSession(ctx context.Context) error {
	s, err := a.cache.Load()
	if err == nil {
		a.client.SetSession(s)
		return nil
	}
	if !errors.Is(err, session.ErrNotFound) {
		log.Warn().Err(err).Msg("Session cache unusable")
	} else {
		log.Info().Msg("No cached session, authenticating")
	}

	for attempt := 0; attempt <= MaxSessionRetries; attempt++ {
		st := a.loadSettings()
		if !st.HasCredentials() {
			if err := a.host.OpenSettings(); err != nil {
				return fmt.Errorf("open settings: %w", err)
			}
			st = a.loadSettings()
		}

		s, err := a.client.Authenticate(ctx, st.Credentials())
		switch {
		case err == nil:
			if err := a.cache.Save(s); err != nil {
				log.Warn().Err(err).Msg("Failed to save session")
			}
			return nil
		case errors.Is(err, deezer.ErrQuota):
			log.Error().Err(err).Msg("Cannot get token from API")
			a.host.Alert(errorHeader, quotaMessage)
			return err
		case errors.Is(err, deezer.ErrEmptyCredentials):
			log.Warn().Int("attempt", attempt+1).Msg("Credentials still missing")
		default:
			return err
		}
	}

	return deezer.ErrEmptyCredentials
}

func (a *Application) loadSettings() settings.Settings {
	st, err := a.settings.Load()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load settings")
	}
	return st
}

func (a *Application) route(ctx context.Context) (view.List, error) {
	path := a.args.Path()
	env := &actions.Env{
		Client:    a.client,
		Host:      a.host,
		Args:      a.args,
		Resources: a.resources,
	}

	list, ok, err := a.router.Route(ctx, path, env)
	if err != nil {
		return view.List{}, err
	}
	if !ok {
		log.Warn().Str("path", path).Msg("Nothing to show")
		return view.List{}, nil
	}
	return list, nil
}

// handleRouteError decides what a routing error leads to. It returns true to restart
// from session resolution, false with a nil error to render an empty listing, and the
// error when the run fails.
func (a *Application) handleRouteError(err error, restarts int) (bool, error) {
	var apiErr *deezer.APIError

	switch {
	case errors.Is(err, deezer.ErrOAuth), errors.Is(err, deezer.ErrEmptyCredentials):
		if restarts >= MaxSessionRetries {
			log.Error().Err(err).Int("restarts", restarts).Msg("Giving up on session")
			if errors.Is(err, deezer.ErrOAuth) {
				a.cleanSession()
			}
			a.fail(err)
			return false, err
		}

		if errors.Is(err, deezer.ErrOAuth) {
			header := errorHeader
			if errors.As(err, &apiErr) {
				header = apiErr.Header()
			}
			a.host.Notify(header, refreshMessage, host.LevelInfo)
		} else if serr := a.host.OpenSettings(); serr != nil {
			a.fail(serr)
			return false, fmt.Errorf("open settings: %w", serr)
		}

		a.cleanSession()
		return true, nil

	case errors.As(err, &apiErr):
		log.Warn().Err(err).Msg("API error")
		a.host.Alert(apiErr.Header(), apiErr.Message)
		return false, nil

	default:
		a.fail(err)
		return false, err
	}
}

// fail reports an error the run cannot recover from and ends the listing.
func (a *Application) fail(err error) {
	log.Error().Err(err).Msg("Run failed")

	var apiErr *deezer.APIError
	switch {
	case errors.Is(err, deezer.ErrQuota):
		// Already shown.
	case errors.As(err, &apiErr):
		a.host.Alert(apiErr.Header(), apiErr.Message)
	default:
		a.host.Notify(errorHeader, err.Error(), host.LevelError)
	}
	a.host.EndOfDirectory(false)
}

func (a *Application) render(list view.List) {
	log.Debug().Str("content", list.ContentType).Int("items", list.Len()).Msg("Rendering listing")

	if !list.IsMenu {
		a.host.SetContent(list.ContentType)
	}
	a.host.AddItems(host.Items(a.args.BaseURL, list.Records))
	a.host.EndOfDirectory(true)
}

// cleanSession forgets a session the API rejected.
func (a *Application) cleanSession() {
	if err := a.cache.Clean(); err != nil {
		log.Warn().Err(err).Msg("Failed to clean session cache")
	}
	a.client.SetSession(nil)
}

func (a *Application) saveSession() {
	s := a.client.Session()
	if !s.Valid() {
		return
	}
	if err := a.cache.Save(s); err != nil {
		log.Warn().Err(err).Msg("Failed to save session")
	}
}
