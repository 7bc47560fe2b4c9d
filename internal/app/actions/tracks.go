package actions

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/edumarques81/stellar-deezer/internal/domain/view"
	"github.com/edumarques81/stellar-deezer/internal/infra/deezer"
	"github.com/edumarques81/stellar-deezer/internal/transport/host"
	"github.com/edumarques81/stellar-deezer/internal/transport/router"
)

// TrackPlay resolves a track's stream and answers the host's playback request.
// The listing itself stays empty.
func TrackPlay(ctx context.Context, env *Env, p router.Params) (view.List, error) {
	id := p.Get(paramID)

	stream, err := env.Client.RequestStreaming(ctx, id, deezer.KindTrack)
	if err != nil {
		// A rejected session restarts the run, which asks for the stream again.
		if !errors.Is(err, deezer.ErrOAuth) && !errors.Is(err, deezer.ErrEmptyCredentials) {
			env.Host.Resolve(false, "")
		}
		return view.List{}, err
	}

	if stream.Playable() {
		log.Debug().Str("track", id).Msg("Playing track")
		env.Host.Resolve(true, stream.URL)
	} else {
		log.Warn().Str("track", id).Str("answer", stream.URL).Msg("Unplayable track")
		env.Host.Notify("Unplayable track", "Track "+id+" cannot be played.", host.LevelWarning)
		env.Host.Resolve(false, "")
	}

	return view.Menu(), nil
}
