package actions

import (
	"context"

	"github.com/edumarques81/stellar-deezer/internal/domain/view"
	"github.com/edumarques81/stellar-deezer/internal/transport/router"
)

// Home is the main menu.
func Home(_ context.Context, env *Env, _ router.Params) (view.List, error) {
	return view.Menu(
		view.Dir("/family", "Family"),
		view.Dir("/personal", "Personal"),
		view.Dir("/search", "Search").WithIcon(env.Icon("search")),
	), nil
}
