package demo

import (
	"context"
	stderrors "errors"

	"github.com/go-drift/hookslab/pkg/core"
	"github.com/go-drift/hookslab/pkg/request"
	"github.com/go-drift/hookslab/pkg/swapi"
	"github.com/go-drift/hookslab/pkg/widgets"
)

// ErrNoPlanetSource is the failure PlanetInfo shows when no source is provided.
var ErrNoPlanetSource = stderrors.New("demo: no planet source provided")

// PlanetsContext provides the source PlanetInfo reads from.
var PlanetsContext = core.NewContext[swapi.PlanetSource](nil)

// UsePlanetInfo fetches planet id from source. The request callback is
// memoized on id and source, so it only restarts when one of them changes.
func UsePlanetInfo(c *core.BuildContext, source swapi.PlanetSource, id int) request.State[swapi.Planet] {
	cb := core.UseCallback(c, func(ctx context.Context) (swapi.Planet, error) {
		if source == nil {
			return swapi.Planet{}, ErrNoPlanetSource
		}
		return source.Planet(ctx, id)
	}, core.Deps(id, source))
	return request.UseRequest(c, cb)
}

// PlanetInfo shows the name of planet id, a loading line while it is in
// flight or a generic failure message.
func PlanetInfo(id int) core.Widget {
	return core.Func("PlanetInfo", func(c *core.BuildContext) core.Widget {
		source := core.UseContext(c, PlanetsContext)
		state := UsePlanetInfo(c, source, id)

		switch {
		case state.IsError():
			return widgets.TextOf("Something is wrong")
		case state.IsLoading():
			return widgets.TextOf("loading...")
		default:
			return widgets.TextOf("Planet Name: " + state.Data.Name)
		}
	})
}
