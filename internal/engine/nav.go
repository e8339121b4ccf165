package engine

import (
	"slices"

	"github.com/pkg/errors"
)

var ErrNoRoute = errors.New("no route")

// routes is the static navigation graph: Home fans out; everything else goes back.
var routes = map[Route][]Route{
	RouteHome:    {RouteStories, RouteGames},
	RouteStories: {RouteHome},
	RouteGames:   {RouteHome},
}

// Navigator tracks the active route. History is one level deep.
type Navigator struct {
	current Route
	prev    []Route
}

// NewNavigator starts at Home.
func NewNavigator() *Navigator { return &Navigator{current: RouteHome} }

func (n *Navigator) Current() Route { return n.current }

// Edges lists the routes reachable from from.
func Edges(from Route) []Route { return slices.Clone(routes[from]) }

// CanGo reports whether a forward edge exists from the current route.
func (n *Navigator) CanGo(to Route) bool {
	return to != RouteHome && slices.Contains(routes[n.current], to)
}

// Go follows a forward edge.
func (n *Navigator) Go(to Route) error {
	if !n.CanGo(to) {
		return errors.Wrapf(ErrNoRoute, "%s -> %s", n.current, to)
	}
	n.prev = append(n.prev, n.current)
	n.current = to
	return nil
}

// CanBack reports whether there is somewhere to go back to.
func (n *Navigator) CanBack() bool { return len(n.prev) > 0 }

// Back returns to the previous route.
func (n *Navigator) Back() error {
	if !n.CanBack() {
		return errors.Wrapf(ErrNoRoute, "back from %s", n.current)
	}
	n.current = n.prev[len(n.prev)-1]
	n.prev = n.prev[:len(n.prev)-1]
	return nil
}
