package engine

import (
	"fmt"
	"strings"
)

// Kind selects one of the two content catalogs.
type Kind int

const (
	KindStory Kind = iota
	KindGame
)

var AllKinds = []Kind{KindStory, KindGame}

func (k Kind) String() string {
	switch k {
	case KindStory:
		return "story"
	case KindGame:
		return "game"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts the String form, plural forms included.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "story", "stories":
		return KindStory, nil
	case "game", "games":
		return KindGame, nil
	}
	return 0, fmt.Errorf("unknown content kind %q", s)
}

// Route is a node of the navigation graph.
type Route int

const (
	RouteHome Route = iota
	RouteStories
	RouteGames
)

func (r Route) String() string {
	switch r {
	case RouteHome:
		return "home"
	case RouteStories:
		return "stories"
	case RouteGames:
		return "games"
	default:
		return fmt.Sprintf("route(%d)", int(r))
	}
}

// Visibility of a creation form.
type Visibility int

const (
	Closed Visibility = iota
	Open
)

func (v Visibility) String() string {
	if v == Open {
		return "open"
	}
	return "closed"
}
