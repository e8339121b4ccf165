package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/kidsrd/internal/engine"
	"github.com/DaanHessen/kidsrd/internal/text"
)

var homeCards = []struct {
	label string
	route engine.Route
}{
	{"Stories", engine.RouteStories},
	{"Games", engine.RouteGames},
}

// HomeScreen shows the two entry cards.
type HomeScreen struct {
	deps   *Deps
	st     styles
	focus  focusRing
	width  int
	intro  string
	introW int
}

func NewHomeScreen(d *Deps, st styles) *HomeScreen {
	h := &HomeScreen{deps: d, st: st}
	h.focus.set(len(homeCards))
	return h
}

func (h *HomeScreen) Init() tea.Cmd       { return nil }
func (h *HomeScreen) Route() engine.Route { return engine.RouteHome }
func (h *HomeScreen) Capturing() bool     { return false }
func (h *HomeScreen) Leave()              {}
func (h *HomeScreen) SetStyles(st styles) { h.st = st }

// Focused is the route behind the highlighted card.
func (h *HomeScreen) Focused() engine.Route { return homeCards[h.focus.idx].route }

func (h *HomeScreen) SetSize(width, height int) { h.width = width }

func (h *HomeScreen) Hints() []key.Binding {
	return []key.Binding{Keys.Up, Keys.Down, Keys.Enter, Keys.Stories, Keys.Games}
}

func (h *HomeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	switch {
	case key.Matches(k, Keys.Up, Keys.Prev):
		h.focus.move(-1)
	case key.Matches(k, Keys.Down, Keys.Next):
		h.focus.move(1)
	case key.Matches(k, Keys.Enter):
		return h, navigate(h.Focused())
	case key.Matches(k, Keys.Stories):
		return h, navigate(engine.RouteStories)
	case key.Matches(k, Keys.Games):
		return h, navigate(engine.RouteGames)
	}
	return h, nil
}

func (h *HomeScreen) View() string {
	w := h.width
	if w <= 0 {
		w = 60
	}
	cardW := min(w-4, 50)
	if h.intro == "" || h.introW != cardW {
		h.intro = h.deps.Renderer.Render(text.HomeIntro(), cardW)
		h.introW = cardW
	}
	parts := []string{h.st.title.Render("R&D for Kids"), h.st.tagline.Render(h.intro), ""}
	colors := []lipgloss.Color{h.st.stories, h.st.games}
	for i, c := range homeCards {
		parts = append(parts, h.st.bigCard(colors[i], i == h.focus.idx, cardW).Render(c.label))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
