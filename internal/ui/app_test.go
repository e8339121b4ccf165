package ui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DaanHessen/kidsrd/internal/engine"
	"github.com/DaanHessen/kidsrd/internal/text"
)

// harness drives an App without a tea.Program. Commands run on goroutines
// and only app-level messages are fed back, so cursor blinks and spinner
// ticks never loop.
type harness struct {
	t     *testing.T
	ctx   context.Context
	app   *App
	clock *clockwork.FakeClock
	msgs  chan tea.Msg
}

func newHarness(t *testing.T, mutate ...func(*Deps)) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	clock := clockwork.NewFakeClock()
	cat, err := engine.NewCatalog(engine.DefaultSeed())
	require.NoError(t, err)
	d := Deps{
		Ctx:       ctx,
		Catalog:   cat,
		Generator: engine.NewGenerator(clock, engine.DefaultLatency, nil),
		Renderer:  text.Plain{},
		Log:       zap.NewNop(),
		Version:   "test",
	}
	for _, m := range mutate {
		m(&d)
	}
	h := &harness{t: t, ctx: ctx, app: NewApp(d), clock: clock, msgs: make(chan tea.Msg, 256)}
	h.send(tea.WindowSizeMsg{Width: 80, Height: 40})
	return h
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() { h.msgs <- cmd() }()
}

func (h *harness) dispatch(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case navigateMsg, backMsg, generationDoneMsg, catalogLoadedMsg:
		h.send(msg)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.app.Update(msg)
	h.run(cmd)
}

// settle drains messages until the app has been quiet for a moment.
func (h *harness) settle() {
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-h.msgs:
			h.dispatch(msg)
		case <-time.After(50 * time.Millisecond):
			return
		case <-deadline:
			return
		}
	}
}

func (h *harness) press(keys ...tea.KeyMsg) {
	for _, k := range keys {
		h.send(k)
		h.settle()
	}
}

// finishGeneration lets the pending simulated generation complete.
func (h *harness) finishGeneration() {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(h.ctx, 2*time.Second)
	defer cancel()
	require.NoError(h.t, h.clock.BlockUntilContext(ctx, 1))
	h.clock.Advance(engine.DefaultLatency)
	h.settle()
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter    = tea.KeyMsg{Type: tea.KeyEnter}
	esc      = tea.KeyMsg{Type: tea.KeyEsc}
	tab      = tea.KeyMsg{Type: tea.KeyTab}
	shiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	down     = tea.KeyMsg{Type: tea.KeyDown}
	ctrlA    = tea.KeyMsg{Type: tea.KeyCtrlA}
	ctrlR    = tea.KeyMsg{Type: tea.KeyCtrlR}
	ctrlS    = tea.KeyMsg{Type: tea.KeyCtrlS}
)

func likes(items []engine.ContentItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Likes
	}
	return out
}

func TestStoryCreationEndToEnd(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, engine.RouteHome, h.app.Route())

	h.press(enter)
	require.Equal(t, engine.RouteStories, h.app.Route())
	stories, ok := h.app.Screen().(*StoriesScreen)
	require.True(t, ok)
	assert.Equal(t, engine.Closed, stories.Form().Visibility())
	assert.Equal(t, []int{150, 120, 100}, likes(stories.Items()))

	h.press(enter)
	form := stories.Form()
	require.True(t, form.IsOpen())
	assert.Equal(t, []string{""}, form.Draft().Characters())

	for range 4 {
		h.press(ctrlA)
	}
	assert.Equal(t, engine.MaxCharacters, form.Draft().Len())
	h.press(ctrlA)
	assert.Equal(t, engine.MaxCharacters, form.Draft().Len())
	assert.False(t, form.CanAddCharacter())

	h.press(ctrlS)
	assert.True(t, form.Submitting())
	assert.Contains(t, h.app.View(), "Creating Story...")

	h.finishGeneration()
	assert.Equal(t, engine.Closed, form.Visibility())
	assert.False(t, form.Submitting())
	assert.Equal(t, engine.RouteStories, h.app.Route())

	h.press(esc)
	assert.Equal(t, engine.RouteHome, h.app.Route())
}

func TestHomeFocusAndShortcuts(t *testing.T) {
	h := newHarness(t)
	home := h.app.Screen().(*HomeScreen)
	assert.Equal(t, engine.RouteStories, home.Focused())

	h.press(down)
	assert.Equal(t, engine.RouteGames, home.Focused())
	h.press(down)
	assert.Equal(t, engine.RouteStories, home.Focused(), "focus wraps")

	h.press(runes("g"))
	assert.Equal(t, engine.RouteGames, h.app.Route())
	h.press(esc)
	h.press(runes("s"))
	assert.Equal(t, engine.RouteStories, h.app.Route())
	h.press(esc)
	assert.Equal(t, engine.RouteHome, h.app.Route())

	// esc on Home has nowhere to go
	h.press(esc)
	assert.Equal(t, engine.RouteHome, h.app.Route())
}

func TestThemeCycles(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, "catppuccin", h.app.Theme())
	h.press(runes("t"))
	assert.Equal(t, "dracula", h.app.Theme())
	for range len(themeNames()) - 1 {
		h.press(runes("t"))
	}
	assert.Equal(t, "catppuccin", h.app.Theme())
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t)
	_, cmd := h.app.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = h.app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAboutOverlay(t *testing.T) {
	h := newHarness(t)
	h.press(runes("?"))
	assert.Contains(t, h.app.View(), "Controls")
	assert.Contains(t, h.app.View(), "test")

	// navigation keys are swallowed while the overlay is up
	h.press(runes("s"))
	assert.Equal(t, engine.RouteHome, h.app.Route())

	h.press(esc)
	assert.Contains(t, h.app.View(), "R&D for Kids")
	assert.NotContains(t, h.app.View(), "Controls")
}

type failingSource struct{}

func (failingSource) Load(context.Context) (engine.Seed, error) {
	return engine.Seed{}, assert.AnError
}

func TestReloadReplacesCatalog(t *testing.T) {
	seed := engine.Seed{
		Stories: []engine.ContentItem{{ID: "a", Title: "Quiet Owl", Likes: 7}, {ID: "b", Title: "Loud Lion", Likes: 70}},
		Games:   []engine.ContentItem{{Title: "Shape Sorter", Likes: 1}},
	}
	h := newHarness(t, func(d *Deps) { d.Source = engine.StaticSource{Seed: seed} })
	h.press(runes("s"))
	stories := h.app.Screen().(*StoriesScreen)
	require.Len(t, stories.Items(), 3)

	h.press(runes("r"))
	assert.Equal(t, "Catalog reloaded.", h.app.Status())
	assert.Equal(t, []int{70, 7}, likes(stories.Items()))
	assert.Contains(t, h.app.View(), "Loud Lion")

	h.press(esc, runes("g"))
	games := h.app.Screen().(*GamesScreen)
	require.Len(t, games.Items(), 1)
	assert.NotEmpty(t, games.Items()[0].ID)
}

func TestReloadFailureKeepsCatalog(t *testing.T) {
	h := newHarness(t, func(d *Deps) { d.Source = failingSource{} })
	h.press(runes("r"))
	assert.Contains(t, h.app.Status(), "Reload failed")
	assert.Equal(t, 3, h.app.deps.Catalog.Len(engine.KindStory))
}

func TestReloadWithoutSource(t *testing.T) {
	h := newHarness(t)
	h.press(runes("r"))
	assert.Contains(t, h.app.Status(), "not available")
}
