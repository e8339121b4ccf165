package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/DaanHessen/kidsrd/internal/engine"
)

func openStoryForm(t *testing.T, h *harness) *StoriesScreen {
	t.Helper()
	h.press(runes("s"), enter)
	s, ok := h.app.Screen().(*StoriesScreen)
	require.True(t, ok)
	require.True(t, s.Form().IsOpen())
	return s
}

func TestStoryFieldsFollowTyping(t *testing.T) {
	h := newHarness(t)
	s := openStoryForm(t, h)

	h.press(runes("7"), tab, runes("dragons"), tab, runes("Ada"))
	d := s.Form().Draft()
	assert.Equal(t, "7", d.AgeGroup())
	assert.Equal(t, "dragons", d.Theme())
	assert.Equal(t, []string{"Ada"}, d.Characters())

	// letters that are global shortcuts elsewhere are typed while an input has focus
	h.press(runes("q"), runes("t"))
	assert.Equal(t, []string{"Adaqt"}, s.Form().Draft().Characters())
	assert.Equal(t, engine.RouteStories, h.app.Route())
	assert.Equal(t, "catppuccin", h.app.Theme())
}

func TestStoryRemoveKeepsOrder(t *testing.T) {
	h := newHarness(t)
	s := openStoryForm(t, h)

	h.press(tab, tab, runes("Ada"))
	h.press(ctrlA, runes("Bea"))
	h.press(ctrlA, runes("Cal"))
	require.Equal(t, []string{"Ada", "Bea", "Cal"}, s.Form().Draft().Characters())

	h.press(shiftTab, ctrlR)
	assert.Equal(t, []string{"Ada", "Cal"}, s.Form().Draft().Characters())

	// focus lands on the slot before the removed one, which is permanent
	h.press(ctrlR)
	assert.Equal(t, []string{"Ada", "Cal"}, s.Form().Draft().Characters())
}

func TestStoryAddButtonDisappearsAtCap(t *testing.T) {
	h := newHarness(t)
	s := openStoryForm(t, h)
	assert.Contains(t, s.View(), "Add Character")
	for range engine.MaxCharacters {
		h.press(ctrlA)
	}
	assert.Equal(t, engine.MaxCharacters, s.Form().Draft().Len())
	assert.NotContains(t, s.View(), "Add Character")
}

func TestStoryEscClosesForm(t *testing.T) {
	h := newHarness(t)
	s := openStoryForm(t, h)
	h.press(runes("9"), esc)
	assert.Equal(t, engine.Closed, s.Form().Visibility())
	assert.Equal(t, engine.RouteStories, h.app.Route())

	h.press(enter)
	assert.Empty(t, s.Form().Draft().AgeGroup(), "reopened form starts fresh")
}

func TestStoryStaleCompletionIsDropped(t *testing.T) {
	h := newHarness(t)
	first := openStoryForm(t, h)
	h.press(ctrlS)
	require.True(t, first.Form().Submitting())

	// esc while submitting leaves the screen
	h.press(esc)
	require.Equal(t, engine.RouteHome, h.app.Route())

	h.press(runes("s"))
	second := h.app.Screen().(*StoriesScreen)
	require.NotSame(t, first, second)

	h.finishGeneration()
	assert.Equal(t, engine.Closed, second.Form().Visibility())
	assert.False(t, second.Form().Submitting())
	assert.True(t, first.Form().Submitting(), "popped screen no longer receives messages")
}

func TestGameCreation(t *testing.T) {
	h := newHarness(t)
	h.press(runes("g"))
	g := h.app.Screen().(*GamesScreen)
	assert.Equal(t, []int{200, 180, 160}, likes(g.Items()))
	assert.Contains(t, g.View(), "Fun Learning Games")

	h.press(enter)
	require.True(t, g.Form().Submitting())
	assert.Contains(t, g.View(), "Creating New Game...")

	// a second press while pending is ignored
	h.press(enter)
	assert.True(t, g.Form().Submitting())

	h.finishGeneration()
	assert.False(t, g.Form().Submitting())
	assert.Equal(t, engine.Closed, g.Form().Visibility())
	assert.Contains(t, g.View(), "Game created.")
	assert.Equal(t, engine.RouteGames, h.app.Route())
}

func TestCompletionOnHomeIsIgnored(t *testing.T) {
	h := newHarness(t)
	h.press(runes("g"), enter, esc)
	require.Equal(t, engine.RouteHome, h.app.Route())
	h.finishGeneration()
	assert.Equal(t, engine.RouteHome, h.app.Route())
}

func TestStaleCompletionIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := newHarness(t, func(d *Deps) { d.Log = zap.New(core) })
	h.press(runes("s"), enter, ctrlS, esc, runes("s"))
	h.finishGeneration()

	dropped := logs.FilterMessage("dropped stale completion")
	require.Equal(t, 1, dropped.Len())
	assert.Equal(t, 1, logs.FilterMessage("left stories with a pending submission").Len())
}
