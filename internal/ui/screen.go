package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/DaanHessen/kidsrd/internal/engine"
	"github.com/DaanHessen/kidsrd/internal/text"
)

// Screen is one node of the navigation graph. A new instance is built every
// time the route is entered and Leave is called when it is popped.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	Route() engine.Route
	Hints() []key.Binding
	// Capturing reports whether a text input has focus, which turns off
	// single-letter global shortcuts.
	Capturing() bool
	SetSize(width, height int)
	SetStyles(st styles)
	Leave()
}

// Messages exchanged between screens and the App.
type (
	navigateMsg struct{ to engine.Route }

	backMsg struct{}

	generationDoneMsg struct{ completion engine.Completion }

	catalogLoadedMsg struct {
		seed engine.Seed
		err  error
	}
)

func navigate(to engine.Route) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

func back() tea.Msg { return backMsg{} }

// Deps are the collaborators shared by all screens.
type Deps struct {
	Ctx       context.Context
	Catalog   *engine.Catalog
	Source    engine.Source // nil disables reload
	Generator *engine.Generator
	Renderer  text.Renderer
	Log       *zap.Logger
	Theme     string
	Version   string
}

func (d *Deps) defaults() {
	if d.Ctx == nil {
		d.Ctx = context.Background()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Renderer == nil {
		d.Renderer = text.Plain{}
	}
	if d.Generator == nil {
		d.Generator = engine.NewGenerator(nil, engine.DefaultLatency, d.Log)
	}
	if d.Catalog == nil {
		d.Catalog, _ = engine.NewCatalog(engine.DefaultSeed())
	}
	if d.Theme == "" {
		d.Theme = "catppuccin"
	}
}

// awaitGeneration runs the simulated generation off the event loop and
// delivers its completion back to it.
func awaitGeneration(d *Deps, sub engine.Submission) tea.Cmd {
	return func() tea.Msg {
		c, err := d.Generator.Await(d.Ctx, sub)
		if err != nil {
			return nil
		}
		return generationDoneMsg{completion: c}
	}
}

// violation reports a caller bug. Development loggers panic; production
// loggers record it and the operation is skipped.
func violation(log *zap.Logger, op string, err error) {
	log.DPanic("precondition violated", zap.String("op", op), zap.Error(err))
}

// focusRing is a wrapping cursor over n elements.
type focusRing struct{ idx, n int }

func (f *focusRing) set(n int) {
	f.n = n
	if f.idx >= n {
		f.idx = n - 1
	}
	if f.idx < 0 {
		f.idx = 0
	}
}

func (f *focusRing) move(step int) {
	if f.n == 0 {
		return
	}
	f.idx = ((f.idx+step)%f.n + f.n) % f.n
}
