package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/DaanHessen/kidsrd/internal/engine"
)

// GamesScreen lists games. Creating a game has no fields, so the button
// submits straight away.
type GamesScreen struct {
	deps   *Deps
	st     styles
	form   *engine.Form
	spin   spinner.Model
	items  []engine.ContentItem
	list   string
	status string
	width  int
	unsubs []func()
}

func NewGamesScreen(d *Deps, st styles) *GamesScreen {
	g := &GamesScreen{
		deps: d,
		st:   st,
		form: engine.NewForm(engine.KindGame),
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	g.unsubs = append(g.unsubs,
		g.form.Subscribe(func(c engine.FormChange) {
			if c.Op == engine.OpComplete {
				g.status = "Game created."
			}
		}),
		d.Catalog.Subscribe(func(*engine.Catalog) { g.refreshList() }),
	)
	g.refreshList()
	return g
}

func (g *GamesScreen) Init() tea.Cmd       { return nil }
func (g *GamesScreen) Route() engine.Route { return engine.RouteGames }
func (g *GamesScreen) Capturing() bool     { return false }

func (g *GamesScreen) SetStyles(st styles) {
	g.st = st
	g.refreshList()
}

func (g *GamesScreen) Form() *engine.Form          { return g.form }
func (g *GamesScreen) Items() []engine.ContentItem { return g.items }

func (g *GamesScreen) SetSize(width, height int) {
	g.width = width
	g.refreshList()
}

func (g *GamesScreen) Leave() {
	for _, u := range g.unsubs {
		u()
	}
	g.unsubs = nil
}

func (g *GamesScreen) Hints() []key.Binding {
	return []key.Binding{Keys.Create, Keys.Back, Keys.Reload}
}

func (g *GamesScreen) refreshList() {
	g.items = g.deps.Catalog.List(engine.KindGame)
	g.list = renderCards(g.st, g.items, "Play Game", g.width)
}

func (g *GamesScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generationDoneMsg:
		if !g.form.Complete(msg.completion) {
			g.deps.Log.Debug("dropped stale completion", zap.String("session", msg.completion.Session.String()))
		}
	case spinner.TickMsg:
		if g.form.Submitting() {
			var cmd tea.Cmd
			g.spin, cmd = g.spin.Update(msg)
			return g, cmd
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, Keys.Back):
			return g, back
		case key.Matches(msg, Keys.Enter, Keys.Create):
			return g, g.create()
		}
	}
	return g, nil
}

func (g *GamesScreen) create() tea.Cmd {
	if g.form.Submitting() {
		return nil
	}
	if err := g.form.Open(); err != nil {
		violation(g.deps.Log, "open form", err)
		return nil
	}
	sub, err := g.form.Submit()
	if err != nil {
		violation(g.deps.Log, "submit", err)
		return nil
	}
	g.status = ""
	g.deps.Log.Info("game submitted", zap.String("session", sub.Session.String()))
	return tea.Batch(g.spin.Tick, awaitGeneration(g.deps, sub))
}

func (g *GamesScreen) View() string {
	btn := button(g.st, "Create New Game", true, false)
	if g.form.Submitting() {
		btn = button(g.st, g.spin.View()+" Creating New Game...", false, true)
	}
	parts := []string{backLink(g.st), "", g.st.title.Render("Fun Learning Games"), btn}
	if g.status != "" {
		parts = append(parts, g.st.status.Render(g.status))
	}
	return joinLines(append(parts, "", g.list)...)
}
