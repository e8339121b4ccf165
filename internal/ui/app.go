package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/DaanHessen/kidsrd/internal/engine"
	"github.com/DaanHessen/kidsrd/internal/text"
)

// App is the root model. It owns the navigator and a stack of screens that
// mirrors the navigator's history; Home sits at the bottom for the whole run.
type App struct {
	deps   *Deps
	nav    *engine.Navigator
	stack  []Screen
	st     styles
	help   help.Model
	width  int
	height int

	showAbout bool
	about     string
	aboutW    int
	status    string
}

func NewApp(d Deps) *App {
	d.defaults()
	a := &App{
		deps: &d,
		nav:  engine.NewNavigator(),
		st:   newStyles(d.Theme),
		help: help.New(),
	}
	a.stack = []Screen{NewHomeScreen(a.deps, a.st)}
	return a
}

// Route is the active route.
func (a *App) Route() engine.Route { return a.nav.Current() }

// Screen is the active screen.
func (a *App) Screen() Screen { return a.stack[len(a.stack)-1] }

// Theme is the active palette name.
func (a *App) Theme() string { return a.st.name }

// Status is the last app-level status line.
func (a *App) Status() string { return a.status }

func (a *App) Init() tea.Cmd { return a.Screen().Init() }

func (a *App) newScreen(r engine.Route) Screen {
	var s Screen
	switch r {
	case engine.RouteStories:
		s = NewStoriesScreen(a.deps, a.st)
	case engine.RouteGames:
		s = NewGamesScreen(a.deps, a.st)
	default:
		s = NewHomeScreen(a.deps, a.st)
	}
	s.SetSize(a.width, a.height)
	return s
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		for _, s := range a.stack {
			s.SetSize(msg.Width, msg.Height)
		}
		return a, nil
	case navigateMsg:
		return a, a.push(msg.to)
	case backMsg:
		a.pop()
		return a, nil
	case catalogLoadedMsg:
		a.applyCatalog(msg)
		return a, nil
	case generationDoneMsg:
		if a.nav.Current() == engine.RouteHome {
			a.deps.Log.Debug("dropped completion on home", zap.String("session", msg.completion.Session.String()))
			return a, nil
		}
	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}
	}
	return a, a.delegate(msg)
}

func (a *App) delegate(msg tea.Msg) tea.Cmd {
	i := len(a.stack) - 1
	next, cmd := a.stack[i].Update(msg)
	a.stack[i] = next
	return cmd
}

func (a *App) handleKey(k tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(k, Keys.ForceQuit) {
		return tea.Quit, true
	}
	if a.showAbout {
		switch {
		case key.Matches(k, Keys.Quit):
			return tea.Quit, true
		case key.Matches(k, Keys.Help, Keys.Back, Keys.Enter):
			a.showAbout = false
		}
		return nil, true
	}
	if a.Screen().Capturing() {
		return nil, false
	}
	switch {
	case key.Matches(k, Keys.Quit):
		return tea.Quit, true
	case key.Matches(k, Keys.Help):
		a.showAbout = true
		return nil, true
	case key.Matches(k, Keys.Theme):
		a.setTheme(nextThemeName(a.st.name, 1))
		return nil, true
	case key.Matches(k, Keys.Reload):
		return a.reload(), true
	}
	return nil, false
}

func (a *App) push(to engine.Route) tea.Cmd {
	if err := a.nav.Go(to); err != nil {
		a.deps.Log.Warn("navigation refused", zap.Error(err))
		return nil
	}
	s := a.newScreen(to)
	a.stack = append(a.stack, s)
	a.status = ""
	a.deps.Log.Debug("navigate", zap.Stringer("route", to))
	return s.Init()
}

func (a *App) pop() {
	if err := a.nav.Back(); err != nil {
		a.deps.Log.Debug("back ignored", zap.Error(err))
		return
	}
	top := a.stack[len(a.stack)-1]
	top.Leave()
	a.stack = a.stack[:len(a.stack)-1]
	a.deps.Log.Debug("back", zap.Stringer("route", a.nav.Current()))
}

func (a *App) setTheme(name string) {
	a.st = newStyles(name)
	for _, s := range a.stack {
		s.SetStyles(a.st)
	}
	a.deps.Log.Info("theme changed", zap.String("theme", name))
}

func (a *App) reload() tea.Cmd {
	src := a.deps.Source
	if src == nil {
		a.status = "Reload is not available for this catalog."
		return nil
	}
	a.status = "Reloading catalog..."
	ctx := a.deps.Ctx
	return func() tea.Msg {
		seed, err := src.Load(ctx)
		return catalogLoadedMsg{seed: seed, err: err}
	}
}

func (a *App) applyCatalog(msg catalogLoadedMsg) {
	err := msg.err
	if err == nil {
		err = a.deps.Catalog.Replace(msg.seed.Normalize())
	}
	if err != nil {
		a.deps.Log.Warn("catalog reload failed", zap.Error(err))
		a.status = "Reload failed: " + err.Error()
		return
	}
	a.deps.Log.Info("catalog reloaded",
		zap.Int("stories", a.deps.Catalog.Len(engine.KindStory)),
		zap.Int("games", a.deps.Catalog.Len(engine.KindGame)))
	a.status = "Catalog reloaded."
}

func (a *App) View() string {
	var body string
	if a.showAbout {
		w := max(min(a.width-4, 72), 40)
		if a.about == "" || a.aboutW != w {
			a.about = a.deps.Renderer.Render(text.About(a.deps.Version), w)
			a.aboutW = w
		}
		body = a.about
	} else {
		body = a.Screen().View()
	}
	hints := append(a.Screen().Hints(), Keys.Theme, Keys.Help, Keys.Quit)
	footer := a.help.View(hintMap(hints))
	if a.status != "" {
		footer = a.st.status.Render(a.status) + "\n" + footer
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(body + "\n\n" + footer)
}
