package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/DaanHessen/kidsrd/internal/engine"
)

type targetKind int

const (
	targetCreate targetKind = iota
	targetAge
	targetTheme
	targetChar
	targetAdd
	targetSubmit
)

type focusTarget struct {
	kind  targetKind
	index int
}

const inputWidth = 36

// StoriesScreen lists stories and hosts the story creation form.
type StoriesScreen struct {
	deps   *Deps
	st     styles
	form   *engine.Form
	age    textinput.Model
	theme  textinput.Model
	chars  []textinput.Model
	focus  focusRing
	spin   spinner.Model
	items  []engine.ContentItem
	list   string
	status string
	width  int
	unsubs []func()
}

func NewStoriesScreen(d *Deps, st styles) *StoriesScreen {
	s := &StoriesScreen{
		deps: d,
		st:   st,
		form: engine.NewForm(engine.KindStory),
		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	s.age = newInput("Enter age (3-12)")
	s.theme = newInput("Enter story theme")
	s.unsubs = append(s.unsubs,
		s.form.Subscribe(s.onForm),
		d.Catalog.Subscribe(func(*engine.Catalog) { s.refreshList() }),
	)
	s.refreshList()
	s.focus.set(len(s.targets()))
	return s
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = ""
	in.Width = inputWidth
	return in
}

func (s *StoriesScreen) Init() tea.Cmd       { return nil }
func (s *StoriesScreen) Route() engine.Route { return engine.RouteStories }

func (s *StoriesScreen) SetStyles(st styles) {
	s.st = st
	s.refreshList()
}

// Form exposes the screen's form state.
func (s *StoriesScreen) Form() *engine.Form { return s.form }

// Items is the story list as displayed.
func (s *StoriesScreen) Items() []engine.ContentItem { return s.items }

func (s *StoriesScreen) SetSize(width, height int) {
	s.width = width
	s.refreshList()
}

func (s *StoriesScreen) Leave() {
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
	if s.form.Submitting() {
		s.deps.Log.Info("left stories with a pending submission", zap.String("session", s.form.Session().String()))
	}
}

func (s *StoriesScreen) Capturing() bool {
	t := s.current()
	return s.form.IsOpen() && (t.kind == targetAge || t.kind == targetTheme || t.kind == targetChar)
}

func (s *StoriesScreen) Hints() []key.Binding {
	if !s.form.IsOpen() {
		return []key.Binding{Keys.Create, Keys.Back, Keys.Reload}
	}
	return []key.Binding{Keys.Next, Keys.AddChar, Keys.DropChar, Keys.Submit, Keys.Back}
}

func (s *StoriesScreen) targets() []focusTarget {
	if !s.form.IsOpen() {
		return []focusTarget{{kind: targetCreate}}
	}
	t := []focusTarget{{kind: targetAge}, {kind: targetTheme}}
	for i := range s.chars {
		t = append(t, focusTarget{kind: targetChar, index: i})
	}
	if s.form.CanAddCharacter() {
		t = append(t, focusTarget{kind: targetAdd})
	}
	return append(t, focusTarget{kind: targetSubmit})
}

func (s *StoriesScreen) current() focusTarget {
	t := s.targets()
	s.focus.set(len(t))
	return t[s.focus.idx]
}

// onForm keeps the inputs in line with the draft.
func (s *StoriesScreen) onForm(c engine.FormChange) {
	switch c.Op {
	case engine.OpOpen:
		s.age.SetValue("")
		s.theme.SetValue("")
		s.chars = nil
		s.focus.idx = 0
		s.status = ""
	case engine.OpClose, engine.OpComplete:
		s.chars = nil
		s.focus.idx = 0
		if c.Op == engine.OpComplete {
			s.status = "Story created."
		}
	}
	if c.Form.IsOpen() {
		s.syncChars(c.Form.Draft().Characters())
	}
	s.focus.set(len(s.targets()))
}

func (s *StoriesScreen) syncChars(names []string) {
	for len(s.chars) < len(names) {
		s.chars = append(s.chars, newInput(""))
	}
	s.chars = s.chars[:len(names)]
	for i, name := range names {
		s.chars[i].Placeholder = fmt.Sprintf("Character %d name", i+1)
		if s.chars[i].Value() != name {
			s.chars[i].SetValue(name)
		}
	}
}

func (s *StoriesScreen) refreshList() {
	s.items = s.deps.Catalog.List(engine.KindStory)
	s.list = renderCards(s.st, s.items, "Read Story", s.width)
}

// applyFocus focuses the input under the cursor and blurs the rest.
func (s *StoriesScreen) applyFocus() tea.Cmd {
	t := s.current()
	var cmd tea.Cmd
	focus := func(in *textinput.Model, on bool) {
		if on {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	focus(&s.age, t.kind == targetAge)
	focus(&s.theme, t.kind == targetTheme)
	for i := range s.chars {
		focus(&s.chars[i], t.kind == targetChar && t.index == i)
	}
	return cmd
}

func (s *StoriesScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generationDoneMsg:
		if s.form.Complete(msg.completion) {
			s.deps.Log.Info("story generation completed", zap.String("session", msg.completion.Session.String()))
		} else {
			s.deps.Log.Debug("dropped stale completion", zap.String("session", msg.completion.Session.String()))
		}
		return s, s.applyFocus()
	case spinner.TickMsg:
		if !s.form.Submitting() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		cmd := s.handleKey(msg)
		return s, tea.Batch(cmd, s.applyFocus())
	}
	return s, nil
}

func (s *StoriesScreen) handleKey(k tea.KeyMsg) tea.Cmd {
	if !s.form.IsOpen() {
		switch {
		case key.Matches(k, Keys.Back):
			return back
		case key.Matches(k, Keys.Enter, Keys.Create):
			s.open()
		}
		return nil
	}

	t := s.current()
	switch {
	case key.Matches(k, Keys.Back):
		if err := s.form.Close(); err != nil {
			// pending submission: leave the screen instead
			return back
		}
		s.deps.Log.Info("story form closed")
		return nil
	case key.Matches(k, Keys.Next) || k.Type == tea.KeyDown:
		s.focus.move(1)
		return nil
	case key.Matches(k, Keys.Prev) || k.Type == tea.KeyUp:
		s.focus.move(-1)
		return nil
	case key.Matches(k, Keys.AddChar):
		s.addCharacter()
		return nil
	case key.Matches(k, Keys.DropChar):
		if t.kind == targetChar && t.index > 0 {
			s.removeCharacter(t.index)
		}
		return nil
	case key.Matches(k, Keys.Submit):
		return s.submit()
	case key.Matches(k, Keys.Enter):
		switch t.kind {
		case targetAdd:
			s.addCharacter()
		case targetSubmit:
			return s.submit()
		default:
			s.focus.move(1)
		}
		return nil
	}
	return s.typeInto(t, k)
}

func (s *StoriesScreen) typeInto(t focusTarget, k tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch t.kind {
	case targetAge:
		s.age, cmd = s.age.Update(k)
		if v := s.age.Value(); v != s.form.Draft().AgeGroup() {
			s.form.SetAgeGroup(v)
		}
	case targetTheme:
		s.theme, cmd = s.theme.Update(k)
		if v := s.theme.Value(); v != s.form.Draft().Theme() {
			s.form.SetTheme(v)
		}
	case targetChar:
		s.chars[t.index], cmd = s.chars[t.index].Update(k)
		if err := s.form.UpdateCharacter(t.index, s.chars[t.index].Value()); err != nil {
			violation(s.deps.Log, "update character", err)
		}
	}
	return cmd
}

func (s *StoriesScreen) open() {
	if err := s.form.Open(); err != nil {
		violation(s.deps.Log, "open form", err)
		return
	}
	s.deps.Log.Info("story form opened", zap.String("session", s.form.Session().String()))
}

func (s *StoriesScreen) addCharacter() {
	if !s.form.AddCharacter() {
		return
	}
	// cursor jumps to the new slot
	s.focus.set(len(s.targets()))
	s.focus.idx = 2 + s.form.Draft().Len() - 1
}

func (s *StoriesScreen) removeCharacter(index int) {
	if err := s.form.RemoveCharacter(index); err != nil {
		violation(s.deps.Log, "remove character", err)
		return
	}
	s.focus.idx = 2 + index - 1
}

func (s *StoriesScreen) submit() tea.Cmd {
	sub, err := s.form.Submit()
	if err != nil {
		// button is disabled while pending
		return nil
	}
	s.deps.Log.Info("story submitted",
		zap.String("session", sub.Session.String()),
		zap.Int("characters", sub.Draft.Len()))
	return tea.Batch(s.spin.Tick, awaitGeneration(s.deps, sub))
}

func (s *StoriesScreen) View() string {
	parts := []string{backLink(s.st), "", s.st.title.Render("Magical Stories")}
	if !s.form.IsOpen() {
		parts = append(parts, button(s.st, "Create New Story", true, false), "", s.list)
	} else {
		parts = append(parts, s.formView())
	}
	if s.status != "" {
		parts = append(parts, "", s.st.status.Render(s.status))
	}
	return joinLines(parts...)
}

func (s *StoriesScreen) formView() string {
	t := s.current()
	field := func(in textinput.Model) string {
		if in.Focused() {
			return s.st.inputFocused.Render(in.View())
		}
		return s.st.input.Render(in.View())
	}
	rows := []string{
		s.st.label.Render("Age Group"), field(s.age),
		s.st.label.Render("Story Theme"), field(s.theme),
		s.st.label.Render(fmt.Sprintf("Characters (Max %d)", engine.MaxCharacters)),
	}
	for i, in := range s.chars {
		row := field(in)
		if i > 0 {
			row = lipgloss.JoinHorizontal(lipgloss.Center, row, " ", s.st.muted.Render("[Remove ctrl+r]"))
		}
		rows = append(rows, row)
	}
	if s.form.CanAddCharacter() {
		rows = append(rows, button(s.st, "Add Character", t.kind == targetAdd, false))
	}
	rows = append(rows, "")
	if s.form.Submitting() {
		rows = append(rows, button(s.st, s.spin.View()+" Creating Story...", false, true))
	} else {
		rows = append(rows, button(s.st, "Create Story", t.kind == targetSubmit, false))
	}
	return joinLines(rows...)
}
