package ui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	Background lipgloss.Color
	Surface    lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	Stories    lipgloss.Color
	Games      lipgloss.Color
	Like       lipgloss.Color
}

var palettes = map[string]palette{
	"catppuccin": {
		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Text:       lipgloss.Color("#cdd6f4"),
		Muted:      lipgloss.Color("#a6adc8"),
		Accent:     lipgloss.Color("#89b4fa"),
		Border:     lipgloss.Color("#585b70"),
		Stories:    lipgloss.Color("#fab387"),
		Games:      lipgloss.Color("#a6e3a1"),
		Like:       lipgloss.Color("#f38ba8"),
	},
	"dracula": {
		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#343746"),
		Text:       lipgloss.Color("#f8f8f2"),
		Muted:      lipgloss.Color("#6272a4"),
		Accent:     lipgloss.Color("#8be9fd"),
		Border:     lipgloss.Color("#44475a"),
		Stories:    lipgloss.Color("#ffb86c"),
		Games:      lipgloss.Color("#50fa7b"),
		Like:       lipgloss.Color("#ff5555"),
	},
	"gruvbox": {
		Background: lipgloss.Color("#282828"),
		Surface:    lipgloss.Color("#3c3836"),
		Text:       lipgloss.Color("#ebdbb2"),
		Muted:      lipgloss.Color("#a89984"),
		Accent:     lipgloss.Color("#83a598"),
		Border:     lipgloss.Color("#665c54"),
		Stories:    lipgloss.Color("#fe8019"),
		Games:      lipgloss.Color("#b8bb26"),
		Like:       lipgloss.Color("#fb4934"),
	},
	"solarized_dark": {
		Background: lipgloss.Color("#002b36"),
		Surface:    lipgloss.Color("#073642"),
		Text:       lipgloss.Color("#fdf6e3"),
		Muted:      lipgloss.Color("#93a1a1"),
		Accent:     lipgloss.Color("#268bd2"),
		Border:     lipgloss.Color("#586e75"),
		Stories:    lipgloss.Color("#cb4b16"),
		Games:      lipgloss.Color("#859900"),
		Like:       lipgloss.Color("#dc322f"),
	},
}

func paletteFor(name string) palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["catppuccin"]
}

func themeNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func nextThemeName(current string, step int) string {
	names := themeNames()
	if len(names) == 0 {
		return current
	}
	idx := 0
	for i, name := range names {
		if name == current {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(names)
	if idx < 0 {
		idx += len(names)
	}
	return names[idx]
}

// styles are derived from a palette and rebuilt on theme change.
type styles struct {
	name           string
	title          lipgloss.Style
	tagline        lipgloss.Style
	back           lipgloss.Style
	card           lipgloss.Style
	cardTitle      lipgloss.Style
	like           lipgloss.Style
	label          lipgloss.Style
	button         lipgloss.Style
	buttonFocused  lipgloss.Style
	buttonDisabled lipgloss.Style
	input          lipgloss.Style
	inputFocused   lipgloss.Style
	muted          lipgloss.Style
	status         lipgloss.Style
	stories        lipgloss.Color
	games          lipgloss.Color
}

func newStyles(name string) styles {
	p := paletteFor(name)
	btn := lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(p.Background).Background(p.Accent)
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1)
	return styles{
		name:           name,
		title:          lipgloss.NewStyle().Bold(true).Foreground(p.Accent).MarginBottom(1),
		tagline:        lipgloss.NewStyle().Foreground(p.Text),
		back:           lipgloss.NewStyle().Foreground(p.Accent),
		card:           box,
		cardTitle:      lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		like:           lipgloss.NewStyle().Foreground(p.Like),
		label:          lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		button:         btn,
		buttonFocused:  btn.Underline(true).Background(p.Stories),
		buttonDisabled: btn.Background(p.Surface).Foreground(p.Muted),
		input:          box,
		inputFocused:   box.BorderForeground(p.Accent),
		muted:          lipgloss.NewStyle().Foreground(p.Muted),
		status:         lipgloss.NewStyle().Italic(true).Foreground(p.Muted),
		stories:        p.Stories,
		games:          p.Games,
	}
}

// bigCard is a Home card in the given colour.
func (s styles) bigCard(c lipgloss.Color, focused bool, width int) lipgloss.Style {
	st := lipgloss.NewStyle().
		Width(width).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Foreground(c)
	if focused {
		st = st.BorderStyle(lipgloss.ThickBorder()).Reverse(true)
	}
	return st
}
