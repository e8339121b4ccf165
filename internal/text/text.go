package text

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns markdown into terminal text.
type Renderer interface {
	Render(markdown string, width int) string
}

// Plain returns markdown as-is. Used when glamour cannot be built.
type Plain struct{}

func (Plain) Render(md string, width int) string { return strings.TrimSpace(md) }

type glamourRenderer struct {
	style    string
	fallback Renderer
	byWidth  map[int]*glamour.TermRenderer
}

// NewGlamour renders with a named glamour style ("dark", "light", "notty",
// ...). An empty style picks one from the terminal background.
func NewGlamour(style string) Renderer {
	return &glamourRenderer{style: style, fallback: Plain{}, byWidth: map[int]*glamour.TermRenderer{}}
}

func (g *glamourRenderer) Render(md string, width int) string {
	if width <= 0 {
		width = 80
	}
	r, ok := g.byWidth[width]
	if !ok {
		opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
		if g.style == "" {
			opts = append(opts, glamour.WithAutoStyle())
		} else {
			opts = append(opts, glamour.WithStandardStyle(g.style))
		}
		var err error
		r, err = glamour.NewTermRenderer(opts...)
		if err != nil {
			return g.fallback.Render(md, width)
		}
		g.byWidth[width] = r
	}
	out, err := r.Render(md)
	if err != nil {
		return g.fallback.Render(md, width)
	}
	return strings.Trim(out, "\n")
}

// HomeIntro is the markdown shown under the Home title.
func HomeIntro() string {
	return "Engaging conversations and creative games to help kids grow.\n\n" +
		"Pick **Stories** to read and create magical tales, or **Games** for fun learning games."
}

// About is the help body.
func About(version string) string {
	var b strings.Builder
	b.WriteString("# R&D for Kids\n\n")
	b.WriteString(fmt.Sprintf("Version `%s`\n\n", version))
	b.WriteString("## Controls\n\n")
	b.WriteString("- `tab` / `shift+tab` move focus, `enter` activates\n")
	b.WriteString("- `esc` goes back, or closes an open form\n")
	b.WriteString("- `ctrl+a` adds a character, `ctrl+r` removes the focused one\n")
	b.WriteString("- `ctrl+s` submits the form\n")
	b.WriteString("- `t` cycles the theme, `r` reloads the catalog, `q` quits\n\n")
	b.WriteString("Creating a story or game is simulated: nothing is generated or saved.\n")
	return b.String()
}
