package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DaanHessen/kidsrd/internal/engine"
)

// renderCards draws the catalog list. Items are expected in display order.
func renderCards(st styles, items []engine.ContentItem, action string, width int) string {
	if len(items) == 0 {
		return st.muted.Render("(nothing here yet)")
	}
	cardW := max(min(width-4, 56), 24)
	cards := make([]string, 0, len(items))
	for _, it := range items {
		footer := st.like.Render(fmt.Sprintf("♥ %d", it.Likes)) + "   " + st.muted.Render("["+action+"]")
		body := st.cardTitle.Render(it.Title) + "\n" + footer
		cards = append(cards, st.card.Width(cardW).Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func backLink(st styles) string {
	return st.back.Render("← Back to Home") + st.muted.Render(" (esc)")
}

func button(st styles, label string, focused, disabled bool) string {
	switch {
	case disabled:
		return st.buttonDisabled.Render(label)
	case focused:
		return st.buttonFocused.Render(label)
	default:
		return st.button.Render(label)
	}
}

func joinLines(parts ...string) string {
	return strings.Join(parts, "\n")
}
