package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, d Deps) error {
	d.Ctx = ctx
	program := tea.NewProgram(NewApp(d), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
