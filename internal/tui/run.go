package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive browser and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, list ListController, open DetailOpener, opts ...Option) error {
	m := New(list, open, opts...)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.Shutdown()
	} else {
		m.Shutdown()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
