package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/petasbytes/agente/internal/session"
)

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, sess *session.Session) error {
	p := tea.NewProgram(New(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
