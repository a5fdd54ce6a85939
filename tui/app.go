package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive search and blocks until the user quits.
// The final Model is returned so callers can read Selected().
func Run(opts Options) (*Model, error) {
	model, err := New(opts)
	if err != nil {
		return nil, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run interactive search: %w", err)
	}

	m, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return m, nil
}
