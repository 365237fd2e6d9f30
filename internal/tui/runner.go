package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/reposh/internal/output"
	"github.com/vvka-141/reposh/internal/shell"
)

// Run starts the full-screen shell and blocks until the user quits.
func Run(ctx context.Context, session *shell.Session, buffer *output.Buffer, title string) error {
	buffer.AppendLine("reposh " + title + " • type `help` for commands")

	program := tea.NewProgram(
		NewModel(ctx, session, buffer, title),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("shell UI failed: %w", err)
	}
	return nil
}
