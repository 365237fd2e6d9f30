package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Status is a one-line indicator: a spinner with a message while work is
// outstanding, a plain message otherwise.
type Status struct {
	spinner spinner.Model
	message string
	busy    bool
	styles  statusStyles
}

type statusStyles struct {
	Message lipgloss.Style
	Idle    lipgloss.Style
}

func defaultStatusStyles() statusStyles {
	return statusStyles{
		Message: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Idle:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// NewStatus creates an idle status line.
func NewStatus() Status {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	return Status{spinner: s, styles: defaultStatusStyles()}
}

// Busy shows message next to a spinning indicator. The returned command
// starts the spinner if it was idle.
func (s *Status) Busy(message string) tea.Cmd {
	s.message = message
	if s.busy {
		return nil
	}
	s.busy = true
	return s.spinner.Tick
}

// Idle shows message without a spinner.
func (s *Status) Idle(message string) {
	s.message = message
	s.busy = false
}

// IsBusy reports whether the spinner is running.
func (s Status) IsBusy() bool {
	return s.busy
}

// Message returns the current message.
func (s Status) Message() string {
	return s.message
}

// Update advances the spinner. Ticks stop once the status is idle.
func (s Status) Update(msg tea.Msg) (Status, tea.Cmd) {
	tick, ok := msg.(spinner.TickMsg)
	if !ok || !s.busy {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(tick)
	return s, cmd
}

func (s Status) View() string {
	if s.busy {
		return s.spinner.View() + " " + s.styles.Message.Render(s.message)
	}
	return s.styles.Idle.Render(s.message)
}
