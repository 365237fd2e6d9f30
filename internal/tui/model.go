package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vvka-141/reposh/internal/output"
	"github.com/vvka-141/reposh/internal/pathres"
	"github.com/vvka-141/reposh/internal/shell"
	"github.com/vvka-141/reposh/internal/tui/components"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// Rows below the viewport: status line and input line.
	chromeHeight = 2
)

type futureDoneMsg struct {
	future *shell.Future
	text   string
	err    error
}

type treeReadyMsg struct{}

// Model is the interactive shell. Its Update is the session's loop: all
// session calls happen there, and futures come back as futureDoneMsg.
type Model struct {
	ctx     context.Context
	session *shell.Session
	buffer  *output.Buffer
	title   string

	input     textinput.Model
	viewport  viewport.Model
	status    components.Status
	keys      KeyMap
	completer pathres.Completer

	initCmd     tea.Cmd
	treeReady   bool
	pending     int
	seenVersion uint64
	quitting    bool
}

// NewModel creates the shell UI. buffer must be the session's sink.
func NewModel(ctx context.Context, session *shell.Session, buffer *output.Buffer, title string) Model {
	input := textinput.New()
	input.Focus()

	m := Model{
		ctx:      ctx,
		session:  session,
		buffer:   buffer,
		title:    title,
		input:    input,
		viewport: viewport.New(TerminalWidth(defaultWidth), defaultHeight-chromeHeight),
		status:   components.NewStatus(),
		keys:     DefaultKeyMap(),
	}
	m.input.Prompt = PromptStyle.Render(session.Prompt()) + " "
	m.treeReady = session.Tree().Ready()
	m.initCmd = m.updateStatus()
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForTree(), m.initCmd)
}

func (m Model) waitForTree() tea.Cmd {
	tree := m.session.Tree()
	return func() tea.Msg {
		select {
		case <-tree.Done():
		case <-m.ctx.Done():
			return nil
		}
		return treeReadyMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.input.Width = max(1, msg.Width-len(m.session.Prompt())-2)
		m.seenVersion = 0
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case futureDoneMsg:
		m.pending--
		cmds := m.start(m.session.Resolve(msg.future, msg.text, msg.err))
		cmds = append(cmds, m.updateStatus())
		m.refresh()
		return m, tea.Batch(cmds...)

	case treeReadyMsg:
		m.treeReady = true
		cmd := m.updateStatus()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.status, cmd = m.status.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Complete) {
		m.completer.Reset()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Previous):
		if line, ok := m.session.History().RecallPrevious(); ok {
			m.setInput(line)
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if line, ok := m.session.History().RecallNext(); ok {
			m.setInput(line)
		}
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		m.complete()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.SetValue("")
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	cmds := m.start(m.session.Submit(line))
	cmds = append(cmds, m.updateStatus())
	m.input.Prompt = PromptStyle.Render(m.session.Prompt()) + " "
	m.refresh()

	if m.session.Exited() {
		m.quitting = true
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

// start turns futures into commands that run off the loop.
func (m *Model) start(futures []*shell.Future) []tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(futures))
	for _, f := range futures {
		m.pending++
		ctx := m.ctx
		cmds = append(cmds, func() tea.Msg {
			text, err := f.Run(ctx)
			return futureDoneMsg{future: f, text: text, err: err}
		})
	}
	return cmds
}

// complete replaces the last word of the input with its next path completion.
func (m *Model) complete() {
	value := m.input.Value()
	cut := strings.LastIndex(value, " ") + 1
	word := value[cut:]
	completed := m.completer.Next(m.session.Tree().Root(), m.session.Position(), word)
	m.setInput(value[:cut] + completed)
}

func (m *Model) setInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

func (m *Model) updateStatus() tea.Cmd {
	switch {
	case !m.treeReady:
		return m.status.Busy("Loading " + m.title)
	case m.pending > 0:
		return m.status.Busy(fmt.Sprintf("%d running", m.pending))
	default:
		m.status.Idle(m.summary())
		return nil
	}
}

func (m Model) summary() string {
	tree := m.session.Tree()
	if tree.Offline() {
		return "offline: built-in tree"
	}
	dirs, files := tree.Root().Count()
	return fmt.Sprintf("%s • %d directories, %d files", m.title, dirs, files)
}

// refresh copies new output into the viewport and scrolls to the bottom.
func (m *Model) refresh() {
	version := m.buffer.Version()
	if version == m.seenVersion {
		return
	}
	m.seenVersion = version
	m.viewport.SetContent(m.buffer.String())
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	status := m.status.View()
	if m.treeReady && m.pending == 0 {
		status += HelpStyle.Render("  " + m.keys.HelpText())
	}
	return m.viewport.View() + "\n" + status + "\n" + m.input.View()
}

// Output returns the text currently held by the output buffer.
func (m Model) Output() string {
	return m.buffer.String()
}

// Input returns the current input line.
func (m Model) Input() string {
	return m.input.Value()
}
