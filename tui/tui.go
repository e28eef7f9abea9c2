package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/duelset/engine"
)

// Model is the Bubble Tea model for the explorer.
type Model struct {
	engine *engine.Engine
	title  string

	viewport viewport.Model
	input    textinput.Model
	history  *History
	log      transcript

	width, height int
	ready         bool
	trace         bool
	quitting      bool
	lastCmd       string
}

// outputMsg delivers output produced outside Update.
type outputMsg struct {
	lines []string
}

// New creates a TUI model over eng. title heads the welcome text.
func New(eng *engine.Engine, title string) Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "charizard vs venusaur at 60"
	in.PromptStyle = styleInputPrompt
	in.CharLimit = 256
	in.Focus()

	return Model{
		engine:  eng,
		title:   title,
		input:   in,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(eng *engine.Engine, title string) error {
	p := tea.NewProgram(New(eng, title), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init starts the cursor blinking and queues the welcome text.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	eng, title := m.engine, m.title
	return func() tea.Msg {
		var lines []string
		if title != "" {
			lines = append(lines, title, "")
		}
		lines = append(lines, eng.Step("roster").Output...)
		lines = append(lines, "", `Try "charizard vs venusaur at 60", "sample 5" or "help".`)
		return outputMsg{lines: lines}
	}
}

// Update handles resizes, keys and queued output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case outputMsg:
		m.log.add("", msg.lines, false)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Submit):
			return m.submit()
		case key.Matches(msg, keys.Older):
			if prev, ok := m.history.Prev(); ok {
				m.setInput(prev)
			}
			return m, nil
		case key.Matches(msg, keys.Newer):
			next, ok := m.history.Next()
			if !ok {
				m.history.ResetCursor()
			}
			m.setInput(next)
			return m, nil
		case key.Matches(msg, keys.Complete):
			m.setInput(completeName(m.input.Value(), m.engine.Roster.Names()))
			return m, nil
		case key.Matches(msg, keys.Scroll):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	vpHeight := max(h-2, 1) // status bar + input line
	if !m.ready {
		m.viewport = viewport.New(w, vpHeight)
		m.viewport.KeyMap = viewportKeys()
		m.ready = true
	} else {
		m.viewport.Width, m.viewport.Height = w, vpHeight
	}
	m.refresh()
}

func (m *Model) setInput(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.log.render(m.width))
	m.viewport.GotoBottom()
}

// submit runs the current input line.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return m, nil
	}
	m.history.Push(line)
	m.history.ResetCursor()

	cmdLine := line
	switch strings.ToLower(line) {
	case "again", "g":
		if m.lastCmd == "" {
			m.log.add(line, []string{"Nothing to repeat."}, true)
			m.refresh()
			return m, nil
		}
		cmdLine = m.lastCmd
	}

	if strings.HasPrefix(cmdLine, "/") {
		out, quit := m.handleMeta(cmdLine)
		m.log.add(line, out, true)
		m.refresh()
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.lastCmd = cmdLine
	result := m.engine.Step(cmdLine)
	out := result.Output
	if m.trace {
		for _, t := range result.Trace {
			out = append(out, "[trace] "+t)
		}
	}
	m.log.add(line, out, false)
	m.refresh()
	return m, nil
}

// completeName extends the last word of input to the unique roster name it
// prefixes, or to the longest prefix shared by all candidates.
func completeName(input string, names []string) string {
	cut := strings.LastIndexByte(input, ' ') + 1
	head, word := input[:cut], input[cut:]
	if word == "" {
		return input
	}
	lw := strings.ToLower(word)
	var hits []string
	for _, n := range names {
		if strings.HasPrefix(strings.ToLower(n), lw) {
			hits = append(hits, n)
		}
	}
	switch len(hits) {
	case 0:
		return input
	case 1:
		return head + strings.ToLower(hits[0])
	}
	sort.Strings(hits)
	common := strings.ToLower(hits[0])
	for _, h := range hits[1:] {
		lh := strings.ToLower(h)
		for !strings.HasPrefix(lh, common) {
			common = common[:len(common)-1]
		}
	}
	if len(common) <= len(word) {
		return input
	}
	return head + common
}

// View renders viewport, status bar and input line.
func (m Model) View() string {
	switch {
	case m.quitting:
		return ""
	case !m.ready:
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}
