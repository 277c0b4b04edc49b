package main

import (
	"LatticeDb/internal/interpreter/eval"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// key mappings for the TUI.
type keyMap struct {
	Quit key.Binding
	Run  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "execute SQL"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run},
		{k.Quit},
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("44")).Bold(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

type execFunc func(addr, sql string) tea.Cmd

type model struct {
	addr     string
	exec     execFunc
	input    textarea.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	status   string
	output   string
	last     *eval.Result
	loading  bool
	err      error
	width    int
	height   int
}

func newModel(addr string) model {
	ta := textarea.New()
	ta.Placeholder = "Type SQL here. Use :q or :quit to exit."
	ta.Focus()
	ta.Prompt = "SQL> "
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = ta.FocusedStyle.CursorLine.Background(lipgloss.Color("236"))
	ta.ShowLineNumbers = false

	vp := viewport.New(80, 20)
	vp.SetContent(subtle.Render("Results will appear here."))

	h := help.New()
	h.ShowAll = true

	return model{
		addr:     addr,
		exec:     execSQLCmd,
		input:    ta,
		viewport: vp,
		help:     h,
		keys:     newKeyMap(),
		status:   "Connected to " + addr,
	}
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}

		if key.Matches(msg, m.keys.Run) {
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			if line == ":q" || line == ":quit" {
				return m, tea.Quit
			}
			if m.loading {
				return m, nil
			}

			m.loading = true
			m.status = "Executing..."
			m.err = nil
			m.input.Reset()

			// Enter is consumed here so the textarea never sees the newline.
			return m, m.exec(m.addr, line)
		}
	case execMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.status = "Execution failed"
			m.output = errorStyle.Render(msg.err.Error())
		} else {
			m.err = nil
			m.last = msg.result
			m.status = "Execution succeeded"
			m.output = renderResult(msg.result)
		}
		m.viewport.SetContent(m.output)
		m.viewport.GotoTop()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// resize splits the height left after the fixed chrome between the input
// box (a third) and the results viewport.
func (m *model) resize() {
	const chromeLines = 10 // headers, labels, blanks, status, help
	const minInputHeight = 3
	const minResultsHeight = 3

	available := max(m.height-chromeLines, 1)

	var inputHeight, resultsHeight int
	if available <= minInputHeight+minResultsHeight {
		inputHeight = max(available/2, 1)
		resultsHeight = max(available-inputHeight, 1)
	} else {
		inputHeight = max(available/3, minInputHeight)
		resultsHeight = max(available-inputHeight, minResultsHeight)
	}

	m.input.SetWidth(m.width - 6)
	m.input.SetHeight(inputHeight)
	m.viewport.Width = m.width - 6
	m.viewport.Height = resultsHeight
}

func (m model) View() string {
	title := titleStyle.Render("LatticeDB") + " " + subtle.Render("TUI client")
	addr := subtle.Render("Server: " + m.addr)

	inputBox := boxStyle.Render(m.input.View())
	resultBox := boxStyle.Render(m.viewport.View())

	status := m.status
	if m.loading {
		status += " (working...)"
	}
	statusLine := statusStyle.Render(status)
	if m.err != nil {
		statusLine += "  " + errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		addr,
		"",
		"SQL input:",
		inputBox,
		"",
		"Results:",
		resultBox,
		"",
		statusLine,
		m.help.View(m.keys),
	)
}
