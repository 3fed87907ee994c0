// internal/tui/app.go
//
// Interactive front end for wackywidget. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: the App below, wrapping a shell.Shell
// 2. Update: key presses edit the input line; enter runs it through the shell
// 3. View: chart, activity and transcript panels rendered with lipgloss
//
// Every command goes through the same interpreter as line mode, so both
// front ends print identical messages.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Keatongull/wackywidget/internal/org"
	"github.com/Keatongull/wackywidget/internal/shell"
)

const (
	defaultTail      = 8
	maxTranscript    = 1000
	maxHistory       = 100
	transcriptHeight = 10
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")).MarginBottom(1)
	headStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	personStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC"))
	vacancyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Italic(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	echoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// AppOption customizes App construction.
type AppOption func(*App)

// WithJournalTail sets how many journal entries the activity panel shows.
func WithJournalTail(n int) AppOption {
	return func(a *App) {
		if n >= 0 {
			a.tail = n
		}
	}
}

// App is the bubbletea model.
type App struct {
	shell  *shell.Shell
	input  textinput.Model
	output viewport.Model

	transcript []string
	history    []string
	histIdx    int
	tail       int

	width  int
	height int
}

// NewApp wraps a shell in an interactive model.
func NewApp(sh *shell.Shell, opts ...AppOption) *App {
	ti := textinput.New()
	ti.Placeholder = "HIRE <manager> <name>"
	ti.CharLimit = 200
	ti.Width = 60
	ti.Prompt = sh.Prompt()
	ti.PromptStyle = headStyle
	ti.Focus()

	vp := viewport.New(80, transcriptHeight)

	a := &App{
		shell:  sh,
		input:  ti,
		output: vp,
		tail:   defaultTail,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.appendOutput(dimStyle.Render("Name the President to begin. HELP lists commands, EXIT leaves."))
	return a
}

// Init starts the cursor blinking.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.output.Width = max(20, msg.Width-4)
		a.output.Height = max(4, msg.Height/3)
		a.input.Width = max(20, msg.Width-8)
		a.output.GotoBottom()
		return a, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return a, tea.Quit
		case tea.KeyEnter:
			return a.submit()
		case tea.KeyUp:
			a.recall(-1)
			return a, nil
		case tea.KeyDown:
			a.recall(1)
			return a, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			a.output, cmd = a.output.Update(msg)
			return a, cmd
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) submit() (tea.Model, tea.Cmd) {
	line := a.input.Value()
	a.input.Reset()
	if strings.TrimSpace(line) != "" {
		a.history = append(a.history, line)
		if len(a.history) > maxHistory {
			a.history = a.history[len(a.history)-maxHistory:]
		}
	}
	a.histIdx = len(a.history)

	a.appendOutput(echoStyle.Render(a.shell.Prompt() + line))
	if text := a.shell.Execute(line); text != "" {
		style := personStyle
		if strings.HasPrefix(text, "Error:") {
			style = errorStyle
		}
		a.appendOutput(style.Render(text))
	}
	if a.shell.Done() {
		return a, tea.Quit
	}
	a.input.Prompt = a.shell.Prompt()
	return a, nil
}

func (a *App) recall(step int) {
	if len(a.history) == 0 {
		return
	}
	a.histIdx = min(max(a.histIdx+step, 0), len(a.history))
	if a.histIdx == len(a.history) {
		a.input.SetValue("")
		return
	}
	a.input.SetValue(a.history[a.histIdx])
	a.input.CursorEnd()
}

func (a *App) appendOutput(text string) {
	a.transcript = append(a.transcript, strings.Split(text, "\n")...)
	if len(a.transcript) > maxTranscript {
		a.transcript = a.transcript[len(a.transcript)-maxTranscript:]
	}
	a.output.SetContent(strings.Join(a.transcript, "\n"))
	a.output.GotoBottom()
}

// View renders the board.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	rightWidth := max(32, width/3)
	leftWidth := width - rightWidth - 4
	if leftWidth < 30 {
		leftWidth = width - 4
		rightWidth = 0
	}

	chart := panelStyle.Width(max(20, leftWidth)).Render(a.renderChart())
	var body string
	if rightWidth > 0 {
		activity := panelStyle.Width(max(20, rightWidth)).Render(a.renderActivity())
		body = lipgloss.JoinHorizontal(lipgloss.Top, chart, activity)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, chart, panelStyle.Width(max(20, leftWidth)).Render(a.renderActivity()))
	}

	sections := []string{
		titleStyle.Render("WACKY WIDGET ORGANIZATION"),
		body,
		panelStyle.Render(a.output.View()),
		a.input.View(),
		dimStyle.Render("enter run · ↑/↓ history · pgup/pgdn scroll · ctrl+c quit"),
	}
	return strings.Join(sections, "\n")
}

func (a *App) renderChart() string {
	lines := a.shell.Engine().Lines()
	if len(lines) == 0 {
		return headStyle.Render("CHART") + "\n" + dimStyle.Render("Organization is empty.")
	}
	rows := make([]string, 0, len(lines)+1)
	rows = append(rows, headStyle.Render("CHART"))
	for _, l := range lines {
		style := personStyle
		if l.Vacancy {
			style = vacancyStyle
		}
		rows = append(rows, strings.Repeat("  ", l.Depth)+style.Render(l.String()))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderActivity() string {
	stats := a.shell.Engine().Stats()
	rows := []string{headStyle.Render("ACTIVITY")}
	for _, rank := range org.Ranks {
		row := fmt.Sprintf("%-15s %2d", rank, stats.Headcount[rank])
		if n := stats.Vacancies[rank]; n > 0 {
			row += vacancyStyle.Render(fmt.Sprintf("  +%d open", n))
		}
		rows = append(rows, row)
	}
	lines, total := a.shell.Journal().Tail(a.tail)
	if len(lines) > 0 {
		rows = append(rows, "", dimStyle.Render(fmt.Sprintf("journal · %d of %d", len(lines), total)))
		for _, line := range lines {
			rows = append(rows, dimStyle.Render(line))
		}
	}
	return strings.Join(rows, "\n")
}
