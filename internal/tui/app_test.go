package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Keatongull/wackywidget/internal/logbook"
	"github.com/Keatongull/wackywidget/internal/shell"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	book, err := logbook.New("")
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	app := NewApp(shell.New(shell.WithJournal(book)), WithJournalTail(3))
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

// typeLine enters text and presses enter, returning the command produced.
func typeLine(t *testing.T, app *App, line string) tea.Cmd {
	t.Helper()
	if line != "" {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	}
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return cmd
}

func transcript(app *App) string {
	return strings.Join(app.transcript, "\n")
}

func TestEnterRunsCommandsThroughShell(t *testing.T) {
	app := newTestApp(t)
	typeLine(t, app, "Alice")
	typeLine(t, app, "HIRE Alice Bob")
	typeLine(t, app, "HIRE Bob Carol")
	typeLine(t, app, "FIRE Alice Bob")

	out := transcript(app)
	for _, want := range []string{
		"Success: Initialized President Alice.",
		"Successfully hired Bob under Alice.",
		"Bob has been removed from the company. Vacancy remains.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("transcript missing %q:\n%s", want, out)
		}
	}
	if app.input.Value() != "" {
		t.Fatalf("input not cleared after enter: %q", app.input.Value())
	}

	view := app.View()
	for _, want := range []string{"President: Alice", "VACANCY: Vice President", "journal · 3 of 4", "+1 open"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Supervisor: Carol") {
		t.Fatalf("chart should not descend into vacancies:\n%s", view)
	}
}

func TestErrorsStayInTranscript(t *testing.T) {
	app := newTestApp(t)
	typeLine(t, app, "Bob Smith")
	if !strings.Contains(transcript(app), "Error: Invalid name.") {
		t.Fatalf("expected invalid name error:\n%s", transcript(app))
	}
	if app.shell.Ready() {
		t.Fatalf("president should not be initialized")
	}
	if !strings.Contains(app.View(), "Organization is empty.") {
		t.Fatalf("empty chart not shown")
	}
}

func TestHistoryRecall(t *testing.T) {
	app := newTestApp(t)
	typeLine(t, app, "P")
	typeLine(t, app, "DISPLAY")
	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := app.input.Value(); got != "DISPLAY" {
		t.Fatalf("up recalled %q, want DISPLAY", got)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := app.input.Value(); got != "P" {
		t.Fatalf("second up recalled %q, want P", got)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := app.input.Value(); got != "" {
		t.Fatalf("down past newest should clear input, got %q", got)
	}
}

func TestExitQuits(t *testing.T) {
	app := newTestApp(t)
	typeLine(t, app, "P")
	cmd := typeLine(t, app, "EXIT")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("EXIT should quit the program")
	}
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c should quit the program")
	}
}
