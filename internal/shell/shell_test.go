package shell

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Keatongull/wackywidget/internal/logbook"
	"github.com/Keatongull/wackywidget/internal/metrics"
	"github.com/Keatongull/wackywidget/internal/org"
)

// session feeds lines to a fresh shell the way a piped stdin would.
func session(t *testing.T, lines ...string) string {
	t.Helper()
	var out strings.Builder
	s := New()
	require.NoError(t, s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n"), &out))
	return out.String()
}

func TestSessionScenarios(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
		avoid []string
	}{
		{
			name:  "valid president",
			lines: []string{"Alice", "DISPLAY", "EXIT"},
			want:  []string{"Success: Initialized President Alice.", "President: Alice"},
		},
		{
			name:  "name with spaces reprompts",
			lines: []string{"Bob Smith", "EXIT"},
			want:  []string{"Error: Invalid name."},
			avoid: []string{"Initialized"},
		},
		{
			name:  "empty names reprompt until valid",
			lines: []string{"", "", "ValidName", "DISPLAY", "EXIT"},
			want:  []string{"Error: Invalid name.\nError: Invalid name.\nSuccess: Initialized President ValidName.", "President: ValidName"},
		},
		{
			name:  "numeric and symbol names are valid",
			lines: []string{"123", "HIRE 123 Test@123", "DISPLAY", "EXIT"},
			want:  []string{"President: 123\n\tVice President: Test@123"},
		},
		{
			name:  "verbs are case insensitive",
			lines: []string{"P", "hire P VP1", "Hire VP1 S1", "display"},
			want:  []string{"President: P\n\tVice President: VP1\n\t\tSupervisor: S1\n"},
		},
		{
			name:  "vacancy hides sub-tree but keeps it live",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE VP1 S1", "HIRE S1 W1", "FIRE President1 VP1", "DISPLAY", "FIRE President1 S1", "EXIT"},
			want: []string{
				"VP1 has been removed from the company. Vacancy remains.",
				"President: President1\n\tVACANCY: Vice President\n",
				"S1 has been removed from the company. Vacancy remains.",
			},
			avoid: []string{"Supervisor: S1"},
		},
		{
			name:  "peer cannot fire",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE President1 VP2", "HIRE VP1 S1", "FIRE VP2 S1", "EXIT"},
			want:  []string{"Error: VP2 is not in the hierarchy of S1."},
		},
		{
			name:  "layoff without opening removes",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE President1 VP2", "LAYOFF President1 VP1", "EXIT"},
			want:  []string{"No comparable openings found. VP1 has been removed from the company."},
		},
		{
			name: "layoff worker lands back in own group",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE VP1 S1", "HIRE S1 W1", "HIRE S1 W2", "HIRE S1 W3",
				"FIRE S1 W3", "HIRE S1 W4", "LAYOFF S1 W1", "EXIT"},
			want: []string{"Successfully placed W1 under S1."},
		},
		{
			name:  "president transfers across vice presidents",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE President1 VP2", "HIRE VP1 S1", "HIRE VP2 S2", "TRANSFER President1 S1 VP2", "DISPLAY"},
			want:  []string{"Successfully placed S1 under VP2.", "\tVice President: VP2\n\t\tSupervisor: S2\n\t\tSupervisor: S1\n"},
		},
		{
			name:  "supervisor cannot transfer",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE VP1 S1", "HIRE VP1 S2", "HIRE S1 W1", "TRANSFER S1 W1 S2"},
			want:  []string{"Error: Initiator S1 does not have permission to transfer employees."},
		},
		{
			name:  "promote worker",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE VP1 S1", "HIRE S1 W1", "PROMOTE VP1 W1", "DISPLAY"},
			want:  []string{"Successfully promoted W1 under VP1.", "Supervisor: W1"},
		},
		{
			name:  "promotion is one level",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE VP1 S1", "HIRE S1 W1", "PROMOTE President1 W1"},
			want:  []string{"Error: Promotions can only be one level."},
		},
		{
			name:  "promotion needs room",
			lines: []string{"President1", "HIRE President1 VP1", "HIRE VP1 S1", "HIRE VP1 S2", "HIRE VP1 S3", "HIRE S1 W1", "PROMOTE VP1 W1"},
			want:  []string{"Error: Receiving manager VP1 has reached maximum direct reports."},
		},
		{
			name:  "unknown command and bad arity",
			lines: []string{"P", "DANCE", "HIRE P", "EXIT"},
			want:  []string{"Error: Unknown command", "Error: usage: HIRE <manager> <name>"},
		},
		{
			name:  "exit before president",
			lines: []string{"exit", "Alice", "DISPLAY"},
			avoid: []string{"Alice"},
		},
		{
			name:  "lines after exit are ignored",
			lines: []string{"P", "EXIT", "HIRE P VP1"},
			want:  []string{"Success: Initialized President P."},
			avoid: []string{"VP1"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := session(t, tc.lines...)
			for _, w := range tc.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tc.avoid {
				assert.NotContains(t, out, a)
			}
		})
	}
}

func TestExecuteIgnoresBlankLinesAfterInit(t *testing.T) {
	s := New()
	assert.Equal(t, "Success: Initialized President P.", s.Execute("  P  "))
	assert.True(t, s.Ready())
	assert.Equal(t, "", s.Execute("   "))
	assert.Equal(t, "President: P", s.Execute("DISPLAY"))
	assert.Equal(t, "", s.Execute("EXIT"))
	assert.True(t, s.Done())
	assert.Equal(t, "", s.Execute("DISPLAY"))
}

func TestPromptsFollowState(t *testing.T) {
	var out strings.Builder
	s := New(WithPrompt(true))
	require.NoError(t, s.Run(context.Background(), strings.NewReader("P\nEXIT\n"), &out))
	assert.Equal(t, namePrompt+"Success: Initialized President P.\n"+commandPrompt, out.String())
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := New().Run(ctx, strings.NewReader("P\n"), &strings.Builder{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWhoAndStats(t *testing.T) {
	s := New()
	for _, line := range []string{"P", "HIRE P VP1", "HIRE VP1 S1", "HIRE S1 W1", "QUIT VP1"} {
		s.Execute(line)
	}
	assert.Equal(t, "Supervisor: S1, reports to VACANCY: Vice President, 1 direct report(s), not shown under a vacancy", s.Execute("WHO S1"))
	assert.Equal(t, "President: P, 1 direct report(s)", s.Execute("who P"))
	assert.Equal(t, "Error: Employee name VP1 does not exist.", s.Execute("WHO VP1"))
	assert.Equal(t,
		"Headcount: 3 (President 1, Vice President 0, Supervisor 1, Worker 1)\nVacancies: Vice President 1",
		s.Execute("STATS"))
}

func TestExportIncludesHiddenSubtree(t *testing.T) {
	s := New()
	empty, err := export(s, nil)
	require.NoError(t, err)
	assert.Equal(t, "Organization is empty.", empty)
	for _, line := range []string{"x", "HIRE x VP1", "HIRE VP1 S1", "FIRE x VP1"} {
		s.Execute(line)
	}
	var chart org.Chart
	require.NoError(t, yaml.Unmarshal([]byte(s.Execute("EXPORT")), &chart))
	assert.Equal(t, "x", chart.Name)
	require.Len(t, chart.Reports, 1)
	assert.True(t, chart.Reports[0].Vacancy)
	require.Len(t, chart.Reports[0].Reports, 1)
	assert.Equal(t, "S1", chart.Reports[0].Reports[0].Name)
}

func TestHelpListsEveryVerb(t *testing.T) {
	s := New()
	s.Execute("P")
	out := s.Execute("HELP")
	for _, verb := range s.Commands().Verbs() {
		assert.Contains(t, out, verb)
	}
	assert.Contains(t, out, "TRANSFER <initiator> <name> <destination>")
}

func TestJournalAndMetricsObserveCommands(t *testing.T) {
	book, err := logbook.New("")
	require.NoError(t, err)
	rec := metrics.NewRecorder()
	s := New(WithJournal(book), WithMetrics(rec))

	s.Execute("P")
	s.Execute("HIRE P VP1")
	s.Execute("HIRE P VP1")
	s.Execute("DISPLAY")
	s.Execute("BOGUS")

	lines, total := book.Tail(10)
	require.Equal(t, 4, total)
	assert.Contains(t, lines[0], "Success: Initialized President P.")
	assert.Contains(t, lines[1], "INFO")
	assert.Contains(t, lines[1], "HIRE P VP1: Successfully hired VP1 under P.")
	assert.Contains(t, lines[2], "ERROR")
	assert.Contains(t, lines[2], "Employee name VP1 already exists.")
	assert.Contains(t, lines[3], "WARN")

	series, err := testutil.GatherAndCount(rec.Registry(), "wackywidget_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 4, series, "initialize ok, hire ok, hire duplicate, display ok")
}

func TestRegistryRejectsDuplicatesAndResolvesCaseInsensitively(t *testing.T) {
	r := NewRegistry()
	noop := func(*Shell, []string) (string, error) { return "", nil }
	require.NoError(t, r.Register(Command{Verb: "ping", Run: noop}))
	assert.Error(t, r.Register(Command{Verb: "PING", Run: noop}))
	assert.Error(t, r.Register(Command{Verb: " ", Run: noop}))
	assert.Error(t, r.Register(Command{Verb: "pong"}))

	cmd, ok := r.Resolve("PiNg")
	require.True(t, ok)
	assert.Equal(t, "PING", cmd.Verb)
	assert.Equal(t, []string{"PING"}, r.Verbs())
	assert.Panics(t, func() { r.MustRegister(Command{Verb: "ping", Run: noop}) })
}

func TestCustomRegistry(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(Command{Verb: "PING", Run: func(*Shell, []string) (string, error) { return "pong", nil }})
	s := New(WithRegistry(r))
	s.Execute("P")
	assert.Equal(t, "pong", s.Execute("ping"))
	assert.Equal(t, "Error: Unknown command", s.Execute("DISPLAY"))
}
