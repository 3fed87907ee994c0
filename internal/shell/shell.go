// Package shell interprets text commands against an organization engine.
//
// The first accepted line names the President. After that each line is a
// verb followed by whitespace separated arguments.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Keatongull/wackywidget/internal/logbook"
	"github.com/Keatongull/wackywidget/internal/logging"
	"github.com/Keatongull/wackywidget/internal/metrics"
	"github.com/Keatongull/wackywidget/internal/org"
)

const (
	namePrompt    = "Enter the President's name: "
	commandPrompt = "> "

	verbExit = "EXIT"
)

// Shell owns one organization and the plumbing that observes it.
type Shell struct {
	engine   *org.Engine
	commands *Registry
	journal  *logbook.Logbook
	metrics  *metrics.Recorder
	logger   *logging.Logger
	prompt   bool
	done     bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithEngine starts from an existing engine instead of an empty one.
func WithEngine(e *org.Engine) Option {
	return func(s *Shell) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithJournal records every command outcome in the logbook.
func WithJournal(book *logbook.Logbook) Option {
	return func(s *Shell) { s.journal = book }
}

// WithMetrics counts commands and publishes organization gauges.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Shell) { s.metrics = rec }
}

// WithLogger writes diagnostic lines for each command.
func WithLogger(l *logging.Logger) Option {
	return func(s *Shell) { s.logger = l }
}

// WithPrompt makes Run print a prompt before reading each line.
func WithPrompt(enabled bool) Option {
	return func(s *Shell) { s.prompt = enabled }
}

// WithRegistry replaces the built-in command set.
func WithRegistry(r *Registry) Option {
	return func(s *Shell) {
		if r != nil {
			s.commands = r
		}
	}
}

// New builds a shell with the built-in commands.
func New(opts ...Option) *Shell {
	s := &Shell{
		engine:   org.New(),
		commands: Builtins(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.metrics.SetStats(s.engine.Stats())
	return s
}

// Engine exposes the organization for read-only views.
func (s *Shell) Engine() *org.Engine {
	return s.engine
}

// Commands returns the registry backing this shell.
func (s *Shell) Commands() *Registry {
	return s.commands
}

// Journal returns the logbook, which may be nil.
func (s *Shell) Journal() *logbook.Logbook {
	return s.journal
}

// Ready reports whether a President has been named.
func (s *Shell) Ready() bool {
	_, ok := s.engine.President()
	return ok
}

// Done reports whether EXIT has been executed.
func (s *Shell) Done() bool {
	return s.done
}

// Prompt is the text shown before the next line is read.
func (s *Shell) Prompt() string {
	if s.Ready() {
		return commandPrompt
	}
	return namePrompt
}

// Execute interprets one input line and returns the text to print, without
// a trailing newline. Empty output means nothing should be printed.
func (s *Shell) Execute(line string) string {
	if s.done {
		return ""
	}
	trimmed := strings.TrimSpace(line)
	if !s.Ready() {
		return s.initialize(trimmed)
	}
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return ""
	}

	cmd, ok := s.commands.Resolve(fields[0])
	if !ok {
		s.logger.Printf("unknown command %q", fields[0])
		s.journal.Warn("%s: unknown command", trimmed)
		return "Error: Unknown command"
	}
	args := fields[1:]
	if len(args) != len(cmd.Args) {
		s.journal.Warn("%s: wrong number of arguments", trimmed)
		return "Error: usage: " + cmd.Usage()
	}

	text, err := cmd.Run(s, args)
	s.record(cmd, trimmed, text, err)
	if err != nil {
		return "Error: " + err.Error()
	}
	return strings.TrimRight(text, "\n")
}

func (s *Shell) initialize(name string) string {
	if strings.EqualFold(name, verbExit) {
		s.done = true
		return ""
	}
	out, err := s.engine.InitializePresident(name)
	s.metrics.Observe("initialize", err)
	if err != nil {
		s.logger.Printf("initialize %q: %v", name, err)
		s.journal.Warn("initialize %q: %s", name, err)
		return "Error: " + err.Error()
	}
	s.metrics.SetStats(s.engine.Stats())
	s.logger.Printf("initialized president %s", name)
	s.journal.Info("%s", out)
	return out.String()
}

func (s *Shell) record(cmd Command, line, text string, err error) {
	s.metrics.Observe(strings.ToLower(cmd.Verb), err)
	if err != nil {
		s.logger.Printf("%s failed: %v", line, err)
		s.journal.Error("%s: %s", line, err)
		return
	}
	s.logger.Printf("%s ok", line)
	if cmd.Mutates {
		s.journal.Info("%s: %s", line, text)
		s.metrics.SetStats(s.engine.Stats())
	}
}

// Run reads lines from in until EXIT, end of input, or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for !s.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt {
			if _, err := io.WriteString(out, s.Prompt()); err != nil {
				return fmt.Errorf("shell: write prompt: %w", err)
			}
		}
		if !scanner.Scan() {
			break
		}
		text := s.Execute(scanner.Text())
		if text == "" {
			continue
		}
		if _, err := fmt.Fprintln(out, text); err != nil {
			return fmt.Errorf("shell: write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("shell: read input: %w", err)
	}
	return nil
}
