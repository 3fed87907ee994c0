package shell

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Keatongull/wackywidget/internal/org"
)

// Builtins returns a registry holding every organization command.
func Builtins() *Registry {
	r := NewRegistry()
	r.MustRegister(Command{
		Verb: "HIRE", Args: []string{"manager", "name"}, Mutates: true,
		Summary: "hire a new employee one rank below the manager",
		Run:     outcome(func(e *org.Engine, a []string) (org.Outcome, error) { return e.Hire(a[0], a[1]) }),
	})
	r.MustRegister(Command{
		Verb: "FIRE", Args: []string{"manager", "name"}, Mutates: true,
		Summary: "remove someone the manager outranks",
		Run:     outcome(func(e *org.Engine, a []string) (org.Outcome, error) { return e.Fire(a[0], a[1]) }),
	})
	r.MustRegister(Command{
		Verb: "QUIT", Args: []string{"name"}, Mutates: true,
		Summary: "leave the company",
		Run:     outcome(func(e *org.Engine, a []string) (org.Outcome, error) { return e.Quit(a[0]) }),
	})
	r.MustRegister(Command{
		Verb: "LAYOFF", Args: []string{"manager", "name"}, Mutates: true,
		Summary: "move someone to a comparable opening, or remove them",
		Run:     outcome(func(e *org.Engine, a []string) (org.Outcome, error) { return e.Layoff(a[0], a[1]) }),
	})
	r.MustRegister(Command{
		Verb: "TRANSFER", Args: []string{"initiator", "name", "destination"}, Mutates: true,
		Summary: "move an employee under another manager of the same rank",
		Run: outcome(func(e *org.Engine, a []string) (org.Outcome, error) {
			return e.Transfer(a[0], a[1], a[2])
		}),
	})
	r.MustRegister(Command{
		Verb: "PROMOTE", Args: []string{"manager", "name"}, Mutates: true,
		Summary: "raise an employee one rank under the receiving manager",
		Run:     outcome(func(e *org.Engine, a []string) (org.Outcome, error) { return e.Promote(a[0], a[1]) }),
	})
	r.MustRegister(Command{Verb: "DISPLAY", Summary: "print the organization chart", Run: display})
	r.MustRegister(Command{Verb: "EXPORT", Summary: "print the full chart as YAML, vacancy sub-trees included", Run: export})
	r.MustRegister(Command{Verb: "WHO", Args: []string{"name"}, Summary: "describe one employee", Run: who})
	r.MustRegister(Command{Verb: "STATS", Summary: "count people and vacancies per rank", Run: stats})
	r.MustRegister(Command{Verb: "HELP", Summary: "list commands", Run: help})
	r.MustRegister(Command{Verb: verbExit, Summary: "end the session", Run: exit})
	return r
}

func outcome(op func(*org.Engine, []string) (org.Outcome, error)) Handler {
	return func(s *Shell, args []string) (string, error) {
		out, err := op(s.engine, args)
		if err != nil {
			return "", err
		}
		return out.String(), nil
	}
}

func display(s *Shell, _ []string) (string, error) {
	var b strings.Builder
	if err := s.engine.Render(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func export(s *Shell, _ []string) (string, error) {
	chart, ok := s.engine.Snapshot()
	if !ok {
		return "Organization is empty.", nil
	}
	data, err := yaml.Marshal(chart)
	if err != nil {
		return "", fmt.Errorf("export chart: %w", err)
	}
	return string(data), nil
}

func who(s *Shell, args []string) (string, error) {
	m, ok := s.engine.Lookup(args[0])
	if !ok {
		return "", &org.Error{Kind: org.KindNotFound, Msg: fmt.Sprintf("Employee name %s does not exist.", args[0])}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", m.Rank, m.Name)
	if m.Boss != "" {
		fmt.Fprintf(&b, ", reports to %s", m.Boss)
	}
	fmt.Fprintf(&b, ", %d direct report(s)", m.Reports)
	if m.Hidden {
		b.WriteString(", not shown under a vacancy")
	}
	return b.String(), nil
}

func stats(s *Shell, _ []string) (string, error) {
	st := s.engine.Stats()
	var people, open []string
	for _, rank := range org.Ranks {
		people = append(people, fmt.Sprintf("%s %d", rank, st.Headcount[rank]))
		if n := st.Vacancies[rank]; n > 0 {
			open = append(open, fmt.Sprintf("%s %d", rank, n))
		}
	}
	vacancies := "none"
	if len(open) > 0 {
		vacancies = strings.Join(open, ", ")
	}
	return fmt.Sprintf("Headcount: %d (%s)\nVacancies: %s", st.Total(), strings.Join(people, ", "), vacancies), nil
}

func help(s *Shell, _ []string) (string, error) {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, verb := range s.commands.Verbs() {
		cmd, _ := s.commands.Resolve(verb)
		fmt.Fprintf(&b, "\n  %-40s %s", cmd.Usage(), cmd.Summary)
	}
	return b.String(), nil
}

func exit(s *Shell, _ []string) (string, error) {
	s.done = true
	return "", nil
}
