package shell

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Handler runs a resolved command. The returned text is printed on success;
// a non-nil error is printed as "Error: <message>".
type Handler func(s *Shell, args []string) (string, error)

// Command describes one verb understood by the interpreter.
type Command struct {
	Verb    string
	Args    []string
	Summary string
	// Mutates marks commands that can change the organization.
	Mutates bool
	Run     Handler
}

// Usage renders the verb and its argument placeholders.
func (c Command) Usage() string {
	if len(c.Args) == 0 {
		return c.Verb
	}
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Verb)
	for _, arg := range c.Args {
		parts = append(parts, "<"+arg+">")
	}
	return strings.Join(parts, " ")
}

// Registry maintains the known commands, keyed by upper-case verb.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: map[string]Command{}}
}

// Register installs a command. Returns an error if the verb already exists.
func (r *Registry) Register(cmd Command) error {
	verb := strings.ToUpper(strings.TrimSpace(cmd.Verb))
	if verb == "" {
		return fmt.Errorf("shell: verb is required")
	}
	if cmd.Run == nil {
		return fmt.Errorf("shell: handler is required for %s", verb)
	}
	cmd.Verb = verb
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.commands[verb]; exists {
		return fmt.Errorf("shell: %s already registered", verb)
	}
	r.commands[verb] = cmd
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(cmd Command) {
	if err := r.Register(cmd); err != nil {
		panic(err)
	}
}

// Resolve looks a verb up case-insensitively.
func (r *Registry) Resolve(verb string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[strings.ToUpper(verb)]
	return cmd, ok
}

// Verbs returns a sorted list of registered verbs.
func (r *Registry) Verbs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	verbs := make([]string, 0, len(r.commands))
	for verb := range r.commands {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)
	return verbs
}
