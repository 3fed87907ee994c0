package org

import (
	"sort"
	"strings"
)

// ValidName accepts any non-empty string without a space character. Digits,
// punctuation and other whitespace are allowed.
func ValidName(name string) bool {
	return name != "" && !strings.Contains(name, " ")
}

// registry maps every live person's name to its node.
type registry struct {
	ids map[string]NodeID
}

func newRegistry() *registry {
	return &registry{ids: map[string]NodeID{}}
}

func (r *registry) add(name string, id NodeID) {
	r.ids[name] = id
}

func (r *registry) remove(name string) {
	delete(r.ids, name)
}

func (r *registry) lookup(name string) (NodeID, bool) {
	id, ok := r.ids[name]
	return id, ok
}

func (r *registry) has(name string) bool {
	_, ok := r.ids[name]
	return ok
}

func (r *registry) len() int {
	return len(r.ids)
}

func (r *registry) names() []string {
	out := make([]string, 0, len(r.ids))
	for name := range r.ids {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
