package org

import (
	"fmt"
	"io"
	"strings"
)

// Line is one row of the org chart.
type Line struct {
	Depth   int
	Rank    Rank
	Name    string
	Vacancy bool
}

func (l Line) String() string {
	if l.Vacancy {
		return "VACANCY: " + l.Rank.String()
	}
	return fmt.Sprintf("%s: %s", l.Rank, l.Name)
}

// Walk visits the chart in pre-order starting at the President. A Vacancy is
// visited but its preserved reports are not; they are still in the tree and
// addressable by name.
func (e *Engine) Walk(visit func(Line)) {
	if e.president == noNode {
		return
	}
	var walk func(id NodeID, depth int)
	walk = func(id NodeID, depth int) {
		n := e.tree.get(id)
		switch n.kind {
		case NodeVacancy:
			visit(Line{Depth: depth, Rank: n.rank, Vacancy: true})
		case NodePerson:
			visit(Line{Depth: depth, Rank: n.rank, Name: n.name})
			for _, child := range n.reports {
				walk(child, depth+1)
			}
		}
	}
	walk(e.president, 0)
}

// Lines collects Walk into a slice.
func (e *Engine) Lines() []Line {
	var out []Line
	e.Walk(func(l Line) { out = append(out, l) })
	return out
}

// Render writes the chart as text, one tab of indentation per level.
func (e *Engine) Render(w io.Writer) error {
	if e.president == noNode {
		_, err := io.WriteString(w, "Organization is empty.\n")
		return err
	}
	var b strings.Builder
	e.Walk(func(l Line) {
		b.WriteString(strings.Repeat("\t", l.Depth))
		b.WriteString(l.String())
		b.WriteByte('\n')
	})
	_, err := io.WriteString(w, b.String())
	return err
}
