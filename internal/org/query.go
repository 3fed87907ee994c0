package org

// Member is a read-only view of one employee.
type Member struct {
	Name    string
	Rank    Rank
	Boss    string
	Reports int
	// Hidden is true when a Vacancy sits between the member and the
	// President, which keeps the member out of the rendered chart.
	Hidden bool
}

// Lookup describes a current employee.
func (e *Engine) Lookup(name string) (Member, bool) {
	id, ok := e.names.lookup(name)
	if !ok {
		return Member{}, false
	}
	n := e.tree.get(id)
	m := Member{Name: n.name, Rank: n.rank, Reports: len(n.reports)}
	if n.boss != noNode {
		m.Boss = e.label(n.boss)
	}
	for cur := n.boss; cur != noNode; cur = e.tree.get(cur).boss {
		if e.tree.get(cur).isVacancy() {
			m.Hidden = true
			break
		}
	}
	return m, true
}

// Stats counts people and vacancies per rank across the whole tree.
type Stats struct {
	Headcount map[Rank]int
	Vacancies map[Rank]int
}

// Total is the number of people in the organization.
func (s Stats) Total() int {
	total := 0
	for _, n := range s.Headcount {
		total += n
	}
	return total
}

// Stats includes people hidden under vacancies.
func (e *Engine) Stats() Stats {
	s := Stats{Headcount: map[Rank]int{}, Vacancies: map[Rank]int{}}
	for _, r := range Ranks {
		s.Headcount[r] = 0
		s.Vacancies[r] = 0
	}
	if e.president == noNode {
		return s
	}
	s.Headcount[RankPresident] = 1
	for _, id := range e.tree.descendants(e.president) {
		n := e.tree.get(id)
		if n.isVacancy() {
			s.Vacancies[n.rank]++
		} else {
			s.Headcount[n.rank]++
		}
	}
	return s
}

// Chart is a full copy of the tree, vacancy sub-trees included.
type Chart struct {
	Rank    Rank    `yaml:"rank"`
	Name    string  `yaml:"name,omitempty"`
	Vacancy bool    `yaml:"vacancy,omitempty"`
	Reports []Chart `yaml:"reports,omitempty"`
}

// Snapshot copies the tree. ok is false before a President exists.
func (e *Engine) Snapshot() (Chart, bool) {
	if e.president == noNode {
		return Chart{}, false
	}
	var build func(NodeID) Chart
	build = func(id NodeID) Chart {
		n := e.tree.get(id)
		c := Chart{Rank: n.rank, Name: n.name, Vacancy: n.isVacancy()}
		for _, child := range n.reports {
			c.Reports = append(c.Reports, build(child))
		}
		return c
	}
	return build(e.president), true
}
