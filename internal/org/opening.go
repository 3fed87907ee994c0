package org

// opening is a place a report can go: appended under manager when vacancy is
// noNode, otherwise into that Vacancy's slot.
type opening struct {
	manager NodeID
	vacancy NodeID
}

// hasSpot applies the capacity policy to one manager. A free slot wins over
// reusing a Vacancy.
func (t *tree) hasSpot(manager NodeID) (opening, bool) {
	m := t.get(manager)
	if m == nil {
		return opening{}, false
	}
	if len(m.reports) < m.rank.MaxReports() {
		return opening{manager: manager}, true
	}
	if v := t.firstVacancy(manager); v != noNode {
		return opening{manager: manager, vacancy: v}, true
	}
	return opening{}, false
}

func (t *tree) firstVacancy(manager NodeID) NodeID {
	for _, id := range t.get(manager).reports {
		if t.get(id).isVacancy() {
			return id
		}
	}
	return noNode
}

// hostOpening is hasSpot restricted to people. Vacancies never take new reports.
func (t *tree) hostOpening(manager NodeID) (opening, bool) {
	m := t.get(manager)
	if m == nil || m.isVacancy() {
		return opening{}, false
	}
	return t.hasSpot(manager)
}

// findOpening scans outward from anchor for a slot of the given rank. Rings
// are fixed per rank and the first hit wins.
func (t *tree) findOpening(anchor NodeID, rank Rank) (opening, bool) {
	switch rank {
	case RankWorker:
		return t.findWorkerOpening(anchor)
	case RankSupervisor:
		return t.findSupervisorOpening(anchor)
	case RankVicePresident:
		return t.hostOpening(anchor)
	default:
		return opening{}, false
	}
}

func (t *tree) findWorkerOpening(supervisor NodeID) (opening, bool) {
	if op, ok := t.hostOpening(supervisor); ok {
		return op, true
	}
	vp := t.bossOf(supervisor)
	if vp == noNode {
		return opening{}, false
	}
	if op, ok := t.firstHostAmong(t.get(vp).reports, supervisor); ok {
		return op, true
	}
	president := t.bossOf(vp)
	if president == noNode {
		return opening{}, false
	}
	for _, other := range t.get(president).reports {
		if other == vp {
			continue
		}
		if op, ok := t.firstHostAmong(t.get(other).reports, noNode); ok {
			return op, true
		}
	}
	return opening{}, false
}

func (t *tree) findSupervisorOpening(vp NodeID) (opening, bool) {
	if op, ok := t.hostOpening(vp); ok {
		return op, true
	}
	president := t.bossOf(vp)
	if president == noNode {
		return opening{}, false
	}
	return t.firstHostAmong(t.get(president).reports, vp)
}

func (t *tree) firstHostAmong(candidates []NodeID, skip NodeID) (opening, bool) {
	for _, id := range candidates {
		if id == skip {
			continue
		}
		if op, ok := t.hostOpening(id); ok {
			return op, true
		}
	}
	return opening{}, false
}

func (t *tree) bossOf(id NodeID) NodeID {
	n := t.get(id)
	if n == nil {
		return noNode
	}
	return n.boss
}
