package org

// NodeID is a stable handle into the tree arena. The zero value means "no node".
type NodeID int

const noNode NodeID = 0

// NodeKind tags the two variants a node can take.
type NodeKind int

const (
	NodePerson NodeKind = iota
	NodeVacancy
)

type node struct {
	kind    NodeKind
	name    string
	rank    Rank
	boss    NodeID
	reports []NodeID
}

func (n *node) isVacancy() bool { return n.kind == NodeVacancy }

// tree is an arena of nodes linked by NodeID. It knows nothing about names;
// the registry sits next to it in the Engine.
type tree struct {
	nodes map[NodeID]*node
	next  NodeID
}

func newTree() *tree {
	return &tree{nodes: map[NodeID]*node{}, next: 1}
}

func (t *tree) add(n *node) NodeID {
	id := t.next
	t.next++
	t.nodes[id] = n
	return id
}

func (t *tree) newPerson(name string, rank Rank) NodeID {
	return t.add(&node{kind: NodePerson, name: name, rank: rank})
}

func (t *tree) newVacancy(rank Rank) NodeID {
	return t.add(&node{kind: NodeVacancy, rank: rank})
}

func (t *tree) get(id NodeID) *node {
	return t.nodes[id]
}

func (t *tree) drop(id NodeID) {
	delete(t.nodes, id)
}

func (t *tree) indexOf(boss, child NodeID) int {
	b := t.get(boss)
	if b == nil {
		return -1
	}
	for i, id := range b.reports {
		if id == child {
			return i
		}
	}
	return -1
}

// detach unlinks id from its boss, keeping the order of the remaining reports.
func (t *tree) detach(id NodeID) {
	n := t.get(id)
	if n == nil || n.boss == noNode {
		return
	}
	b := t.get(n.boss)
	if idx := t.indexOf(n.boss, id); idx >= 0 {
		b.reports = append(b.reports[:idx:idx], b.reports[idx+1:]...)
	}
	n.boss = noNode
}

// replace puts next into old's slot under old's boss. old is left unlinked.
func (t *tree) replace(old, next NodeID) {
	o := t.get(old)
	n := t.get(next)
	idx := t.indexOf(o.boss, old)
	if idx < 0 {
		return
	}
	t.get(o.boss).reports[idx] = next
	n.boss = o.boss
	o.boss = noNode
}

func (t *tree) appendReport(boss, child NodeID) {
	b := t.get(boss)
	b.reports = append(b.reports, child)
	t.get(child).boss = boss
}

// adopt hands children to a new parent, replacing whatever it had.
func (t *tree) adopt(parent NodeID, children []NodeID) {
	p := t.get(parent)
	p.reports = append([]NodeID(nil), children...)
	for _, c := range p.reports {
		t.get(c).boss = parent
	}
}

// isAncestor reports whether anc is reachable by walking boss links up from id.
// A node is not its own ancestor.
func (t *tree) isAncestor(anc, id NodeID) bool {
	n := t.get(id)
	if n == nil {
		return false
	}
	for cur := n.boss; cur != noNode; cur = t.get(cur).boss {
		if cur == anc {
			return true
		}
	}
	return false
}

// descendants lists every node below id in pre-order.
func (t *tree) descendants(id NodeID) []NodeID {
	var out []NodeID
	var walk func(NodeID)
	walk = func(cur NodeID) {
		for _, child := range t.get(cur).reports {
			out = append(out, child)
			walk(child)
		}
	}
	walk(id)
	return out
}
