// Package org holds the hierarchy engine: a four-rank tree with per-rank
// capacity, vacancies that keep sub-trees alive when a manager leaves, and the
// hire/fire/quit/layoff/transfer/promote operations that reshape it.
//
// Every operation validates all of its preconditions before touching the tree,
// so a returned error always means nothing changed. An Engine is meant to be
// driven by a single caller and does no locking.
package org

// Engine owns one organization.
type Engine struct {
	tree      *tree
	names     *registry
	president NodeID
}

// New returns an empty organization with no President.
func New() *Engine {
	return &Engine{tree: newTree(), names: newRegistry()}
}

// President returns the President's name once initialized.
func (e *Engine) President() (string, bool) {
	if e.president == noNode {
		return "", false
	}
	return e.tree.get(e.president).name, true
}

// Has reports whether name belongs to a current employee.
func (e *Engine) Has(name string) bool {
	return e.names.has(name)
}

// Names returns every current employee name, sorted.
func (e *Engine) Names() []string {
	return e.names.names()
}

// InitializePresident creates the root. It can succeed only once.
func (e *Engine) InitializePresident(name string) (Outcome, error) {
	if !ValidName(name) {
		return Outcome{}, fail(KindInvalidName, "Invalid name.")
	}
	if current, ok := e.President(); ok {
		return Outcome{}, fail(KindPresidentExists, "President %s is already initialized.", current)
	}
	id := e.tree.newPerson(name, RankPresident)
	e.president = id
	e.names.add(name, id)
	return Outcome{Action: ActionInitialized, Employee: name}, nil
}

// Hire adds newName under managerName, either in a free slot or in place of a
// Vacancy. A hire into a Vacancy takes the Vacancy's rank and its reports.
func (e *Engine) Hire(managerName, newName string) (Outcome, error) {
	if !ValidName(newName) {
		return Outcome{}, fail(KindInvalidName, "Invalid name.")
	}
	managerID, ok := e.names.lookup(managerName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Hiring manager %s does not exist.", managerName)
	}
	if e.names.has(newName) {
		return Outcome{}, fail(KindDuplicateName, "Employee name %s already exists.", newName)
	}
	manager := e.tree.get(managerID)
	if manager.rank == RankWorker {
		return Outcome{}, fail(KindPermissionDenied, "A worker cannot hire employees.")
	}
	spot, ok := e.tree.hasSpot(managerID)
	if !ok {
		return Outcome{}, fail(KindCapacityExceeded, "Hiring manager %s has reached maximum direct reports.", managerName)
	}

	if spot.vacancy == noNode {
		id := e.tree.newPerson(newName, manager.rank.Junior())
		e.tree.appendReport(managerID, id)
		e.names.add(newName, id)
		return Outcome{Action: ActionHired, Employee: newName, Manager: managerName}, nil
	}
	vacancy := e.tree.get(spot.vacancy)
	id := e.tree.newPerson(newName, vacancy.rank)
	e.tree.replace(spot.vacancy, id)
	e.tree.adopt(id, vacancy.reports)
	e.tree.drop(spot.vacancy)
	e.names.add(newName, id)
	return Outcome{Action: ActionPlaced, Employee: newName, Manager: managerName}, nil
}

// Fire removes targetName on behalf of a strict superior.
func (e *Engine) Fire(managerName, targetName string) (Outcome, error) {
	if e.president == noNode {
		return Outcome{}, fail(KindNoPresident, "No president initialized.")
	}
	if e.isPresident(targetName) {
		return Outcome{}, fail(KindPermissionDenied, "Cannot fire the President.")
	}
	managerID, ok := e.names.lookup(managerName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Firing manager %s does not exist.", managerName)
	}
	targetID, ok := e.names.lookup(targetName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Employee name %s does not exist.", targetName)
	}
	if !e.tree.isAncestor(managerID, targetID) {
		return Outcome{}, fail(KindOutOfHierarchy, "%s is not in the hierarchy of %s.", managerName, targetName)
	}
	return e.remove(targetID), nil
}

// Quit removes name at the employee's own request.
func (e *Engine) Quit(name string) (Outcome, error) {
	if e.president == noNode {
		return Outcome{}, fail(KindNoPresident, "No president initialized.")
	}
	if e.isPresident(name) {
		return Outcome{}, fail(KindPermissionDenied, "President cannot quit.")
	}
	id, ok := e.names.lookup(name)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Employee name %s does not exist.", name)
	}
	return e.remove(id), nil
}

// Layoff moves targetName to the nearest same-rank opening, or removes them
// when none exists. Both are successful outcomes.
func (e *Engine) Layoff(managerName, targetName string) (Outcome, error) {
	if e.president == noNode {
		return Outcome{}, fail(KindNoPresident, "No president initialized.")
	}
	if e.isPresident(targetName) {
		return Outcome{}, fail(KindPermissionDenied, "Cannot lay off the President.")
	}
	managerID, ok := e.names.lookup(managerName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Manager %s does not exist.", managerName)
	}
	targetID, ok := e.names.lookup(targetName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Employee name %s does not exist.", targetName)
	}
	if !e.tree.isAncestor(managerID, targetID) {
		return Outcome{}, fail(KindOutOfHierarchy, "%s is not in the hierarchy of %s.", managerName, targetName)
	}

	target := e.tree.get(targetID)
	spot, ok := e.tree.findOpening(target.boss, target.rank)
	if !ok {
		out := e.remove(targetID)
		out.Action = ActionLaidOff
		return out, nil
	}
	e.tree.detach(targetID)
	released := e.place(targetID, spot)
	return Outcome{
		Action:   ActionRelocated,
		Employee: targetName,
		Manager:  e.label(spot.manager),
		Released: released,
	}, nil
}

// Transfer moves employeeName, at the same rank, under destinationName. The
// initiator must be a President or Vice President above both ends.
func (e *Engine) Transfer(initiatorName, employeeName, destinationName string) (Outcome, error) {
	initiatorID, ok := e.names.lookup(initiatorName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Initiator %s does not exist.", initiatorName)
	}
	employeeID, ok := e.names.lookup(employeeName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Employee name %s does not exist.", employeeName)
	}
	destinationID, ok := e.names.lookup(destinationName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Destination manager %s does not exist.", destinationName)
	}
	initiator := e.tree.get(initiatorID)
	if initiator.rank != RankPresident && initiator.rank != RankVicePresident {
		return Outcome{}, fail(KindPermissionDenied, "Initiator %s does not have permission to transfer employees.", initiatorName)
	}
	if !e.tree.isAncestor(initiatorID, employeeID) {
		return Outcome{}, fail(KindOutOfHierarchy, "%s does not manage %s.", initiatorName, employeeName)
	}
	if initiatorID != destinationID && !e.tree.isAncestor(initiatorID, destinationID) {
		return Outcome{}, fail(KindOutOfHierarchy, "%s does not manage %s.", initiatorName, destinationName)
	}
	employee := e.tree.get(employeeID)
	destination := e.tree.get(destinationID)
	if employee.rank != destination.rank.Junior() {
		return Outcome{}, fail(KindRankMismatch, "Employee %s cannot be transferred to %s due to role mismatch.", employeeName, destinationName)
	}
	if _, ok := e.tree.hasSpot(destinationID); !ok {
		return Outcome{}, fail(KindCapacityExceeded, "Destination manager %s has reached maximum direct reports.", destinationName)
	}

	spot := opening{manager: destinationID, vacancy: e.tree.firstVacancy(destinationID)}
	e.tree.detach(employeeID)
	released := e.place(employeeID, spot)
	return Outcome{
		Action:   ActionTransferred,
		Employee: employeeName,
		Manager:  destinationName,
		Released: released,
	}, nil
}

// Promote raises targetName one rank and places them directly under
// receiverName. The receiver must sit exactly two ranks above the target, so a
// promotion never produces two people of the same rank in one reporting line.
func (e *Engine) Promote(receiverName, targetName string) (Outcome, error) {
	receiverID, ok := e.names.lookup(receiverName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Receiving manager %s does not exist.", receiverName)
	}
	targetID, ok := e.names.lookup(targetName)
	if !ok {
		return Outcome{}, fail(KindNotFound, "Employee name %s does not exist.", targetName)
	}
	receiver := e.tree.get(receiverID)
	target := e.tree.get(targetID)
	if target.rank == RankVicePresident || target.rank == RankPresident {
		return Outcome{}, fail(KindRankMismatch, "%s cannot be promoted further.", targetName)
	}
	if receiver.rank == RankWorker || receiver.rank == RankSupervisor {
		return Outcome{}, fail(KindPermissionDenied, "%s cannot promote employees.", receiverName)
	}
	if receiver.rank == RankPresident && target.rank == RankWorker {
		return Outcome{}, fail(KindRankMismatch, "Promotions can only be one level.")
	}
	promoted, _ := target.rank.Senior()
	if promoted != receiver.rank.Junior() {
		return Outcome{}, fail(KindRankMismatch, "%s cannot promote %s: a %s would report to a %s.",
			receiverName, targetName, promoted, receiver.rank)
	}
	if _, ok := e.tree.hasSpot(receiverID); !ok {
		return Outcome{}, fail(KindCapacityExceeded, "Receiving manager %s has reached maximum direct reports.", receiverName)
	}
	slot := e.promotionVacancy(receiverID, targetID)
	if slot == noNode && len(receiver.reports) >= receiver.rank.MaxReports() {
		return Outcome{}, fail(KindCapacityExceeded, "Receiving manager %s has reached maximum direct reports.", receiverName)
	}

	var vacancyLeft bool
	if slot == noNode {
		vacancyLeft = e.vacate(targetID)
		e.tree.appendReport(receiverID, targetID)
	} else {
		// Filling a Vacancy always leaves one behind for a non-Worker, even
		// with no reports to keep.
		if target.rank == RankWorker {
			e.tree.detach(targetID)
		} else {
			e.leaveVacancy(targetID)
			vacancyLeft = true
		}
		vacancy := e.tree.get(slot)
		e.tree.replace(slot, targetID)
		e.tree.adopt(targetID, vacancy.reports)
		e.tree.drop(slot)
	}
	target.rank = promoted
	return Outcome{
		Action:      ActionPromoted,
		Employee:    targetName,
		Manager:     receiverName,
		VacancyLeft: vacancyLeft,
	}, nil
}

// promotionVacancy picks the first Vacancy under receiver whose preserved
// sub-tree does not already include target.
func (e *Engine) promotionVacancy(receiverID, targetID NodeID) NodeID {
	for _, id := range e.tree.get(receiverID).reports {
		if !e.tree.get(id).isVacancy() {
			continue
		}
		if e.tree.isAncestor(id, targetID) {
			continue
		}
		return id
	}
	return noNode
}

// remove takes a person out of the organization and frees the name.
func (e *Engine) remove(id NodeID) Outcome {
	n := e.tree.get(id)
	e.names.remove(n.name)
	vacancy := e.vacate(id)
	e.tree.drop(id)
	return Outcome{Action: ActionRemoved, Employee: n.name, VacancyLeft: vacancy}
}

// vacate unlinks a person from their position. When they manage anyone, a
// Vacancy of the same rank takes the position and keeps those reports. The
// person is left detached with no reports.
func (e *Engine) vacate(id NodeID) bool {
	if len(e.tree.get(id).reports) == 0 {
		e.tree.detach(id)
		return false
	}
	e.leaveVacancy(id)
	return true
}

// leaveVacancy puts a Vacancy of the same rank in the person's seat, handing
// it whatever reports they had.
func (e *Engine) leaveVacancy(id NodeID) {
	n := e.tree.get(id)
	vacancy := e.tree.newVacancy(n.rank)
	e.tree.replace(id, vacancy)
	e.tree.adopt(vacancy, n.reports)
	n.reports = nil
}

// place links a detached node at an opening. Overwriting a Vacancy discards it;
// anyone still under it leaves the organization. It returns how many left.
func (e *Engine) place(id NodeID, spot opening) int {
	if spot.vacancy == noNode {
		e.tree.appendReport(spot.manager, id)
		return 0
	}
	released := 0
	for _, gone := range e.tree.descendants(spot.vacancy) {
		if n := e.tree.get(gone); !n.isVacancy() {
			e.names.remove(n.name)
			released++
		}
		e.tree.drop(gone)
	}
	e.tree.replace(spot.vacancy, id)
	e.tree.drop(spot.vacancy)
	return released
}

func (e *Engine) isPresident(name string) bool {
	current, ok := e.President()
	return ok && current == name
}

// label names a node for messages: the person's name or "VACANCY: <rank>".
func (e *Engine) label(id NodeID) string {
	n := e.tree.get(id)
	if n.isVacancy() {
		return "VACANCY: " + n.rank.String()
	}
	return n.name
}
