package org

import "fmt"

// Action names what a successful operation did to the tree.
type Action string

const (
	ActionInitialized Action = "initialized"
	ActionHired       Action = "hired"
	ActionPlaced      Action = "placed"
	ActionRemoved     Action = "removed"
	ActionLaidOff     Action = "laid_off"
	ActionRelocated   Action = "relocated"
	ActionTransferred Action = "transferred"
	ActionPromoted    Action = "promoted"
)

// Outcome describes a successful mutation.
type Outcome struct {
	Action   Action
	Employee string
	Manager  string
	// VacancyLeft is set when the employee's old position became a Vacancy.
	VacancyLeft bool
	// Released counts people who left with a Vacancy that was overwritten.
	Released int
}

func (o Outcome) String() string {
	var msg string
	switch o.Action {
	case ActionInitialized:
		msg = fmt.Sprintf("Success: Initialized President %s.", o.Employee)
	case ActionHired:
		msg = fmt.Sprintf("Successfully hired %s under %s.", o.Employee, o.Manager)
	case ActionPlaced, ActionRelocated, ActionTransferred:
		msg = fmt.Sprintf("Successfully placed %s under %s.", o.Employee, o.Manager)
	case ActionPromoted:
		msg = fmt.Sprintf("Successfully promoted %s under %s.", o.Employee, o.Manager)
	case ActionRemoved:
		msg = removedMessage(o.Employee, o.VacancyLeft)
	case ActionLaidOff:
		msg = "No comparable openings found. " + removedMessage(o.Employee, o.VacancyLeft)
	default:
		msg = string(o.Action)
	}
	if o.Released > 0 {
		msg += fmt.Sprintf(" %d employee(s) under the replaced vacancy left the company.", o.Released)
	}
	return msg
}

func removedMessage(name string, vacancy bool) string {
	if vacancy {
		return fmt.Sprintf("%s has been removed from the company. Vacancy remains.", name)
	}
	return fmt.Sprintf("%s has been removed from the company.", name)
}
