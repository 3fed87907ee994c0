package org

import (
	"errors"
	"fmt"
)

// Kind classifies why an operation was rejected.
type Kind int

const (
	KindInvalidName Kind = iota + 1
	KindNotFound
	KindDuplicateName
	KindPermissionDenied
	KindOutOfHierarchy
	KindCapacityExceeded
	KindRankMismatch
	KindNoPresident
	KindPresidentExists
)

func (k Kind) String() string {
	switch k {
	case KindInvalidName:
		return "invalid_name"
	case KindNotFound:
		return "not_found"
	case KindDuplicateName:
		return "duplicate_name"
	case KindPermissionDenied:
		return "permission_denied"
	case KindOutOfHierarchy:
		return "out_of_hierarchy"
	case KindCapacityExceeded:
		return "capacity_exceeded"
	case KindRankMismatch:
		return "rank_mismatch"
	case KindNoPresident:
		return "no_president"
	case KindPresidentExists:
		return "president_exists"
	default:
		return "unknown"
	}
}

// Error is returned by every rejected operation. The tree is untouched when
// an Error is returned.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is matches on Kind so callers can write errors.Is(err, org.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidName      = &Error{Kind: KindInvalidName}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrDuplicateName    = &Error{Kind: KindDuplicateName}
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrOutOfHierarchy   = &Error{Kind: KindOutOfHierarchy}
	ErrCapacityExceeded = &Error{Kind: KindCapacityExceeded}
	ErrRankMismatch     = &Error{Kind: KindRankMismatch}
	ErrNoPresident      = &Error{Kind: KindNoPresident}
	ErrPresidentExists  = &Error{Kind: KindPresidentExists}
)

func fail(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
