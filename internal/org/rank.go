package org

import "strings"

// Rank is a seniority tier. Lower values are more senior.
type Rank int

const (
	RankPresident Rank = iota
	RankVicePresident
	RankSupervisor
	RankWorker
)

// Ranks lists every tier from most to least senior.
var Ranks = []Rank{RankPresident, RankVicePresident, RankSupervisor, RankWorker}

func (r Rank) String() string {
	switch r {
	case RankPresident:
		return "President"
	case RankVicePresident:
		return "Vice President"
	case RankSupervisor:
		return "Supervisor"
	case RankWorker:
		return "Worker"
	default:
		return "Unknown"
	}
}

// MaxReports is the capacity policy: how many direct reports a rank may hold.
func (r Rank) MaxReports() int {
	switch r {
	case RankPresident:
		return 2
	case RankVicePresident:
		return 3
	case RankSupervisor:
		return 5
	default:
		return 0
	}
}

// Junior returns the rank a manager of this rank hires into. Workers map to
// Worker so the result is always a valid tier.
func (r Rank) Junior() Rank {
	switch r {
	case RankPresident:
		return RankVicePresident
	case RankVicePresident:
		return RankSupervisor
	default:
		return RankWorker
	}
}

// Senior returns the next tier up. The President has nothing above it.
func (r Rank) Senior() (Rank, bool) {
	switch r {
	case RankWorker:
		return RankSupervisor, true
	case RankSupervisor:
		return RankVicePresident, true
	case RankVicePresident:
		return RankPresident, true
	default:
		return r, false
	}
}

// ParseRank accepts a rank label in any case, with or without the space in
// "Vice President".
func ParseRank(value string) (Rank, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
	switch key {
	case "president":
		return RankPresident, true
	case "vicepresident", "vp":
		return RankVicePresident, true
	case "supervisor":
		return RankSupervisor, true
	case "worker":
		return RankWorker, true
	default:
		return 0, false
	}
}

// MarshalText renders the rank label, which keeps YAML exports readable.
func (r Rank) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
