// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Position is one of the closed set of field positions.
type Position string

// Closed position set, in canonical display order.
const (
	Defender Position = "DEF"
	Midfield Position = "MID"
	Ruck     Position = "RUC"
	Forward  Position = "FWD"
)

// Positions returns the closed position set in canonical order.
func Positions() []Position {
	return []Position{Defender, Midfield, Ruck, Forward}
}

// ParsePositions parses a slash-separated eligibility string such as
// "MID/FWD" into an ordered eligibility set. Unknown tokens are dropped.
func ParsePositions(raw string) []Position {
	var out []Position
	for _, tok := range strings.Split(strings.ToUpper(strings.TrimSpace(raw)), "/") {
		switch Position(strings.TrimSpace(tok)) {
		case Defender, Midfield, Ruck, Forward:
			out = append(out, Position(strings.TrimSpace(tok)))
		}
	}
	return out
}

// CategoryPremium tags candidates counted as premium stock by scarcity math.
const CategoryPremium = "premium"

// Candidate is a draftable player. Drafted, Owner and OverallPick are the
// only mutable fields and are always set or cleared together.
type Candidate struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Club      string     `json:"club"`
	Positions []Position `json:"positions"`
	Projected float64    `json:"projected"`
	ByeRound  int        `json:"bye_round"`

	// Optional secondary signals.
	MarketRank int     `json:"market_rank,omitempty"` // ADP-style rank, 0 = unknown
	AvgScore   float64 `json:"avg_score,omitempty"`   // last-season average
	PeakScore  float64 `json:"peak_score,omitempty"`  // last-season best
	Risk       string  `json:"risk,omitempty"`
	Category   string  `json:"category,omitempty"`
	Notes      string  `json:"notes,omitempty"`

	// Draft state.
	Drafted     bool `json:"drafted"`
	Owner       int  `json:"owner,omitempty"`        // 1..teams, 0 = none
	OverallPick int  `json:"overall_pick,omitempty"` // 0 = none
}

// Primary returns the first eligibility entry, or "" for an empty set.
// This is the market-facing position used by run detection, distinct from
// the value-resolved best position.
func (c Candidate) Primary() Position {
	if len(c.Positions) == 0 {
		return ""
	}
	return c.Positions[0]
}

// EligibleAt reports whether the candidate can fill position p.
func (c Candidate) EligibleAt(p Position) bool {
	for _, pos := range c.Positions {
		if pos == p {
			return true
		}
	}
	return false
}

// MultiPosition reports whether the candidate has 2+ eligible positions.
func (c Candidate) MultiPosition() bool {
	return len(c.Positions) >= 2
}

// Available reports whether the candidate is still on the board.
func (c Candidate) Available() bool {
	return !c.Drafted
}

// IsPremium reports whether the candidate carries the premium category tag.
func (c Candidate) IsPremium() bool {
	return strings.EqualFold(c.Category, CategoryPremium)
}

// DraftEvent records a single pick in the append-only draft log.
type DraftEvent struct {
	EventID     string    `json:"event_id"`
	CandidateID string    `json:"candidate_id"`
	Team        int       `json:"team"`
	OverallPick int       `json:"overall_pick"`
	Round       int       `json:"round,omitempty"`
	PickInRound int       `json:"pick_in_round,omitempty"`
	TS          time.Time `json:"ts"`
}

// Snapshot is the full caller-owned draft state: candidate pool, event log
// and the next-pick counter. All engine computations are pure functions of
// a snapshot.
type Snapshot struct {
	Candidates []Candidate  `json:"candidates"`
	Events     []DraftEvent `json:"events"`
	NextPick   int          `json:"next_pick"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Candidates: make([]Candidate, len(s.Candidates)),
		Events:     make([]DraftEvent, len(s.Events)),
		NextPick:   s.NextPick,
	}
	for i, c := range s.Candidates {
		cc := c
		cc.Positions = append([]Position(nil), c.Positions...)
		out.Candidates[i] = cc
	}
	copy(out.Events, s.Events)
	return out
}

// CandidateByID returns an index from candidate ID to pool position.
func (s Snapshot) CandidateByID() map[string]int {
	idx := make(map[string]int, len(s.Candidates))
	for i, c := range s.Candidates {
		idx[c.ID] = i
	}
	return idx
}

// Available returns the undrafted subset of the pool.
func (s Snapshot) Available() []Candidate {
	out := make([]Candidate, 0, len(s.Candidates))
	for _, c := range s.Candidates {
		if c.Available() {
			out = append(out, c)
		}
	}
	return out
}

// TeamCandidates returns the candidates currently owned by team.
func (s Snapshot) TeamCandidates(team int) []Candidate {
	var out []Candidate
	for _, c := range s.Candidates {
		if c.Drafted && c.Owner == team {
			out = append(out, c)
		}
	}
	return out
}
