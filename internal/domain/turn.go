// Package domain contains the conversation value types shared by the log,
// the usecases and the remote-API integrations.
package domain

import "time"

// Role tags a conversation turn.
type Role string

const (
	// RoleQuestion is literal user input.
	RoleQuestion Role = "question"
	// RoleAnswer is generator output, grounded in the confirmed candidates.
	RoleAnswer Role = "answer"
	// RoleRetrieval carries a retrieval batch awaiting confirmation.
	RoleRetrieval Role = "retrieval"
)

// Candidate is one retrieved passage inside a retrieval turn. Identifier is
// the backend's index for the passage and is round-tripped as received, never
// recomputed. Included is the only mutable field.
type Candidate struct {
	Identifier int
	Page       int
	Title      string
	Content    string
	Score      float64
	Included   bool
}

// Citation describes a passage the generator reports having used.
type Citation struct {
	Page  int
	Title string
}

// Turn is a single conversation entry. Citations are set only on answer
// turns, Candidates only on retrieval turns.
type Turn struct {
	ID         string
	Role       Role
	Body       string
	Citations  []Citation
	Candidates []Candidate
	CreatedAt  time.Time
}

// Clone returns a deep copy of the turn. Candidate and citation slices are
// copied so the result shares no mutable state with the receiver.
func (t Turn) Clone() Turn {
	out := t
	if t.Citations != nil {
		out.Citations = make([]Citation, len(t.Citations))
		copy(out.Citations, t.Citations)
	}
	if t.Candidates != nil {
		out.Candidates = make([]Candidate, len(t.Candidates))
		copy(out.Candidates, t.Candidates)
	}
	return out
}
