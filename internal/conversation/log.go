// Package conversation owns the in-memory conversation log: the single
// shared mutable resource of the client. All usecases communicate through its
// append/update/reset operations and observe it only via snapshots.
package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"docchat-client/internal/domain"
)

// newTurnID is a seam for deterministic ids in tests.
var newTurnID = func() string {
	return uuid.NewString()
}

// NewQuestionTurn builds a question turn from literal user input.
func NewQuestionTurn(body string) domain.Turn {
	return domain.Turn{
		ID:        newTurnID(),
		Role:      domain.RoleQuestion,
		Body:      body,
		CreatedAt: time.Now(),
	}
}

// NewAnswerTurn builds an answer turn carrying the generator's citations
// verbatim.
func NewAnswerTurn(body string, citations []domain.Citation) domain.Turn {
	return domain.Turn{
		ID:        newTurnID(),
		Role:      domain.RoleAnswer,
		Body:      body,
		Citations: citations,
		CreatedAt: time.Now(),
	}
}

// NewRetrievalTurn builds a retrieval turn. Candidate order is fixed here and
// never changes afterwards; only the Included flags may be toggled later.
func NewRetrievalTurn(body string, candidates []domain.Candidate) domain.Turn {
	return domain.Turn{
		ID:         newTurnID(),
		Role:       domain.RoleRetrieval,
		Body:       body,
		Candidates: candidates,
		CreatedAt:  time.Now(),
	}
}

// Log is the ordered conversation record. It is append-only except for
// in-place candidate Included updates and a full reset after successful
// ingestion. Safe for concurrent use.
type Log struct {
	mu      sync.Mutex
	turns   []domain.Turn
	version uint64
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a turn to the end of the log.
func (l *Log) Append(t domain.Turn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, t.Clone())
	l.version++
}

// Find returns a copy of the turn with the given id.
func (l *Log) Find(turnID string) (domain.Turn, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(turnID)
	if i < 0 {
		return domain.Turn{}, false
	}
	return l.turns[i].Clone(), true
}

// FindPreceding returns a copy of the turn immediately before the turn with
// the given id. It reports false when the id is unknown or the turn is first
// in the log.
func (l *Log) FindPreceding(turnID string) (domain.Turn, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(turnID)
	if i <= 0 {
		return domain.Turn{}, false
	}
	return l.turns[i-1].Clone(), true
}

// UpdateCandidate sets the Included flag on one candidate of a retrieval
// turn. It is a silent no-op when turnID does not resolve to a retrieval turn
// or the index is out of bounds.
func (l *Log) UpdateCandidate(turnID string, candidateIndex int, included bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexOf(turnID)
	if i < 0 || l.turns[i].Role != domain.RoleRetrieval {
		return
	}
	if candidateIndex < 0 || candidateIndex >= len(l.turns[i].Candidates) {
		return
	}
	l.turns[i].Candidates[candidateIndex].Included = included
	l.version++
}

// Reset clears all turns. Triggered only by successful ingestion.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = nil
	l.version++
}

// Snapshot returns a deep copy of the current turns. Every mutation produces
// a new snapshot value, so a renderer using value-equality change detection
// sees each update.
func (l *Log) Snapshot() []domain.Turn {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.Turn, len(l.turns))
	for i, t := range l.turns {
		out[i] = t.Clone()
	}
	return out
}

// Len returns the number of turns.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.turns)
}

// Version increments on every observable mutation.
func (l *Log) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// indexOf must be called with l.mu held.
func (l *Log) indexOf(turnID string) int {
	for i := range l.turns {
		if l.turns[i].ID == turnID {
			return i
		}
	}
	return -1
}
