// Package usecase holds the conversational state machine and the workflows
// around it. Services hold no conversation state of their own; everything
// observable lives in the conversation Log.
package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docchat-client/internal/conversation"
	"docchat-client/internal/domain"
)

const defaultTopK = 5

// retrievalPrompt is the body of every retrieval turn, shown while the batch
// awaits confirmation.
const retrievalPrompt = "Select the passages to use for the answer."

// Retriever runs a ranked passage lookup for a query.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]domain.Candidate, error)
}

// Generator produces an answer grounded in the selected passage identifiers.
type Generator interface {
	Generate(ctx context.Context, query string, selected []int) (answer string, citations []domain.Citation, err error)
}

// chatPhase gates the conversational flow. Retrieval and generation share
// one phase variable: while either is outstanding, new submissions and
// confirmations fail fast with ErrorBusy. Toggles are never gated.
type chatPhase int

const (
	phaseIdle chatPhase = iota
	phaseAwaitingRetrieval
	phaseAwaitingGeneration
)

// ChatService drives the retrieve → confirm → generate protocol against the
// conversation Log.
type ChatService struct {
	log       *conversation.Log
	retriever Retriever
	generator Generator
	topK      int

	mu    sync.Mutex
	phase chatPhase
}

// NewChatService creates a ChatService. topK falls back to a default when
// non-positive; changing it affects recall only.
func NewChatService(log *conversation.Log, retriever Retriever, generator Generator, topK int) (*ChatService, error) {
	if log == nil {
		return nil, errors.New("usecase: conversation log must not be nil")
	}
	if retriever == nil {
		return nil, errors.New("usecase: retriever must not be nil")
	}
	if generator == nil {
		return nil, errors.New("usecase: generator must not be nil")
	}
	if topK <= 0 {
		topK = defaultTopK
	}
	return &ChatService{
		log:       log,
		retriever: retriever,
		generator: generator,
		topK:      topK,
	}, nil
}

// Submit appends the question as a turn and runs retrieval for it. On
// success the retrieval turn is appended immediately after the question,
// every candidate included, and its id is returned. On retrieval failure no
// retrieval turn is appended; the question turn remains, matching the
// submit-then-search flow this service models.
func (s *ChatService) Submit(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if err := validation.Validate(question, validation.Required); err != nil {
		return "", newError(ErrorInvalidInput, "empty_question", err)
	}

	if err := s.enter(phaseAwaitingRetrieval); err != nil {
		return "", err
	}
	defer s.leave()

	s.log.Append(conversation.NewQuestionTurn(question))

	candidates, err := s.retriever.Search(ctx, question, s.topK)
	if err != nil {
		return "", remoteError("search_failed", err)
	}

	for i := range candidates {
		candidates[i].Included = true
	}
	turn := conversation.NewRetrievalTurn(retrievalPrompt, candidates)
	s.log.Append(turn)
	return turn.ID, nil
}

// Toggle flips the Included flag on one candidate of a retrieval turn. Pure
// state transition: no network effect, self-inverse, silent no-op on an
// unknown turn or index.
func (s *ChatService) Toggle(turnID string, candidateIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn, ok := s.log.Find(turnID)
	if !ok || turn.Role != domain.RoleRetrieval {
		return
	}
	if candidateIndex < 0 || candidateIndex >= len(turn.Candidates) {
		return
	}
	s.log.UpdateCandidate(turnID, candidateIndex, !turn.Candidates[candidateIndex].Included)
}

// Confirm finalizes the selection on a retrieval turn and runs generation.
// The retrieval turn pairs with the immediately preceding turn, which must be
// the question that produced it; otherwise Confirm is a no-op. The included
// candidates' identifiers are forwarded in order — an empty selection is
// forwarded as an empty set. On success the answer turn is appended with the
// backend's citations verbatim.
func (s *ChatService) Confirm(ctx context.Context, turnID string) error {
	turn, ok := s.log.Find(turnID)
	if !ok || turn.Role != domain.RoleRetrieval {
		return nil
	}
	question, ok := s.log.FindPreceding(turnID)
	if !ok || question.Role != domain.RoleQuestion {
		return nil
	}

	selected := make([]int, 0, len(turn.Candidates))
	for _, c := range turn.Candidates {
		if c.Included {
			selected = append(selected, c.Identifier)
		}
	}

	if err := s.enter(phaseAwaitingGeneration); err != nil {
		return err
	}
	defer s.leave()

	answer, citations, err := s.generator.Generate(ctx, question.Body, selected)
	if err != nil {
		return remoteError("generate_failed", err)
	}

	s.log.Append(conversation.NewAnswerTurn(answer, citations))
	return nil
}

func (s *ChatService) enter(next chatPhase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != phaseIdle {
		return newError(ErrorBusy, "operation_outstanding", nil)
	}
	s.phase = next
	return nil
}

func (s *ChatService) leave() {
	s.mu.Lock()
	s.phase = phaseIdle
	s.mu.Unlock()
}
