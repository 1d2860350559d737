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

// Ingestor submits source material to the backend for chunking and indexing.
type Ingestor interface {
	Upload(ctx context.Context, files []domain.IngestFile, textInput string) (domain.IngestStats, error)
}

// IngestInput is the material for one ingestion run: files, pasted text, or
// both.
type IngestInput struct {
	Files      []domain.IngestFile
	PastedText string
}

// Validate rejects input with nothing to ingest. Runs before any network
// call.
func (in IngestInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Files, validation.Required.When(strings.TrimSpace(in.PastedText) == "").
			Error("at least one file or non-empty pasted text is required")),
	)
}

// IngestService runs the ingestion workflow. It is independent of the
// conversational flow except that a successful ingestion invalidates the
// conversation: the log is reset together with the replaced dataset.
type IngestService struct {
	log      *conversation.Log
	ingestor Ingestor

	mu        sync.Mutex
	ingesting bool
}

// NewIngestService creates an IngestService.
func NewIngestService(log *conversation.Log, ingestor Ingestor) (*IngestService, error) {
	if log == nil {
		return nil, errors.New("usecase: conversation log must not be nil")
	}
	if ingestor == nil {
		return nil, errors.New("usecase: ingestor must not be nil")
	}
	return &IngestService{log: log, ingestor: ingestor}, nil
}

// Ingest uploads the input and, on success, resets the conversation log. On
// failure the log is untouched.
func (s *IngestService) Ingest(ctx context.Context, in IngestInput) (domain.IngestStats, error) {
	if err := in.Validate(); err != nil {
		return domain.IngestStats{}, newError(ErrorInvalidInput, "nothing_to_ingest", err)
	}

	s.mu.Lock()
	if s.ingesting {
		s.mu.Unlock()
		return domain.IngestStats{}, newError(ErrorBusy, "ingestion_outstanding", nil)
	}
	s.ingesting = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.ingesting = false
		s.mu.Unlock()
	}()

	stats, err := s.ingestor.Upload(ctx, in.Files, strings.TrimSpace(in.PastedText))
	if err != nil {
		return domain.IngestStats{}, remoteError("upload_failed", err)
	}

	s.log.Reset()
	return stats, nil
}
