package usecase

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"docchat-client/internal/domain"
)

// DatasetReader exposes the read-only dataset endpoints.
type DatasetReader interface {
	Data(ctx context.Context) (domain.DatasetInfo, error)
	Chunks(ctx context.Context) ([]domain.Chunk, error)
}

// DatasetService is the pull-based dataset introspection view. Refresh
// issues two independent fetches and keeps the latest success of each;
// failures are logged and discarded, leaving the previous value in place.
// Explicitly non-critical path: stale-until-refetch is acceptable.
type DatasetService struct {
	reader DatasetReader
	logger *zap.Logger

	mu     sync.Mutex
	info   *domain.DatasetInfo
	chunks []domain.Chunk
}

// NewDatasetService creates a DatasetService.
func NewDatasetService(reader DatasetReader, logger *zap.Logger) (*DatasetService, error) {
	if reader == nil {
		return nil, errors.New("usecase: dataset reader must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetService{reader: reader, logger: logger}, nil
}

// Refresh re-fetches the aggregate stats and the chunk list. The two fetches
// are independent: one failing does not stop or invalidate the other.
func (s *DatasetService) Refresh(ctx context.Context) {
	if info, err := s.reader.Data(ctx); err != nil {
		s.logger.Warn("dataset stats fetch failed", zap.Error(err))
	} else {
		s.mu.Lock()
		s.info = &info
		s.mu.Unlock()
	}

	if chunks, err := s.reader.Chunks(ctx); err != nil {
		s.logger.Warn("chunk list fetch failed", zap.Error(err))
	} else {
		s.mu.Lock()
		s.chunks = chunks
		s.mu.Unlock()
	}
}

// Info returns the latest successfully fetched dataset stats. The second
// return is false until the first successful Refresh.
func (s *DatasetService) Info() (domain.DatasetInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.info == nil {
		return domain.DatasetInfo{}, false
	}
	return *s.info, true
}

// ChunkList returns the latest successfully fetched chunk list.
func (s *DatasetService) ChunkList() []domain.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Chunk, len(s.chunks))
	copy(out, s.chunks)
	return out
}
