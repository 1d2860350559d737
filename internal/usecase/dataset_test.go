package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docchat-client/internal/domain"
)

type mockDatasetReader struct {
	info      domain.DatasetInfo
	infoErr   error
	chunks    []domain.Chunk
	chunksErr error
}

func (m *mockDatasetReader) Data(_ context.Context) (domain.DatasetInfo, error) {
	if m.infoErr != nil {
		return domain.DatasetInfo{}, m.infoErr
	}
	return m.info, nil
}

func (m *mockDatasetReader) Chunks(_ context.Context) ([]domain.Chunk, error) {
	if m.chunksErr != nil {
		return nil, m.chunksErr
	}
	return m.chunks, nil
}

func TestDatasetRefreshStoresLatest(t *testing.T) {
	reader := &mockDatasetReader{
		info:   domain.DatasetInfo{Text: "manual text", ChunkCount: 12, HasIndex: true},
		chunks: []domain.Chunk{{ID: 0, Page: 1, Title: "Intro"}},
	}
	svc, err := NewDatasetService(reader, zap.NewNop())
	require.NoError(t, err)

	_, ok := svc.Info()
	require.False(t, ok)

	svc.Refresh(context.Background())

	info, ok := svc.Info()
	require.True(t, ok)
	require.Equal(t, 12, info.ChunkCount)
	require.True(t, info.HasIndex)
	require.Len(t, svc.ChunkList(), 1)
}

func TestDatasetRefreshFailuresAreSilentAndKeepStaleValues(t *testing.T) {
	reader := &mockDatasetReader{
		info:   domain.DatasetInfo{ChunkCount: 12},
		chunks: []domain.Chunk{{ID: 0}},
	}
	svc, err := NewDatasetService(reader, zap.NewNop())
	require.NoError(t, err)
	svc.Refresh(context.Background())

	reader.infoErr = errors.New("connection refused")
	reader.chunksErr = errors.New("connection refused")
	svc.Refresh(context.Background())

	// Stale values remain until the next successful fetch.
	info, ok := svc.Info()
	require.True(t, ok)
	require.Equal(t, 12, info.ChunkCount)
	require.Len(t, svc.ChunkList(), 1)
}

func TestDatasetFetchesAreIndependent(t *testing.T) {
	reader := &mockDatasetReader{
		info:      domain.DatasetInfo{ChunkCount: 7},
		chunksErr: errors.New("connection refused"),
	}
	svc, err := NewDatasetService(reader, zap.NewNop())
	require.NoError(t, err)

	svc.Refresh(context.Background())

	info, ok := svc.Info()
	require.True(t, ok)
	require.Equal(t, 7, info.ChunkCount)
	require.Empty(t, svc.ChunkList())
}

func TestDatasetNilLoggerDefaultsToNop(t *testing.T) {
	svc, err := NewDatasetService(&mockDatasetReader{}, nil)
	require.NoError(t, err)
	svc.Refresh(context.Background())
}
