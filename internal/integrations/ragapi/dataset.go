package ragapi

import (
	"context"

	"docchat-client/internal/domain"
)

// dataResponse is the /data response shape. It carries no success flag.
type dataResponse struct {
	Text       string `json:"text"`
	ChunkCount int    `json:"chunk_count"`
	HasIndex   bool   `json:"has_index"`
}

// Data fetches the aggregate view of the currently ingested dataset.
func (c *Client) Data(ctx context.Context) (domain.DatasetInfo, error) {
	var payload dataResponse
	if err := c.getJSON(ctx, "/data", &payload); err != nil {
		return domain.DatasetInfo{}, err
	}
	return domain.DatasetInfo{
		Text:       payload.Text,
		ChunkCount: payload.ChunkCount,
		HasIndex:   payload.HasIndex,
	}, nil
}

// chunksResponse is the /chunks response shape.
type chunksResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Chunks  []struct {
		ID         int    `json:"id"`
		Page       int    `json:"page"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		TokenCount int    `json:"token_count"`
	} `json:"chunks"`
}

// Chunks fetches the full ingested chunk list.
func (c *Client) Chunks(ctx context.Context) ([]domain.Chunk, error) {
	var payload chunksResponse
	if err := c.getJSON(ctx, "/chunks", &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, &BackendError{Message: payload.Error}
	}
	out := make([]domain.Chunk, len(payload.Chunks))
	for i, ch := range payload.Chunks {
		out[i] = domain.Chunk{
			ID:         ch.ID,
			Page:       ch.Page,
			Title:      ch.Title,
			Content:    ch.Content,
			TokenCount: ch.TokenCount,
		}
	}
	return out, nil
}
