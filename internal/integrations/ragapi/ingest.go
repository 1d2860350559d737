package ragapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"

	"docchat-client/internal/domain"
)

// uploadResponse is the /upload response shape.
type uploadResponse struct {
	Success      bool   `json:"success"`
	Error        string `json:"error"`
	FileCount    int    `json:"file_count"`
	HasTextInput bool   `json:"has_text_input"`
	ChunkCount   int    `json:"chunk_count"`
}

// Upload submits source documents and optional pasted text for ingestion.
// Files go as repeated "files" parts, the text as a "text_input" form field.
func (c *Client) Upload(ctx context.Context, files []domain.IngestFile, textInput string) (domain.IngestStats, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return domain.IngestStats{}, fmt.Errorf("ragapi: create file part: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return domain.IngestStats{}, fmt.Errorf("ragapi: write file part: %w", err)
		}
	}
	if textInput != "" {
		if err := w.WriteField("text_input", textInput); err != nil {
			return domain.IngestStats{}, fmt.Errorf("ragapi: write text field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return domain.IngestStats{}, fmt.Errorf("ragapi: close multipart body: %w", err)
	}

	url := c.baseURL + "/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return domain.IngestStats{}, fmt.Errorf("ragapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var payload uploadResponse
	if err := c.doJSON(req, url, &payload); err != nil {
		return domain.IngestStats{}, err
	}
	if !payload.Success {
		return domain.IngestStats{}, &BackendError{Message: payload.Error}
	}
	return domain.IngestStats{
		FileCount:    payload.FileCount,
		ChunkCount:   payload.ChunkCount,
		HasTextInput: payload.HasTextInput,
	}, nil
}
