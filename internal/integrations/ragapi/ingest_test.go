package ragapi

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat-client/internal/domain"
)

func TestUploadSendsMultipartParts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(8<<20))
		require.Equal(t, "pasted notes", r.FormValue("text_input"))

		parts := r.MultipartForm.File["files"]
		require.Len(t, parts, 2)
		require.Equal(t, "manual.pdf", parts[0].Filename)
		require.Equal(t, "notes.txt", parts[1].Filename)

		f, err := parts[0].Open()
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		require.Equal(t, []byte("%PDF-1.7"), data)

		_, _ = w.Write([]byte(`{"success": true, "file_count": 2, "has_text_input": true, "chunk_count": 40}`))
	})

	stats, err := c.Upload(context.Background(), []domain.IngestFile{
		{Name: "manual.pdf", Data: []byte("%PDF-1.7")},
		{Name: "notes.txt", Data: []byte("plain text")},
	}, "pasted notes")
	require.NoError(t, err)
	require.Equal(t, domain.IngestStats{FileCount: 2, ChunkCount: 40, HasTextInput: true}, stats)
}

func TestUploadOmitsEmptyTextField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(8<<20))
		_, present := r.MultipartForm.Value["text_input"]
		require.False(t, present)
		_, _ = w.Write([]byte(`{"success": true, "file_count": 1, "has_text_input": false, "chunk_count": 7}`))
	})

	stats, err := c.Upload(context.Background(), []domain.IngestFile{
		{Name: "notes.txt", Data: []byte("text")},
	}, "")
	require.NoError(t, err)
	require.False(t, stats.HasTextInput)
}

func TestUploadBackendFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "nothing to process"}`))
	})

	_, err := c.Upload(context.Background(), nil, "text")
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	require.Equal(t, "nothing to process", backendErr.Message)
}
