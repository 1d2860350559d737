package ragapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"docchat-client/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("")
	require.Error(t, err)
	_, err = NewClient("   ")
	require.Error(t, err)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c, err := NewClient("http://localhost:8000/")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", c.baseURL)
}

func TestSearchSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)

		var req map[string]any
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		require.Equal(t, "what is E1?", req["query"])
		require.Equal(t, float64(5), req["k"])

		_, _ = w.Write([]byte(`{
			"success": true,
			"results": [
				{"index": 4, "page": 3, "title": "Errors", "content": "E1 means...", "score": 0.91},
				{"index": 2, "page": 7, "title": "Codes", "content": "the code table", "score": 0.75}
			]
		}`))
	})

	candidates, err := c.Search(context.Background(), "what is E1?", 5)
	require.NoError(t, err)
	require.Equal(t, []domain.Candidate{
		{Identifier: 4, Page: 3, Title: "Errors", Content: "E1 means...", Score: 0.91},
		{Identifier: 2, Page: 7, Title: "Codes", Content: "the code table", Score: 0.75},
	}, candidates)
}

func TestSearchBackendFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "no documents loaded"}`))
	})

	_, err := c.Search(context.Background(), "q", 5)
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	require.Equal(t, "no documents loaded", backendErr.Message)
}

func TestSearchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	c, err := NewClient(srv.URL)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "q", 5)
	require.Error(t, err)
	var backendErr *BackendError
	require.False(t, errors.As(err, &backendErr))
}

func TestSearchNonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Search(context.Background(), "q", 5)
	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}

func TestGenerateSuccess(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate", r.URL.Path)

		var req map[string]any
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		require.Equal(t, "what is E1?", req["query"])
		require.Equal(t, []any{float64(4)}, req["selected_indices"])

		_, _ = w.Write([]byte(`{
			"success": true,
			"answer": "E1 is a water supply error.",
			"sources": [{"page": 3, "title": "Errors"}]
		}`))
	})

	answer, citations, err := c.Generate(context.Background(), "what is E1?", []int{4})
	require.NoError(t, err)
	require.Equal(t, "E1 is a water supply error.", answer)
	require.Equal(t, []domain.Citation{{Page: 3, Title: "Errors"}}, citations)
}

func TestGenerateEmptySelectionSentAsEmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.Contains(t, string(body), `"selected_indices":[]`)
		_, _ = w.Write([]byte(`{"success": true, "answer": "ungrounded", "sources": []}`))
	})

	answer, citations, err := c.Generate(context.Background(), "q", nil)
	require.NoError(t, err)
	require.Equal(t, "ungrounded", answer)
	require.Empty(t, citations)
}

func TestGenerateBackendFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success": false, "error": "model not loaded"}`))
	})

	_, _, err := c.Generate(context.Background(), "q", []int{0})
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	require.Equal(t, "model not loaded", backendErr.Message)
}
