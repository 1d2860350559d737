// Package ragapi is the HTTP client for the document-QA backend. It exposes
// one method per endpoint and maps wire payloads into domain types; all
// policy (what to do with results or failures) lives in the usecases.
package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"docchat-client/internal/domain"
)

// BackendError is a well-formed response that explicitly signals failure
// (success=false). Message is the backend-supplied text and may be empty.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return "ragapi: backend reported failure"
	}
	return "ragapi: backend reported failure: " + e.Message
}

// BackendMessage returns the backend-supplied failure text.
func (e *BackendError) BackendMessage() string {
	return e.Message
}

// HTTPStatusError captures non-2xx responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("ragapi: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client talks to one backend instance at a fixed base address.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for the given base address.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("ragapi: base URL must not be empty")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

// searchRequest is the /search request shape.
type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

// searchResponse is the /search response shape.
type searchResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Results []struct {
		Index   int     `json:"index"`
		Page    int     `json:"page"`
		Title   string  `json:"title"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search runs a ranked passage lookup for the query. Result order is the
// backend's ranking, preserved exactly.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]domain.Candidate, error) {
	var payload searchResponse
	if err := c.postJSON(ctx, "/search", searchRequest{Query: query, K: topK}, &payload); err != nil {
		return nil, err
	}
	if !payload.Success {
		return nil, &BackendError{Message: payload.Error}
	}
	out := make([]domain.Candidate, len(payload.Results))
	for i, r := range payload.Results {
		out[i] = domain.Candidate{
			Identifier: r.Index,
			Page:       r.Page,
			Title:      r.Title,
			Content:    r.Content,
			Score:      r.Score,
		}
	}
	return out, nil
}

// generateRequest is the /generate request shape.
type generateRequest struct {
	Query           string `json:"query"`
	SelectedIndices []int  `json:"selected_indices"`
}

// generateResponse is the /generate response shape.
type generateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Answer  string `json:"answer"`
	Sources []struct {
		Page  int    `json:"page"`
		Title string `json:"title"`
	} `json:"sources"`
}

// Generate asks for an answer grounded in the selected passage identifiers.
// An empty selection is a valid request and is sent as an empty array, never
// null.
func (c *Client) Generate(ctx context.Context, query string, selected []int) (string, []domain.Citation, error) {
	if selected == nil {
		selected = []int{}
	}
	var payload generateResponse
	if err := c.postJSON(ctx, "/generate", generateRequest{Query: query, SelectedIndices: selected}, &payload); err != nil {
		return "", nil, err
	}
	if !payload.Success {
		return "", nil, &BackendError{Message: payload.Error}
	}
	citations := make([]domain.Citation, len(payload.Sources))
	for i, s := range payload.Sources {
		citations[i] = domain.Citation{Page: s.Page, Title: s.Title}
	}
	return payload.Answer, citations, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("ragapi: marshal request: %w", err)
	}
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ragapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, url, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ragapi: create request: %w", err)
	}
	return c.doJSON(req, url, out)
}

func (c *Client) doJSON(req *http.Request, url string, out any) error {
	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("ragapi: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("ragapi: read response body: %w", err)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("ragapi: decode response: %w", err)
	}
	return nil
}
