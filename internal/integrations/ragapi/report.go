package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// reportRequest is the /api/tripprep/generate request shape.
type reportRequest struct {
	Destination string   `json:"destination"`
	Keywords    []string `json:"keywords"`
}

// reportResponse is the /api/tripprep/generate success shape. Failures come
// back as non-2xx with a {detail} body instead of a success flag.
type reportResponse struct {
	Report string `json:"report"`
}

type reportErrorResponse struct {
	Detail string `json:"detail"`
}

// TripReport requests a travel-preparation report for a destination. The
// keyword list may be empty; the backend substitutes its own defaults.
func (c *Client) TripReport(ctx context.Context, destination string, keywords []string) (string, error) {
	if keywords == nil {
		keywords = []string{}
	}
	body, err := json.Marshal(reportRequest{Destination: destination, Keywords: keywords})
	if err != nil {
		return "", fmt.Errorf("ragapi: marshal report request: %w", err)
	}

	url := c.baseURL + "/api/tripprep/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ragapi: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.resolvedHTTPClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("ragapi: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	buf, err := io.ReadAll(io.LimitReader(res.Body, 8<<20))
	if err != nil {
		return "", fmt.Errorf("ragapi: read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		var failure reportErrorResponse
		if jsonErr := json.Unmarshal(buf, &failure); jsonErr == nil && failure.Detail != "" {
			return "", &BackendError{Message: failure.Detail}
		}
		return "", &HTTPStatusError{StatusCode: res.StatusCode, URL: url, Body: string(buf)}
	}

	var payload reportResponse
	if err := json.Unmarshal(buf, &payload); err != nil {
		return "", fmt.Errorf("ragapi: decode report response: %w", err)
	}
	return payload.Report, nil
}
