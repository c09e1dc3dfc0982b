// Package infra provides shared infrastructure helpers: HTTP fetching
// with context and header support.
package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single archive request when the caller does
// not supply its own client.
const DefaultTimeout = 15 * time.Second

var defaultClient = &http.Client{Timeout: DefaultTimeout}

// NewHTTPClient returns an HTTP client with the given request timeout.
// Non-positive timeouts fall back to DefaultTimeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// HTTPStatusError is returned by DoGet for non-2xx responses so callers
// can branch on the status code (e.g. skip a missing document).
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// DoGet performs a GET request with the given headers and returns the
// response body. A nil client uses the package default. The caller
// must close the returned body.
func DoGet(ctx context.Context, httpc *http.Client, url string, headers map[string]string) (io.ReadCloser, int, error) {
	if httpc == nil {
		httpc = defaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, resp.StatusCode, &HTTPStatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Body, resp.StatusCode, nil
}

// GetBytes performs a GET request and reads the full response body.
func GetBytes(ctx context.Context, httpc *http.Client, url string, headers map[string]string) ([]byte, error) {
	body, _, err := DoGet(ctx, httpc, url, headers)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}
