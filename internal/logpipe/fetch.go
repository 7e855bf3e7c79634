package logpipe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ContentFetcher retrieves the individual lines of one log source.
type ContentFetcher interface {
	Fetch(ctx context.Context, source string) ([]string, error)
}

// HTTPFetcher fetches log files over HTTP. The timeout applies per request
// and is a fixed deployment constant, never supplied by the caller.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates an HTTPFetcher with the given per-request timeout.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch retrieves the source and splits its body into log lines. Empty
// trailing lines are discarded. Timeouts, connection errors, and non-2xx
// responses all surface as ErrFetch.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, source, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", ErrFetch, source, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading body: %v", ErrFetch, source, err)
	}
	return splitLines(string(body)), nil
}

// splitLines splits newline-delimited content into lines, dropping empty
// trailing lines left by a final newline.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
