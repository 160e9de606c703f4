package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"intelhub/internal/ports"
)

// Extractor fetches a page and pulls out its main article text. Failures
// are ordinary errors; the caller treats them as non-fatal and falls back
// to the candidate snippet.
type Extractor struct {
	client  *http.Client
	timeout time.Duration
}

var _ ports.Extractor = (*Extractor)(nil)

// New wires an HTTP client with the given per-fetch timeout.
func New(client *http.Client, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Extractor{client: client, timeout: timeout}
}

// Extract downloads the URL and returns readable plain text.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "intelhub/1.0")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %s", resp.Status)
	}

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no extractable content at %s", rawURL)
	}

	return text, nil
}
