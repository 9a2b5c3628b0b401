package hydrate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/cbdev/portfolio/internal/content"
)

// Payload is a fetched, not yet decoded, content document.
type Payload struct {
	Body   []byte
	Format content.Format
}

// Fetcher retrieves the content document. Implementations make a single
// attempt: no retries and no timeout beyond the caller's context.
type Fetcher interface {
	Fetch(ctx context.Context) (*Payload, error)
	Source() string
}

// NewFetcher returns an HTTPFetcher for http(s) sources and a FileFetcher
// for everything else.
func NewFetcher(source string, client *http.Client) Fetcher {
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return &HTTPFetcher{URL: source, Client: client}
	}
	return &FileFetcher{Path: source}
}

// FileFetcher reads the document from the local filesystem.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Source() string { return f.Path }

func (f *FileFetcher) Fetch(ctx context.Context) (*Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, &FetchError{Source: f.Path, Err: err}
	}
	body, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &FetchError{Source: f.Path, Err: err}
	}
	return &Payload{Body: body, Format: content.FormatFor(f.Path, "")}, nil
}

// HTTPFetcher issues one GET for the document.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

func (f *HTTPFetcher) Source() string { return f.URL }

func (f *HTTPFetcher) Fetch(ctx context.Context) (*Payload, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: f.URL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Source: f.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Source: f.URL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: f.URL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return &Payload{Body: body, Format: content.FormatFor(f.URL, resp.Header.Get("Content-Type"))}, nil
}
