package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"rustref/internal/redirects"
)

// ConfigSource - interface for loading the current set of redirect rules.
type ConfigSource interface {
	Load(ctx context.Context) ([]redirects.Entry, error)
}

// SourceFile reads redirects.toml from the local filesystem.
type SourceFile struct {
	path string
}

// NewSourceFile creates and returns a new instance of SourceFile.
func NewSourceFile(path string) *SourceFile {
	return &SourceFile{path: path}
}

// Load reads and parses the configured file.
func (s *SourceFile) Load(_ context.Context) ([]redirects.Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error reading redirects file %s: %w", s.path, err)
	}
	return redirects.ParseConfig(data)
}

// SourceHTTP downloads redirects.toml from a remote URL, typically the raw
// file in the configuration repository.
type SourceHTTP struct {
	url    string
	client *http.Client
}

const fetchTimeout = 15 * time.Second

// NewSourceHTTP creates and returns a new instance of SourceHTTP.
func NewSourceHTTP(url string) *SourceHTTP {
	return &SourceHTTP{
		url:    url,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Load downloads and parses the latest configuration.
func (s *SourceHTTP) Load(ctx context.Context) ([]redirects.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request for %s: %w", s.url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error downloading redirects from %s: %w", s.url, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading redirects from %s: status %s", s.url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading redirects body: %w", err)
	}

	return redirects.ParseConfig(data)
}
