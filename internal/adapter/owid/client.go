package owid

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/couchcryptid/covid-trends/internal/domain"
)

// Client fetches the OWID dataset over HTTP. It implements
// pipeline.Fetcher.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a dataset client for the given URL. The timeout bounds
// the whole download; there are no retries, a failed fetch aborts the run.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch downloads and decodes the dataset.
func (c *Client) Fetch(ctx context.Context) ([]domain.RawRecord, error) {
	c.logger.Info("fetching dataset", "url", c.url)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch dataset: status %d", resp.StatusCode)
	}

	records, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	c.logger.Info("dataset fetched", "rows", len(records), "elapsed", time.Since(start))
	return records, nil
}

// FileSource reads the OWID dataset from a local CSV file. It implements
// pipeline.Fetcher for offline runs.
type FileSource struct {
	path   string
	logger *slog.Logger
}

// NewFileSource creates a local-file dataset source.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{path: path, logger: logger}
}

// Fetch reads and decodes the dataset file.
func (s *FileSource) Fetch(_ context.Context) ([]domain.RawRecord, error) {
	s.logger.Info("reading dataset", "path", s.path)

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	s.logger.Info("dataset read", "rows", len(records))
	return records, nil
}
