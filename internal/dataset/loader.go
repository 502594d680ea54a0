package dataset

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"titanicdash/internal/models"
)

// Loader fetches the passenger dataset over HTTP and parses it
type Loader struct {
	client *http.Client
	url    string
	strict bool
	logger *zap.Logger
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithStrict makes Load fail when any row fails validation
func WithStrict(strict bool) LoaderOption {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithLogger sets the logger used to report skipped rows
func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader for the dataset at url using the given client
func NewLoader(client *http.Client, url string, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		url:    url,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewClient returns an HTTP client that also serves file:// URLs from staticDir
func NewClient(staticDir string, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir(staticDir)))
	return &http.Client{Transport: transport, Timeout: timeout}
}

// URL returns the dataset location
func (l *Loader) URL() string {
	return l.url
}

// Load fetches and parses the dataset
func (l *Loader) Load(ctx context.Context) ([]models.Passenger, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: l.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: l.url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	result, err := Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}

	if len(result.Issues) > 0 {
		if l.strict {
			return nil, result.Err()
		}
		l.logger.Warn("Skipped invalid dataset rows",
			zap.String("url", l.url),
			zap.Int("issues", len(result.Issues)),
			zap.Stringer("first", result.Issues[0]))
	}

	l.logger.Info("Dataset loaded", zap.String("url", l.url), zap.Int("records", len(result.Records)))
	return result.Records, nil
}
