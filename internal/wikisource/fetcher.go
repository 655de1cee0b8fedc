package wikisource

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"episodemap/internal/config"
	"episodemap/internal/ratelimit"
	"episodemap/internal/services"
)

const component = "wikisource"

// Fetcher returns a wikitext document.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Option configures the HTTP fetchers.
type Option func(*httpOptions)

type httpOptions struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	userAgent  string
	section    int
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *httpOptions) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithLimiter makes every request wait on limiter first.
func WithLimiter(limiter *ratelimit.Limiter) Option {
	return func(o *httpOptions) {
		o.limiter = limiter
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *httpOptions) {
		if ua := strings.TrimSpace(userAgent); ua != "" {
			o.userAgent = ua
		}
	}
}

// WithSection restricts the fetch to one numbered page section. Negative
// values fetch the whole page.
func WithSection(section int) Option {
	return func(o *httpOptions) {
		o.section = section
	}
}

func buildOptions(opts []Option) httpOptions {
	o := httpOptions{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "episodemap",
		section:    -1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds the fetcher selected by cfg.Source.
func New(cfg *config.Config) (Fetcher, error) {
	if cfg == nil {
		return nil, errors.New("wikisource: config is required")
	}
	src := cfg.Source
	opts := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.SourceTimeout()}),
		WithLimiter(ratelimit.New(src.RequestsPerSecond)),
		WithUserAgent(src.UserAgent),
		WithSection(src.Section),
	}
	switch src.Mode {
	case config.SourceModeAPI:
		return NewAPIFetcher(src.APIURL, src.Page, opts...)
	case config.SourceModeEdit:
		return NewEditPageFetcher(src.IndexURL, src.Page, opts...)
	case config.SourceModeFile:
		return NewFileFetcher(src.File)
	default:
		return nil, fmt.Errorf("wikisource: unsupported source mode %q", src.Mode)
	}
}

// get performs a GET and returns the response when the status is 200. The
// caller closes the body.
func get(ctx context.Context, o httpOptions, operation, target string) (*http.Response, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, services.Wrap(services.ErrFetch, component, operation, "wait for rate limiter", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, component, operation, "build request", err)
	}
	req.Header.Set("User-Agent", o.userAgent)

	requestStart := time.Now()
	resp, err := o.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.Wrap(services.ErrFetch, component, operation,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, services.Wrap(services.ErrFetch, component, operation,
			fmt.Sprintf("HTTP %d %s (latency=%v)", resp.StatusCode, http.StatusText(resp.StatusCode), latency), nil)
	}
	return resp, nil
}

// FileFetcher reads wikitext from a local file.
type FileFetcher struct {
	path string
}

// NewFileFetcher returns a fetcher for path.
func NewFileFetcher(path string) (*FileFetcher, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("wikisource: file path required")
	}
	return &FileFetcher{path: path}, nil
}

// Fetch reads the whole file.
func (f *FileFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, component, "file", "read wikitext", err)
	}
	return string(data), nil
}
