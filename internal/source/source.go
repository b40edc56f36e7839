// Package source fetches dictionary pages and hands them to the extraction
// layer as parsed markup trees.
package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/f3rmion/pulvis/internal/markup"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "pulvis/1.0 (+https://github.com/f3rmion/pulvis)"
	DefaultTimeout   = 15 * time.Second
)

// Source retrieves a parsed document for a URL.
type Source interface {
	Fetch(ctx context.Context, url string) (markup.Node, error)
}

// Options configures an HTTPSource.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond caps outbound requests; zero disables limiting.
	RequestsPerSecond float64
	Burst             int
}

// HTTPSource fetches pages over HTTP, one request at a time per limiter token.
type HTTPSource struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// NewHTTPSource creates an HTTP source.
func NewHTTPSource(opts Options) *HTTPSource {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &HTTPSource{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter:   limiter,
		userAgent: opts.UserAgent,
	}
}

// Fetch downloads and parses the page at url. Non-2xx responses are errors.
func (s *HTTPSource) Fetch(ctx context.Context, url string) (markup.Node, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html")

	t0 := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(t0)).
		Msg("fetched page")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	doc, err := markup.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return doc, nil
}

// StatusError reports an unexpected HTTP status from the lexical site.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.Code)
}
