package docsearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

var fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "pgagent_docs_fetch_total",
	Help: "Documentation page fetches by result.",
}, []string{"result"})

const maxPageBytes = 8 << 20

// Fetcher downloads documentation pages politely: rate limited and
// cached.
type Fetcher struct {
	client    *http.Client
	userAgent string
	limiter   *Limiter
	cache     Cache
	ttl       time.Duration
	log       zerolog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default client, which times out after 10s.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// WithCache replaces the in-memory cache.
func WithCache(c Cache, ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
		f.ttl = ttl
	}
}

// WithLimiter replaces the rate limiter. A nil limiter disables limiting.
func WithLimiter(l *Limiter) FetcherOption {
	return func(f *Fetcher) { f.limiter = l }
}

// NewFetcher returns a fetcher sending userAgent.
func NewFetcher(userAgent string, log zerolog.Logger, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: 10 * time.Second},
		userAgent: userAgent,
		cache:     NewMemoryCache(),
		log:       log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body of url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.cache != nil {
		body, ok, err := f.cache.Get(ctx, url)
		if err != nil {
			f.log.Warn().Err(err).Str("url", url).Msg("cache read failed")
		} else if ok {
			fetchTotal.WithLabelValues("hit").Inc()
			return body, nil
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := f.get(ctx, url)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		return "", err
	}
	fetchTotal.WithLabelValues("miss").Inc()

	if f.cache != nil {
		if err := f.cache.Set(ctx, url, body, f.ttl); err != nil {
			f.log.Warn().Err(err).Str("url", url).Msg("cache write failed")
		}
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(data), nil
}
