package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pfrederiksen/nps-explorer/internal/cache"
	"github.com/pfrederiksen/nps-explorer/internal/logger"
)

const (
	UserAgent = "nps-explorer/1.0 (github.com/pfrederiksen/nps-explorer)"
	Timeout   = 30 * time.Second
)

// Store is the persistence the fetcher reads and writes.
type Store interface {
	Load() (map[string]string, error)
	Save(entries map[string]string) error
}

// Fetcher performs cached HTTP GET requests.
type Fetcher struct {
	store     Store
	client    *http.Client
	userAgent string
	status    io.Writer
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		f.userAgent = userAgent
	}
}

// WithStatusWriter sets where the "Using Cache"/"Fetching" indicator is printed.
func WithStatusWriter(w io.Writer) Option {
	return func(f *Fetcher) {
		f.status = w
	}
}

// New creates a Fetcher backed by store.
func New(store Store, opts ...Option) *Fetcher {
	f := &Fetcher{
		store: store,
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
		status:    os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the body for a GET of rawURL with params as its query string.
// A cached body is returned without touching the network; otherwise the request
// is made once and a successful body is saved before being returned.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, params cache.Params) (string, error) {
	key := cache.BuildKey(rawURL, params)

	entries, err := f.store.Load()
	if err != nil {
		return "", &FetchError{URL: rawURL, Cause: ErrCauseCache, Err: err}
	}
	logger.SetGauge("cache.entries", float64(len(entries)))

	if body, ok := entries[key]; ok {
		fmt.Fprintln(f.status, "Using Cache")
		logger.IncrCounter("fetch.cache_hit")
		logger.Debug("cache hit", logger.Fields{"url": rawURL})
		return body, nil
	}

	fmt.Fprintln(f.status, "Fetching")
	logger.IncrCounter("fetch.cache_miss")

	body, err := f.get(ctx, rawURL, params)
	if err != nil {
		logger.IncrCounter("fetch.error")
		logger.Warn("fetch failed", logger.Fields{"url": rawURL}, err)
		return "", err
	}

	if err := f.store.Save(map[string]string{key: body}); err != nil {
		return "", &FetchError{URL: rawURL, Cause: ErrCauseCache, Err: err}
	}

	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string, params cache.Params) (string, error) {
	reqURL, err := withQuery(rawURL, params)
	if err != nil {
		return "", &FetchError{URL: rawURL, Cause: ErrCauseRequest, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", &FetchError{URL: rawURL, Cause: ErrCauseRequest, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	// The query string can carry the API key, so only the base URL is logged
	logger.Debug("fetching", logger.Fields{"url": rawURL, "params": len(params)})
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: rawURL, Cause: ErrCauseNetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	logger.RecordTiming("fetch.http", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{URL: rawURL, StatusCode: resp.StatusCode, Cause: ErrCauseStatus}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: rawURL, Cause: ErrCauseReadBody, Err: err}
	}

	return string(data), nil
}

// withQuery appends params to any query already present in rawURL.
func withQuery(rawURL string, params cache.Params) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	encoded := params.Values().Encode()
	if u.RawQuery == "" {
		u.RawQuery = encoded
	} else {
		u.RawQuery = u.RawQuery + "&" + encoded
	}
	return u.String(), nil
}
