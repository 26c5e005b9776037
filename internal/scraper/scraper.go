package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/nps-explorer/internal/cache"
	"github.com/pfrederiksen/nps-explorer/internal/logger"
	"github.com/pfrederiksen/nps-explorer/internal/park"
)

const (
	DefaultHost      = "https://www.nps.gov"
	DefaultIndexPath = "/index.htm"
)

// Fetcher returns the body of a GET request.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, params cache.Params) (string, error)
}

// Scraper fetches and parses nps.gov pages
type Scraper struct {
	fetcher   Fetcher
	host      string
	indexPath string
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithHost sets the scheme and host prefixed to every scraped link.
func WithHost(host string) Option {
	return func(s *Scraper) {
		s.host = strings.TrimSuffix(host, "/")
	}
}

// WithIndexPath sets the path of the page holding the state dropdown.
func WithIndexPath(path string) Option {
	return func(s *Scraper) {
		s.indexPath = path
	}
}

// New creates a new Scraper instance
func New(fetcher Fetcher, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:   fetcher,
		host:      DefaultHost,
		indexPath: DefaultIndexPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IndexURL returns the URL of the page holding the state dropdown.
func (s *Scraper) IndexURL() string {
	return s.host + s.indexPath
}

// BuildStateDirectory maps lower-cased state names to their state page URLs.
func (s *Scraper) BuildStateDirectory(ctx context.Context) (map[string]string, error) {
	indexURL := s.IndexURL()

	body, err := s.fetcher.Fetch(ctx, indexURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching state directory: %w", err)
	}

	states, err := ParseStateDirectory(strings.NewReader(body), s.host)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", indexURL, err)
	}

	logger.Debug("built state directory", logger.Fields{"states": len(states)})
	return states, nil
}

// ListSitesForState returns every site listed on a state page, in page order.
func (s *Scraper) ListSitesForState(ctx context.Context, stateURL string) ([]park.Site, error) {
	body, err := s.fetcher.Fetch(ctx, stateURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching state page: %w", err)
	}

	urls, err := ParseStateSites(strings.NewReader(body), s.host)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", stateURL, err)
	}

	sites := make([]park.Site, 0, len(urls))
	for _, siteURL := range urls {
		site, err := s.SiteFromURL(ctx, siteURL)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}

	logger.Debug("listed sites", logger.Fields{"state_url": stateURL, "sites": len(sites)})
	return sites, nil
}

// SiteFromURL fetches and parses a single site page.
func (s *Scraper) SiteFromURL(ctx context.Context, siteURL string) (park.Site, error) {
	body, err := s.fetcher.Fetch(ctx, siteURL, nil)
	if err != nil {
		return park.Site{}, fmt.Errorf("fetching site page: %w", err)
	}

	site, err := ParseSitePage(strings.NewReader(body))
	if err != nil {
		return park.Site{}, fmt.Errorf("parsing %s: %w", siteURL, err)
	}

	return site, nil
}
