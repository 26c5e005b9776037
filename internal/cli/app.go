package cli

import (
	"fmt"
	"io"
	"net/http"

	"github.com/pfrederiksen/nps-explorer/internal/cache"
	"github.com/pfrederiksen/nps-explorer/internal/config"
	"github.com/pfrederiksen/nps-explorer/internal/fetch"
	"github.com/pfrederiksen/nps-explorer/internal/logger"
	"github.com/pfrederiksen/nps-explorer/internal/places"
	"github.com/pfrederiksen/nps-explorer/internal/scraper"
)

// app holds the components shared by every command.
type app struct {
	cfg     *config.Config
	store   *cache.Store
	scraper *scraper.Scraper
	places  *places.Client
}

// newApp loads configuration and wires the cache, fetcher, scraper and places
// client. Fetch status lines go to status; log entries go to logOut.
func newApp(status, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagCacheFile != "" {
		cfg.CacheFile = flagCacheFile
	}

	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, logOut))

	var storeOpts []cache.StoreOption
	if flagStrictCache {
		storeOpts = append(storeOpts, cache.WithStrict())
	}
	store, err := cache.NewStore(cfg.CacheFile, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("initializing cache: %w", err)
	}

	timeout, err := cfg.HTTP.GetTimeout()
	if err != nil {
		return nil, err
	}

	fetcher := fetch.New(store,
		fetch.WithHTTPClient(&http.Client{Timeout: timeout}),
		fetch.WithUserAgent(cfg.HTTP.UserAgent),
		fetch.WithStatusWriter(status),
	)

	logger.Info("configured", logger.Fields{
		"cache_file": store.Path(),
		"site_host":  cfg.Site.Host,
		"places_url": cfg.Places.URL,
		"timeout":    timeout.String(),
	})

	return &app{
		cfg:   cfg,
		store: store,
		scraper: scraper.New(fetcher,
			scraper.WithHost(cfg.Site.Host),
			scraper.WithIndexPath(cfg.Site.IndexPath),
		),
		places: places.NewClient(cfg.APIKey, fetcher,
			places.WithBaseURL(cfg.Places.URL),
			places.WithRadius(cfg.Places.Radius, cfg.Places.Units),
			places.WithMaxMatches(cfg.Places.MaxMatches),
		),
	}, nil
}

// logMetrics writes the fetch metrics collected during the run at DEBUG.
func logMetrics() {
	logger.Debug("metrics", logger.Fields(logger.GetMetricsSnapshot()))
}
