package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/pfrederiksen/nps-explorer/internal/cache"
	"github.com/pfrederiksen/nps-explorer/internal/logger"
	"github.com/pfrederiksen/nps-explorer/internal/park"
)

const (
	DefaultBaseURL    = "http://www.mapquestapi.com/search/v2/radius"
	DefaultRadius     = 10
	DefaultUnits      = "m"
	DefaultMaxMatches = 10
)

// ErrMissingResults is returned when a response has no searchResults member,
// as MapQuest does for rejected keys and malformed requests.
var ErrMissingResults = errors.New("response has no searchResults")

// Fetcher returns the body of a GET request.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, params cache.Params) (string, error)
}

// Client is a client for the MapQuest radius search API
type Client struct {
	apiKey     string
	baseURL    string
	fetcher    Fetcher
	radius     int
	units      string
	maxMatches int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the radius search endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithRadius sets the search radius and its units ("m" for miles, "km").
func WithRadius(radius int, units string) Option {
	return func(c *Client) {
		c.radius = radius
		c.units = units
	}
}

// WithMaxMatches caps the number of results returned by the API.
func WithMaxMatches(n int) Option {
	return func(c *Client) {
		c.maxMatches = n
	}
}

// NewClient creates a new radius search client
func NewClient(apiKey string, fetcher Fetcher, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		fetcher:    fetcher,
		radius:     DefaultRadius,
		units:      DefaultUnits,
		maxMatches: DefaultMaxMatches,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchResponse represents the API search response
type SearchResponse struct {
	SearchResults []Place `json:"searchResults"`
}

// Place is a single business returned by the search
type Place struct {
	Name   string      `json:"name"`
	Fields PlaceFields `json:"fields"`
}

// PlaceFields holds the descriptive fields of a Place
type PlaceFields struct {
	GroupSICCodeName string `json:"group_sic_code_name"`
	Address          string `json:"address"`
	City             string `json:"city"`
}

// Category returns the business category or "no category".
func (p Place) Category() string {
	if p.Fields.GroupSICCodeName == "" {
		return "no category"
	}
	return p.Fields.GroupSICCodeName
}

// Address returns the street address or "no address".
func (p Place) Address() string {
	if p.Fields.Address == "" {
		return "no address"
	}
	return p.Fields.Address
}

// City returns the city or "no city".
func (p Place) City() string {
	if p.Fields.City == "" {
		return "no city"
	}
	return p.Fields.City
}

// Line renders the place as a list entry.
func (p Place) Line() string {
	return fmt.Sprintf("- %s (%s): %s, %s", p.Name, p.Category(), p.Address(), p.City())
}

// params returns the query parameters for a search around zipcode. The order is
// fixed because it is part of the cache key.
func (c *Client) params(zipcode string) cache.Params {
	return cache.Params{
		{Key: "key", Value: c.apiKey},
		{Key: "origin", Value: zipcode},
		{Key: "radius", Value: strconv.Itoa(c.radius)},
		{Key: "units", Value: c.units},
		{Key: "maxMatches", Value: strconv.Itoa(c.maxMatches)},
		{Key: "ambiguities", Value: "ignore"},
		{Key: "outFormat", Value: "json"},
	}
}

// NearbyPlaces searches for businesses around the site's zip code.
func (c *Client) NearbyPlaces(ctx context.Context, site park.Site) (*SearchResponse, error) {
	body, err := c.fetcher.Fetch(ctx, c.baseURL, c.params(site.Zipcode))
	if err != nil {
		return nil, fmt.Errorf("searching near %s: %w", site.Zipcode, err)
	}

	var raw struct {
		SearchResults *[]Place `json:"searchResults"`
	}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	if raw.SearchResults == nil {
		return nil, fmt.Errorf("searching near %s: %w", site.Zipcode, ErrMissingResults)
	}
	result := SearchResponse{SearchResults: *raw.SearchResults}

	logger.Debug("nearby places", logger.Fields{
		"site":    site.Name,
		"origin":  site.Zipcode,
		"results": len(result.SearchResults),
	})

	return &result, nil
}
