package scraper

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/nps-explorer/internal/cache"
	"github.com/pfrederiksen/nps-explorer/internal/park"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

// fakeFetcher serves fixed bodies by URL and records every request.
type fakeFetcher struct {
	pages    map[string]string
	requests []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string, params cache.Params) (string, error) {
	f.requests = append(f.requests, rawURL)
	body, ok := f.pages[rawURL]
	if !ok {
		return "", errors.New("unexpected status code: 404")
	}
	return body, nil
}

func michiganPages(t *testing.T) map[string]string {
	return map[string]string{
		"https://www.nps.gov/index.htm":          loadFixture(t, "index.html"),
		"https://www.nps.gov/state/mi/index.htm": loadFixture(t, "state_mi.html"),
		"https://www.nps.gov/isro/":              loadFixture(t, "site_isro.html"),
		"https://www.nps.gov/mopo/":              loadFixture(t, "site_mopo.html"),
	}
}

func TestParseStateDirectory(t *testing.T) {
	states, err := ParseStateDirectory(strings.NewReader(loadFixture(t, "index.html")), DefaultHost)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"alabama":              "https://www.nps.gov/state/al/index.htm",
		"michigan":             "https://www.nps.gov/state/mi/index.htm",
		"wyoming":              "https://www.nps.gov/state/wy/index.htm",
		"district of columbia": "https://www.nps.gov/state/dc/index.htm",
	}, states)
}

func TestParseStateDirectory_SingleEntry(t *testing.T) {
	html := `<ul class="dropdown-menu SearchBar-keywordSearch"><li><a href="/state/mi/index.htm">Michigan</a></li></ul>`

	states, err := ParseStateDirectory(strings.NewReader(html), "https://www.nps.gov")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"michigan": "https://www.nps.gov/state/mi/index.htm"}, states)
}

func TestParseStateDirectory_MarkupErrors(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no dropdown", `<ul class="dropdown-menu"><li><a href="/x">X</a></li></ul>`},
		{"entry without link", `<ul class="dropdown-menu SearchBar-keywordSearch"><li>Michigan</li></ul>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStateDirectory(strings.NewReader(tt.html), DefaultHost)

			var markupErr *MarkupError
			require.True(t, errors.As(err, &markupErr), "error = %v, want MarkupError", err)
			assert.Equal(t, "index page", markupErr.Page)
		})
	}
}

func TestParseStateSites(t *testing.T) {
	urls, err := ParseStateSites(strings.NewReader(loadFixture(t, "state_mi.html")), DefaultHost)
	require.NoError(t, err)

	// Nested plan-your-visit list items are not parks
	assert.Equal(t, []string{
		"https://www.nps.gov/mopo/",
		"https://www.nps.gov/isro/",
	}, urls)
}

func TestParseStateSites_Empty(t *testing.T) {
	urls, err := ParseStateSites(strings.NewReader(`<ul id="list_parks"></ul>`), DefaultHost)
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestParseStateSites_MarkupErrors(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no park list", `<ul id="other"><li><h3><a href="/isro/">Isle Royale</a></h3></li></ul>`},
		{"park without heading", `<ul id="list_parks"><li><a href="/isro/">Isle Royale</a></li></ul>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStateSites(strings.NewReader(tt.html), DefaultHost)

			var markupErr *MarkupError
			require.True(t, errors.As(err, &markupErr), "error = %v, want MarkupError", err)
			assert.Equal(t, "state page", markupErr.Page)
		})
	}
}

func TestParseSitePage(t *testing.T) {
	site, err := ParseSitePage(strings.NewReader(loadFixture(t, "site_isro.html")))
	require.NoError(t, err)

	assert.Equal(t, park.Site{
		Category: "National Park",
		Name:     "Isle Royale",
		Address:  "Houghton, MI",
		Zipcode:  "49931",
		Phone:    "(906) 482-0984",
	}, site)
	assert.Equal(t, "Isle Royale (National Park): Houghton, MI 49931", site.Info())
}

func TestParseSitePage_BlankCategory(t *testing.T) {
	site, err := ParseSitePage(strings.NewReader(loadFixture(t, "site_mopo.html")))
	require.NoError(t, err)

	assert.Equal(t, "", site.Category)
	assert.Equal(t, "Motor Cities", site.Name)
	assert.Equal(t, "Detroit, MI", site.Address)
	assert.Equal(t, "48243", site.Zipcode)
	assert.Equal(t, "313-259-3425", site.Phone)
}

func TestParseSitePage_MarkupErrors(t *testing.T) {
	footer := `<div id="ParkFooter"><p class="adr"><span>1 Main St</span><span><span>Town</span>, <span>MI</span> <span>49000</span></span></p><span class="tel">555</span></div>`
	hero := `<a class="Hero-title">Name</a><span class="Hero-designation">National Park</span>`

	tests := []struct {
		name    string
		html    string
		element string
	}{
		{"no title", `<span class="Hero-designation">National Park</span>` + footer, "title"},
		{"no designation", `<a class="Hero-title">Name</a>` + footer, "designation"},
		{"no footer", hero, "footer"},
		{"no phone", hero + `<div id="ParkFooter"><p class="adr"><span>a</span><span><span>b</span><span>c</span><span>d</span></span></p></div>`, "phone"},
		{"no address", hero + `<div id="ParkFooter"><span class="tel">555</span></div>`, "address"},
		{"short address", hero + `<div id="ParkFooter"><span class="tel">555</span><p class="adr"><span>a</span><span><span>b</span></span></p></div>`, "city, state and zip code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSitePage(strings.NewReader(tt.html))

			var markupErr *MarkupError
			require.True(t, errors.As(err, &markupErr), "error = %v, want MarkupError", err)
			assert.Equal(t, tt.element, markupErr.Element)
		})
	}
}

func TestScraper_BuildStateDirectory(t *testing.T) {
	f := &fakeFetcher{pages: michiganPages(t)}
	s := New(f)

	states, err := s.BuildStateDirectory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://www.nps.gov/state/mi/index.htm", states["michigan"])
	assert.Equal(t, []string{"https://www.nps.gov/index.htm"}, f.requests)
}

func TestScraper_ListSitesForState(t *testing.T) {
	f := &fakeFetcher{pages: michiganPages(t)}
	s := New(f)

	sites, err := s.ListSitesForState(context.Background(), "https://www.nps.gov/state/mi/index.htm")
	require.NoError(t, err)

	require.Len(t, sites, 2)
	assert.Equal(t, "Motor Cities", sites[0].Name)
	assert.Equal(t, "Isle Royale", sites[1].Name)
	assert.Equal(t, []string{
		"https://www.nps.gov/state/mi/index.htm",
		"https://www.nps.gov/mopo/",
		"https://www.nps.gov/isro/",
	}, f.requests)
}

func TestScraper_ListSitesForState_SiteFetchFails(t *testing.T) {
	pages := michiganPages(t)
	delete(pages, "https://www.nps.gov/isro/")
	s := New(&fakeFetcher{pages: pages})

	_, err := s.ListSitesForState(context.Background(), "https://www.nps.gov/state/mi/index.htm")
	assert.Error(t, err)
}

func TestScraper_MarkupErrorIsWrapped(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{"https://www.nps.gov/index.htm": "<html></html>"}}
	s := New(f)

	_, err := s.BuildStateDirectory(context.Background())

	var markupErr *MarkupError
	require.True(t, errors.As(err, &markupErr))
	assert.Contains(t, err.Error(), "https://www.nps.gov/index.htm")
}

func TestScraper_CustomHost(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{
		"http://localhost:8080/home.htm": `<ul class="dropdown-menu SearchBar-keywordSearch"><li><a href="/state/mi/index.htm">Michigan</a></li></ul>`,
	}}
	s := New(f, WithHost("http://localhost:8080/"), WithIndexPath("/home.htm"))

	states, err := s.BuildStateDirectory(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/state/mi/index.htm", states["michigan"])
}

func TestNew(t *testing.T) {
	s := New(&fakeFetcher{})

	if s.host != DefaultHost {
		t.Errorf("scraper host = %q, want %q", s.host, DefaultHost)
	}
	if s.IndexURL() != "https://www.nps.gov/index.htm" {
		t.Errorf("IndexURL() = %q, want https://www.nps.gov/index.htm", s.IndexURL())
	}
}
