package scraper

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/nps-explorer/internal/park"
)

const (
	stateMenuSelector  = ".dropdown-menu.SearchBar-keywordSearch"
	parkListSelector   = "#list_parks"
	heroTitleSelector  = ".Hero-title"
	heroDesigSelector  = ".Hero-designation"
	parkFooterSelector = "#ParkFooter"
	phoneSelector      = ".tel"
	addressSelector    = ".adr"

	pageIndex = "index page"
	pageState = "state page"
	pageSite  = "site page"
)

// ParseStateDirectory maps lower-cased state names to state page URLs using the
// index page's state dropdown. Link targets are prefixed with host.
func ParseStateDirectory(r io.Reader, host string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	menu := doc.Find(stateMenuSelector).First()
	if menu.Length() == 0 {
		return nil, &MarkupError{Page: pageIndex, Element: "state dropdown"}
	}

	states := make(map[string]string)
	var missing error
	menu.ChildrenFiltered("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		href, ok := li.Find("a").First().Attr("href")
		if !ok {
			missing = &MarkupError{Page: pageIndex, Element: fmt.Sprintf("link in state entry %d", i+1)}
			return false
		}
		name := strings.ToLower(strings.TrimSpace(li.Text()))
		states[name] = host + href
		return true
	})
	if missing != nil {
		return nil, missing
	}

	return states, nil
}

// ParseStateSites returns the site page URLs listed on a state page, in the order
// they appear. Each URL is the first heading link of a park list item prefixed
// with host.
func ParseStateSites(r io.Reader, host string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	list := doc.Find(parkListSelector).First()
	if list.Length() == 0 {
		return nil, &MarkupError{Page: pageState, Element: "park list"}
	}

	urls := make([]string, 0)
	var missing error
	list.ChildrenFiltered("li").EachWithBreak(func(i int, li *goquery.Selection) bool {
		href, ok := li.Find("h3").First().Find("a").First().Attr("href")
		if !ok {
			missing = &MarkupError{Page: pageState, Element: fmt.Sprintf("heading link in park %d", i+1)}
			return false
		}
		urls = append(urls, host+href)
		return true
	})
	if missing != nil {
		return nil, missing
	}

	return urls, nil
}

// ParseSitePage builds a Site from a site page. The footer address block holds
// the street address in its first span; the second span nests city, state and
// zip code spans.
func ParseSitePage(r io.Reader) (park.Site, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return park.Site{}, fmt.Errorf("parsing HTML: %w", err)
	}

	title := doc.Find(heroTitleSelector).First()
	if title.Length() == 0 {
		return park.Site{}, &MarkupError{Page: pageSite, Element: "title"}
	}

	designation := doc.Find(heroDesigSelector).First()
	if designation.Length() == 0 {
		return park.Site{}, &MarkupError{Page: pageSite, Element: "designation"}
	}

	footer := doc.Find(parkFooterSelector).First()
	if footer.Length() == 0 {
		return park.Site{}, &MarkupError{Page: pageSite, Element: "footer"}
	}

	phone := footer.Find(phoneSelector).First()
	if phone.Length() == 0 {
		return park.Site{}, &MarkupError{Page: pageSite, Element: "phone"}
	}

	locality := footer.Find(addressSelector).First().Find("span").Eq(1)
	if locality.Length() == 0 {
		return park.Site{}, &MarkupError{Page: pageSite, Element: "address"}
	}

	parts := locality.Find("span")
	if parts.Length() < 3 {
		return park.Site{}, &MarkupError{Page: pageSite, Element: "city, state and zip code"}
	}

	address := strings.TrimSpace(parts.Eq(0).Text()) + ", " + strings.TrimSpace(parts.Eq(1).Text())

	return park.NewSite(
		strings.TrimSpace(designation.Text()),
		strings.TrimSpace(title.Text()),
		address,
		strings.TrimSpace(parts.Eq(2).Text()),
		strings.TrimSpace(phone.Text()),
	), nil
}
