// Package scraper provides HTML parsing and page orchestration for nps.gov.
//
// The scraper package extracts three things from the public National Park Service
// website: the state directory from the index page's keyword-search dropdown, the
// site page links from a state page's park list, and the name, designation, phone
// and address of a single site page. Pages are fetched through a cached fetcher,
// so repeated runs read them from disk. A page missing any expected element yields
// a MarkupError.
package scraper
