package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pfrederiksen/nps-explorer/internal/explorer"
	"github.com/pfrederiksen/nps-explorer/internal/park"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// StateEntry is one row of the state directory
type StateEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SitesResult is the JSON shape of a state's site listing
type SitesResult struct {
	State     string      `json:"state"`
	Sites     []park.Site `json:"sites"`
	SiteCount int         `json:"site_count"`
}

// WriteStates writes the state directory sorted by name
func WriteStates(w io.Writer, directory map[string]string, format OutputFormat) error {
	names := make([]string, 0, len(directory))
	for name := range directory {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]StateEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, StateEntry{Name: name, URL: directory[name]})
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatText:
		for _, entry := range entries {
			fmt.Fprintf(w, "%s: %s\n", entry.Name, entry.URL)
		}
		fmt.Fprintf(w, "\nTotal: %d states\n", len(entries))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteSites writes a state's sites in page order
func WriteSites(w io.Writer, state string, sites []park.Site, format OutputFormat) error {
	switch format {
	case FormatJSON:
		if sites == nil {
			sites = []park.Site{}
		}
		return writeJSON(w, SitesResult{State: state, Sites: sites, SiteCount: len(sites)})
	case FormatText:
		explorer.WriteSiteList(w, state, sites)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
