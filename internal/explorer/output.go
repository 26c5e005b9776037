package explorer

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/nps-explorer/internal/park"
	"github.com/pfrederiksen/nps-explorer/internal/places"
)

const separator = "-----------------------------------------------------"

// WriteSiteList prints the numbered site listing for a state.
func WriteSiteList(w io.Writer, state string, sites []park.Site) {
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "List of national sites in %s\n", state)
	fmt.Fprintln(w, separator)
	for i, site := range sites {
		fmt.Fprintf(w, "[%d] %s\n", i+1, site.Info())
	}
}

// WritePlaces prints the businesses found near a site.
func WritePlaces(w io.Writer, site park.Site, results []places.Place) {
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Places near %s\n", site.Name)
	fmt.Fprintln(w, separator)
	for _, p := range results {
		fmt.Fprintln(w, p.Line())
	}
}
