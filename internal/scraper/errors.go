package scraper

import "fmt"

// MarkupError reports an element the parser expected but could not find. The
// page layout belongs to nps.gov and can change without notice.
type MarkupError struct {
	Page    string
	Element string
}

func (e *MarkupError) Error() string {
	return fmt.Sprintf("unexpected %s markup: missing %s", e.Page, e.Element)
}
