// Package park defines the record scraped from a National Park Service site page.
package park
