// Package places queries the MapQuest radius search for businesses near a site.
//
// Requests go through the cached fetcher, so a repeated search for the same zip
// code is answered from disk. The API key is part of the request key and query
// string but is never logged.
package places
