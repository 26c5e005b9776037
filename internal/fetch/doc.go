// Package fetch provides the cached HTTP GET used for every network request.
//
// A Fetcher consults the on-disk cache before issuing a request and stores every
// successful response body under its request key. Cached entries never expire.
// Each call prints "Using Cache" or "Fetching" to the status writer, which is the
// tool's user-facing indicator of network activity.
package fetch
