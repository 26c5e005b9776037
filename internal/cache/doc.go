// Package cache provides the flat on-disk request cache used by nps-explorer.
//
// The cache is a single JSON object mapping request keys to raw response bodies.
// Entries are never expired or evicted; every save reloads the file, merges the
// new entries on top and rewrites it in full. Request keys are built from a URL
// and an ordered parameter list so that identical requests always share an entry.
package cache
