package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pfrederiksen/nps-explorer/internal/logger"
)

// DefaultFilename is the cache file used when no path is configured.
const DefaultFilename = "proj2_cache.json"

// Store persists cache entries to a single JSON document.
//
// In the default lenient mode any failure to read the document is treated as an
// empty cache, so a corrupt file is silently replaced on the next save. Strict
// mode reports those failures instead and is meant for tests and debugging.
//
// Saves within one process are serialised. Separate processes sharing a file
// race the read-modify-write and the last writer wins.
type Store struct {
	mu     sync.Mutex
	path   string
	strict bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStrict makes Load and Save report unreadable or malformed cache files.
func WithStrict() StoreOption {
	return func(s *Store) {
		s.strict = true
	}
}

// NewStore creates a Store backed by the file at path. A leading "~/" is expanded
// to the user's home directory.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	if path == "" {
		path = DefaultFilename
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the location of the cache file.
func (s *Store) Path() string {
	return s.path
}

// Load reads every entry from disk. A missing file is an empty cache. Other
// failures also yield an empty cache unless the store is strict.
func (s *Store) Load() (map[string]string, error) {
	entries, err := s.read()
	if err != nil {
		if s.strict {
			return nil, err
		}
		logger.Warn("cache unreadable, starting empty", logger.Fields{"path": s.path}, err)
		return make(map[string]string), nil
	}
	return entries, nil
}

// Get returns the cached value for key.
func (s *Store) Get(key string) (string, bool, error) {
	entries, err := s.Load()
	if err != nil {
		return "", false, err
	}
	value, ok := entries[key]
	return value, ok, nil
}

// Save merges entries into the document on disk and rewrites it. Existing keys
// not present in entries are preserved; keys present in both take the new value.
func (s *Store) Save(entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := s.Load()
	if err != nil {
		return err
	}
	for key, value := range entries {
		merged[key] = value
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}

	return nil
}

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing cache: %w", err)
	}

	// A literal "null" document decodes to a nil map
	if entries == nil {
		entries = make(map[string]string)
	}

	return entries, nil
}
