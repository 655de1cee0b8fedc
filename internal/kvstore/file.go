package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"episodemap/internal/logging"
)

// FileStore keeps entries in memory and rewrites a JSON file on every
// change. With an empty path it holds nothing and every write is a no-op.
type FileStore struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewFileStore loads path if it exists. A file that cannot be read or parsed
// is logged and the store starts empty.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	logger = logging.NewComponentLogger(logger, "kvstore")

	s := &FileStore{
		path:    strings.TrimSpace(path),
		logger:  logger,
		entries: make(map[string]Entry),
	}
	if s.path == "" {
		return s
	}

	if err := s.load(); err != nil {
		logging.WarnWithContext(logger, "failed to load cache file", "kvstore_load_failed",
			logging.Error(err),
			logging.String("path", s.path),
			logging.Hint("delete the file if it is corrupt"),
			logging.Impact("cache starts empty; locations will be geocoded again"))
	}
	return s
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value stored at key.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", false, err
	}
	if s.path == "" {
		return "", false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	return entry.Value, ok, nil
}

// Set stores value at key and persists the file.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[key]
	s.entries[key] = Entry{Key: key, Value: value, UpdatedAt: now()}
	if err := s.save(); err != nil {
		if existed {
			s.entries[key] = previous
		} else {
			delete(s.entries, key)
		}
		return fmt.Errorf("persist cache: %w", err)
	}
	return nil
}

// Delete removes key and persists the file.
func (s *FileStore) Delete(_ context.Context, key string) (bool, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return false, err
	}
	if s.path == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, exists := s.entries[key]
	if !exists {
		return false, nil
	}
	delete(s.entries, key)
	if err := s.save(); err != nil {
		s.entries[key] = previous
		return false, fmt.Errorf("persist cache: %w", err)
	}
	return true, nil
}

// List returns entries under prefix ordered by key.
func (s *FileStore) List(_ context.Context, prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return matchingEntries(s.entries, prefix), nil
}

// Count returns the number of entries under prefix.
func (s *FileStore) Count(_ context.Context, prefix string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return countMatching(s.entries, prefix), nil
}

// Clear removes entries under prefix and persists the file.
func (s *FileStore) Clear(_ context.Context, prefix string) (int, error) {
	if s.path == "" {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make(map[string]Entry)
	for key, entry := range s.entries {
		if strings.HasPrefix(key, prefix) {
			removed[key] = entry
			delete(s.entries, key)
		}
	}
	if len(removed) == 0 {
		return 0, nil
	}
	if err := s.save(); err != nil {
		for key, entry := range removed {
			s.entries[key] = entry
		}
		return 0, fmt.Errorf("persist cache: %w", err)
	}
	return len(removed), nil
}

// Close is a no-op; every change is already on disk.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cache file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache file: %w", err)
	}

	s.entries = make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if key := strings.TrimSpace(entry.Key); key != "" {
			entry.Key = key
			s.entries[key] = entry
		}
	}

	s.logger.Debug("loaded cache file",
		logging.Int("entry_count", len(s.entries)),
		logging.String("path", s.path))
	return nil
}

// save writes the file atomically via a temp file and rename.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(matchingEntries(s.entries, ""), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func matchingEntries(entries map[string]Entry, prefix string) []Entry {
	out := make([]Entry, 0, len(entries))
	for key, entry := range entries {
		if strings.HasPrefix(key, prefix) {
			out = append(out, entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func countMatching(entries map[string]Entry, prefix string) int {
	count := 0
	for key := range entries {
		if strings.HasPrefix(key, prefix) {
			count++
		}
	}
	return count
}
