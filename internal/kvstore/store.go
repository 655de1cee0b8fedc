package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"episodemap/internal/config"
)

// ErrEmptyKey is returned when an operation receives a blank key.
var ErrEmptyKey = errors.New("kvstore: key cannot be empty")

// Entry is one stored key/value pair.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store is a string key/value store. Set overwrites; last writer wins.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete reports whether the key existed.
	Delete(ctx context.Context, key string) (bool, error)
	// List returns entries whose key starts with prefix, sorted by key.
	List(ctx context.Context, prefix string) ([]Entry, error)
	Count(ctx context.Context, prefix string) (int, error)
	// Clear removes entries whose key starts with prefix and returns how many
	// were removed.
	Clear(ctx context.Context, prefix string) (int, error)
	Close() error
}

// Open builds the backend selected by cfg.Cache.
func Open(cfg *config.Config, logger *slog.Logger) (Store, error) {
	if cfg == nil {
		return nil, errors.New("kvstore: config is required")
	}
	switch cfg.Cache.Backend {
	case config.CacheBackendSQLite:
		return OpenSQLite(cfg.Cache.Path)
	case config.CacheBackendJSON:
		return NewFileStore(cfg.Cache.Path, logger), nil
	case config.CacheBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("kvstore: unsupported backend %q", cfg.Cache.Backend)
	}
}

func normalizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrEmptyKey
	}
	return key, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func now() time.Time {
	return time.Now().UTC()
}
