// Package geocache answers coordinate lookups from a static seed table and a
// persistent key/value store. It never performs network I/O.
package geocache

import (
	"context"
	"log/slog"
	"strings"

	"episodemap/internal/geo"
	"episodemap/internal/logging"
)

// KeyPrefix namespaces geocode entries in the shared store.
const KeyPrefix = "geo_"

// Key returns the store key for a translated label.
func Key(name string) string {
	return KeyPrefix + name
}

// Store is the persistence the cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Tier identifies which layer answered a lookup.
type Tier string

const (
	TierStatic Tier = "static"
	TierStore  Tier = "store"
)

// Cache is safe for concurrent use when its Store is.
type Cache struct {
	static map[string]geo.Coordinates
	store  Store
	logger *slog.Logger
}

// New returns a cache over static seeds and store. Either may be nil.
func New(static map[string]geo.Coordinates, store Store, logger *slog.Logger) *Cache {
	return &Cache{
		static: static,
		store:  store,
		logger: logging.NewComponentLogger(logger, "geocache"),
	}
}

// Lookup returns the coordinates for name if either tier has them.
func (c *Cache) Lookup(ctx context.Context, name string) (geo.Coordinates, bool) {
	coords, _, ok := c.LookupTier(ctx, name)
	return coords, ok
}

// LookupTier is Lookup that also reports the answering tier. Store errors and
// undecodable values are logged and treated as misses.
func (c *Cache) LookupTier(ctx context.Context, name string) (geo.Coordinates, Tier, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return geo.Coordinates{}, "", false
	}
	if coords, ok := c.static[name]; ok {
		return coords, TierStatic, true
	}
	if c.store == nil {
		return geo.Coordinates{}, "", false
	}

	key := Key(name)
	value, ok, err := c.store.Get(ctx, key)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "geocode cache read failed", "geocache_read_failed",
			logging.String("key", key),
			logging.Error(err),
			logging.Hint("check the cache backend"),
			logging.Impact("location will be geocoded again"))
		return geo.Coordinates{}, "", false
	}
	if !ok {
		return geo.Coordinates{}, "", false
	}
	coords, err := geo.Decode(value)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "geocode cache entry unreadable", "geocache_decode_failed",
			logging.String("key", key),
			logging.String("value", value),
			logging.Error(err),
			logging.Hint("remove the entry with 'episodemap cache remove'"),
			logging.Impact("location will be geocoded again"))
		return geo.Coordinates{}, "", false
	}
	return coords, TierStore, true
}

// Store writes coordinates to the persistent tier. Failures are logged.
func (c *Cache) Store(ctx context.Context, name string, coords geo.Coordinates) {
	name = strings.TrimSpace(name)
	if name == "" || c.store == nil {
		return
	}
	key := Key(name)
	if err := c.store.Set(ctx, key, coords.Encode()); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, c.logger), "geocode cache write failed", "geocache_write_failed",
			logging.String("key", key),
			logging.Error(err),
			logging.Hint("check the cache backend"),
			logging.Impact("location will be geocoded again next run"))
		return
	}
	c.logger.Debug("cached coordinates",
		logging.String("key", key),
		logging.String("coordinates", coords.String()))
}

// StaticSize returns the number of seed entries.
func (c *Cache) StaticSize() int {
	return len(c.static)
}
