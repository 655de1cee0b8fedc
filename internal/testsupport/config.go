package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"episodemap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The cache defaults to a SQLite file under the data directory and the
// geocoder spacing to zero so tests do not sleep.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Cache.Backend = config.CacheBackendSQLite
	cfgVal.Cache.Path = filepath.Join(base, "data", "geocache.db")
	cfgVal.Geocoder.MinDelayMillis = 0
	cfgVal.Geocoder.RequestsPerSecond = 0
	cfgVal.Source.RequestsPerSecond = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCacheBackend switches the cache backend, placing file backends under
// the data directory.
func WithCacheBackend(backend string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Backend = backend
		switch backend {
		case config.CacheBackendJSON:
			b.cfg.Cache.Path = filepath.Join(b.cfg.Paths.DataDir, "geocache.json")
		case config.CacheBackendMemory:
			b.cfg.Cache.Path = ""
		default:
			b.cfg.Cache.Path = filepath.Join(b.cfg.Paths.DataDir, "geocache.db")
		}
	}
}

// WithSourceFile writes content to a wikitext file and points the source at
// it.
func WithSourceFile(content string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, "episodes.wiki")
		WriteFile(b.t, path, content)
		b.cfg.Source.Mode = config.SourceModeFile
		b.cfg.Source.File = path
	}
}

// WithGeocoderURL points the geocoder at a test server.
func WithGeocoderURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Geocoder.BaseURL = url
	}
}

// WithMinDelay sets the spacing between outbound geocoding calls.
func WithMinDelay(millis int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Geocoder.MinDelayMillis = millis
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}

// WriteConfigFile encodes cfg to a TOML file under the base directory and
// returns its path.
func WriteConfigFile(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
