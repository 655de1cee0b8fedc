package preflight

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"episodemap/internal/config"
	"episodemap/internal/gazetteer"
	"episodemap/internal/geocache"
	"episodemap/internal/kvstore"
)

func pass(name, format string, args ...any) Result {
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) Result {
	return Result{Name: name, Detail: fmt.Sprintf(format, args...)}
}

// CheckDirectoryAccess verifies that path is a directory the current user
// can list and write into.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fail(name, "%s (error: does not exist)", path)
	case err != nil:
		return fail(name, "%s (error: stat: %v)", path, err)
	case !info.IsDir():
		return fail(name, "%s (error: is not a directory)", path)
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fail(name, "%s (error: insufficient permissions: %v)", path, err)
	}
	return pass(name, "%s (read/write ok)", path)
}

// CheckSourceFile verifies that a local wikitext file is readable.
func CheckSourceFile(path string) Result {
	const name = "Source file"

	if strings.TrimSpace(path) == "" {
		return fail(name, "source.file not set")
	}
	info, err := os.Stat(path)
	switch {
	case err != nil:
		return fail(name, "%s (error: %v)", path, err)
	case info.IsDir():
		return fail(name, "%s (error: is a directory)", path)
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return fail(name, "%s (error: not readable: %v)", path, err)
	}
	return pass(name, "%s (%d bytes)", path, info.Size())
}

// CheckCacheStore opens the configured store and counts geocode entries.
func CheckCacheStore(ctx context.Context, cfg *config.Config) Result {
	const name = "Geocode cache"

	if cfg.Cache.Backend == config.CacheBackendMemory {
		return pass(name, "memory (not persisted)")
	}
	where := cfg.Cache.Backend + " " + cfg.Cache.Path
	store, err := kvstore.Open(cfg, nil)
	if err != nil {
		return fail(name, "%s (error: %v)", where, err)
	}
	defer store.Close()

	count, err := store.Count(ctx, geocache.KeyPrefix)
	if err != nil {
		return fail(name, "%s (error: %v)", where, err)
	}
	return pass(name, "%s (%d entries)", where, count)
}

// CheckGazetteer loads the dictionary and coordinate seeds.
func CheckGazetteer(cfg *config.Config) Result {
	const name = "Gazetteer"

	dict, err := gazetteer.Load(cfg.Gazetteer.DictionaryPath)
	if err != nil {
		return fail(name, "dictionary (error: %v)", err)
	}
	seeds, err := gazetteer.LoadCoordinates(cfg.Gazetteer.CoordinatesPath)
	if err != nil {
		return fail(name, "coordinates (error: %v)", err)
	}
	countries, cities := dict.Size()
	return pass(name, "%d countries, %d cities, %d coordinate seeds", countries, cities, len(seeds))
}

const probeTimeout = 5 * time.Second

// CheckHTTP verifies that target answers a GET with 200.
func CheckHTTP(ctx context.Context, name, target, userAgent string) Result {
	target = strings.TrimSpace(target)
	if target == "" {
		return fail(name, "missing url")
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, target, nil)
	if err != nil {
		return fail(name, "request failed (%v)", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fail(name, "unreachable (%v)", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	switch resp.StatusCode {
	case http.StatusOK:
		return pass(name, "Reachable (%v)", time.Since(start).Round(time.Millisecond))
	case http.StatusForbidden:
		return fail(name, "forbidden (check user_agent)")
	case http.StatusTooManyRequests:
		return fail(name, "rate limited (HTTP 429)")
	default:
		return fail(name, "unexpected status %d", resp.StatusCode)
	}
}
