package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"episodemap/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	if err := c.normalizeGeocoder(); err != nil {
		return err
	}
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeGazetteer(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSource() error {
	if value, ok := os.LookupEnv("EPISODEMAP_SOURCE_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Source.Mode = SourceModeFile
		c.Source.File = value
	}
	c.Source.Mode = strings.ToLower(strings.TrimSpace(c.Source.Mode))
	if c.Source.Mode == "" {
		c.Source.Mode = defaultSourceMode
	}
	c.Source.APIURL = strings.TrimSpace(c.Source.APIURL)
	if c.Source.APIURL == "" {
		c.Source.APIURL = defaultSourceAPIURL
	}
	c.Source.IndexURL = strings.TrimSpace(c.Source.IndexURL)
	if c.Source.IndexURL == "" {
		c.Source.IndexURL = strings.TrimSuffix(c.Source.APIURL, "api.php") + "index.php"
	}
	c.Source.Page = strings.TrimSpace(c.Source.Page)
	c.Source.UserAgent = strings.TrimSpace(c.Source.UserAgent)
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = defaultSourceUserAgent
	}
	if c.Source.TimeoutSeconds <= 0 {
		c.Source.TimeoutSeconds = defaultSourceTimeoutSeconds
	}
	if c.Source.File != "" {
		var err error
		if c.Source.File, err = expandPath(strings.TrimSpace(c.Source.File)); err != nil {
			return fmt.Errorf("source.file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeGeocoder() error {
	c.Geocoder.BaseURL = strings.TrimRight(strings.TrimSpace(c.Geocoder.BaseURL), "/")
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = defaultGeocoderBaseURL
	}
	c.Geocoder.UserAgent = strings.TrimSpace(c.Geocoder.UserAgent)
	if c.Geocoder.UserAgent == "" {
		c.Geocoder.UserAgent = defaultGeocoderUserAgent
	}
	if c.Geocoder.Email == "" {
		if value, ok := os.LookupEnv("NOMINATIM_EMAIL"); ok {
			c.Geocoder.Email = strings.TrimSpace(value)
		}
	}
	languages, err := language.AcceptLanguage(c.Geocoder.Language)
	if err != nil {
		return fmt.Errorf("geocoder.language: %w", err)
	}
	c.Geocoder.Language = languages
	if c.Geocoder.TimeoutSeconds <= 0 {
		c.Geocoder.TimeoutSeconds = defaultGeocoderTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeCache() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}
	if c.Cache.Backend == CacheBackendMemory {
		c.Cache.Path = ""
		return nil
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		name := "geocache.db"
		if c.Cache.Backend == CacheBackendJSON {
			name = "geocache.json"
		}
		c.Cache.Path = filepath.Join(c.Paths.DataDir, name)
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeGazetteer() error {
	var err error
	if c.Gazetteer.DictionaryPath, err = expandPath(strings.TrimSpace(c.Gazetteer.DictionaryPath)); err != nil {
		return fmt.Errorf("gazetteer.dictionary_path: %w", err)
	}
	if c.Gazetteer.CoordinatesPath, err = expandPath(strings.TrimSpace(c.Gazetteer.CoordinatesPath)); err != nil {
		return fmt.Errorf("gazetteer.coordinates_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
