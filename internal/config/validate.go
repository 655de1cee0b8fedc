package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateGeocoder(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSource() error {
	switch c.Source.Mode {
	case SourceModeAPI:
		if err := validateHTTPURL("source.api_url", c.Source.APIURL); err != nil {
			return err
		}
	case SourceModeEdit:
		if err := validateHTTPURL("source.index_url", c.Source.IndexURL); err != nil {
			return err
		}
	case SourceModeFile:
		if c.Source.File == "" {
			return errors.New("source.file must be set when source.mode is \"file\" (or export EPISODEMAP_SOURCE_FILE)")
		}
		return nil
	default:
		return fmt.Errorf("source.mode: unsupported value %q (want api, edit, or file)", c.Source.Mode)
	}
	if c.Source.Page == "" {
		return errors.New("source.page must be set")
	}
	if c.Source.RequestsPerSecond < 0 {
		return errors.New("source.requests_per_second must be >= 0")
	}
	return nil
}

func (c *Config) validateGeocoder() error {
	if err := validateHTTPURL("geocoder.base_url", c.Geocoder.BaseURL); err != nil {
		return err
	}
	if c.Geocoder.MinDelayMillis < 0 {
		return errors.New("geocoder.min_delay_ms must be >= 0")
	}
	if c.Geocoder.RequestsPerSecond < 0 {
		return errors.New("geocoder.requests_per_second must be >= 0")
	}
	return ensurePositiveMap(map[string]int{
		"geocoder.timeout_seconds": c.Geocoder.TimeoutSeconds,
		"source.timeout_seconds":   c.Source.TimeoutSeconds,
	})
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendSQLite, CacheBackendJSON, CacheBackendMemory:
		return nil
	default:
		return fmt.Errorf("cache.backend: unsupported value %q (want sqlite, json, or memory)", c.Cache.Backend)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func validateHTTPURL(key, value string) error {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", key, value)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
