// Package config loads, normalizes, and validates episodemap configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NOMINATIM_EMAIL and EPISODEMAP_SOURCE_FILE. The Config type centralizes the
// wiki source, geocoder, cache, gazetteer, and logging knobs so the CLI
// discovers everything in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
