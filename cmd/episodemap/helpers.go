package main

import (
	"fmt"
	"strings"

	"episodemap/internal/config"
	"episodemap/internal/gazetteer"
	"episodemap/internal/geo"
	"episodemap/internal/nominatim"
	"episodemap/internal/pipeline"
	"episodemap/internal/ratelimit"
	"episodemap/internal/services"
	"episodemap/internal/wikisource"
	"episodemap/internal/wikitext"
)

// newFetcher reads file when set and otherwise uses the configured source.
func newFetcher(cfg *config.Config, file string) (pipeline.Fetcher, error) {
	if file = strings.TrimSpace(file); file != "" {
		path, err := config.ExpandPath(file)
		if err != nil {
			return nil, fmt.Errorf("resolve --file: %w", err)
		}
		fetcher, err := wikisource.NewFileFetcher(path)
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	}
	return wikisource.New(cfg)
}

func loadGazetteer(cfg *config.Config) (*gazetteer.Dictionary, map[string]geo.Coordinates, error) {
	dict, err := gazetteer.Load(cfg.Gazetteer.DictionaryPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load dictionary: %w", err)
	}
	seeds, err := gazetteer.LoadCoordinates(cfg.Gazetteer.CoordinatesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load coordinates: %w", err)
	}
	return dict, seeds, nil
}

func newGeocoder(cfg *config.Config) (*nominatim.Client, error) {
	return nominatim.New(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent,
		nominatim.WithTimeout(cfg.GeocoderTimeout()),
		nominatim.WithLimiter(ratelimit.New(cfg.Geocoder.RequestsPerSecond)),
		nominatim.WithEmail(cfg.Geocoder.Email),
		nominatim.WithLanguage(cfg.Geocoder.Language),
	)
}

func episodeRows(episodes []wikitext.Episode) [][]string {
	rows := make([][]string, 0, len(episodes))
	for _, ep := range episodes {
		rows = append(rows, []string{ep.Season, ep.Index, ep.Location, ep.Currency, ep.GoldCard, ep.Premiere})
	}
	return rows
}

func pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// formatCommandError prefixes marked errors with their classification.
func formatCommandError(err error) string {
	switch kind := services.Kind(err); kind {
	case "fetch", "timeout", "configuration", "validation", "not_found":
		return fmt.Sprintf("episodemap: %s error: %v", kind, err)
	default:
		return fmt.Sprintf("episodemap: %v", err)
	}
}
