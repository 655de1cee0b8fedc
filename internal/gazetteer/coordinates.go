package gazetteer

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"episodemap/internal/geo"
)

//go:embed data/coordinates.toml
var defaultCoordinates []byte

type coordinatesFile struct {
	Coordinates map[string][]float64 `toml:"coordinates"`
}

// DefaultCoordinates returns the embedded coordinate seeds keyed by
// translated label.
func DefaultCoordinates() (map[string]geo.Coordinates, error) {
	return DecodeCoordinates(defaultCoordinates)
}

// LoadCoordinates reads a coordinate seed file. An empty path returns the
// embedded default.
func LoadCoordinates(path string) (map[string]geo.Coordinates, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultCoordinates()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read coordinates: %w", err)
	}
	seeds, err := DecodeCoordinates(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return seeds, nil
}

// DecodeCoordinates parses a [coordinates] table of "label" = [lat, lon]
// entries.
func DecodeCoordinates(data []byte) (map[string]geo.Coordinates, error) {
	var file coordinatesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse coordinates: %w", err)
	}
	seeds := make(map[string]geo.Coordinates, len(file.Coordinates))
	for label, pair := range file.Coordinates {
		if len(pair) != 2 {
			return nil, fmt.Errorf("coordinates %q: want [lat, lon], got %d values", label, len(pair))
		}
		seeds[normalizeToken(label)] = geo.Coordinates{pair[0], pair[1]}
	}
	return seeds, nil
}
