// Package geo holds the coordinate pair shared by the cache, the resolver, and
// the CLI output.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coordinates is a [latitude, longitude] pair in decimal degrees. It encodes
// to and from the JSON array form used by the geocode cache.
type Coordinates [2]float64

// Lat returns the latitude.
func (c Coordinates) Lat() float64 { return c[0] }

// Lon returns the longitude.
func (c Coordinates) Lon() float64 { return c[1] }

// String renders the pair with six decimal places.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f, %.6f", c[0], c[1])
}

// Encode returns the cache value form, e.g. "[40.7127281,-74.0060152]".
func (c Coordinates) Encode() string {
	data, _ := json.Marshal([2]float64(c))
	return string(data)
}

// Decode parses a cache value produced by Encode. Exactly two finite numbers
// are required.
func Decode(value string) (Coordinates, error) {
	var pair []float64
	if err := json.Unmarshal([]byte(strings.TrimSpace(value)), &pair); err != nil {
		return Coordinates{}, fmt.Errorf("decode coordinates: %w", err)
	}
	if len(pair) != 2 {
		return Coordinates{}, fmt.Errorf("decode coordinates: want 2 values, got %d", len(pair))
	}
	return fromFloats(pair[0], pair[1])
}

// Parse builds coordinates from the string lat/lon fields returned by
// geocoding services.
func Parse(lat, lon string) (Coordinates, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse latitude %q: %w", lat, err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("parse longitude %q: %w", lon, err)
	}
	return fromFloats(la, lo)
}

func fromFloats(lat, lon float64) (Coordinates, error) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return Coordinates{}, errors.New("coordinates must be finite")
	}
	return Coordinates{lat, lon}, nil
}

// CheckRange reports coordinates outside [-90, 90] x [-180, 180]. Geocoder
// output is trusted as is; this is for hand-entered values.
func (c Coordinates) CheckRange() error {
	if c.Lat() < -90 || c.Lat() > 90 {
		return fmt.Errorf("latitude %v out of range", c.Lat())
	}
	if c.Lon() < -180 || c.Lon() > 180 {
		return fmt.Errorf("longitude %v out of range", c.Lon())
	}
	return nil
}

// Candidate is one geocoder match with coordinates as decimal strings.
type Candidate struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Coordinates parses the candidate's lat/lon.
func (c Candidate) Coordinates() (Coordinates, error) {
	return Parse(c.Lat, c.Lon)
}
