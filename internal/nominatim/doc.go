// Package nominatim is a minimal client for the OpenStreetMap Nominatim
// search endpoint. It returns at most one candidate per query.
package nominatim
