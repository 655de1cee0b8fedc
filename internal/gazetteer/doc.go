// Package gazetteer translates source-language location labels into the
// English form the geocoder and the static coordinate table use.
//
// The default dictionary and coordinate seeds are embedded TOML files under
// data/. Either can be replaced at runtime through the gazetteer section of
// the configuration.
package gazetteer
