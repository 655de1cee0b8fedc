// Package services defines shared utilities consumed by the pipeline stages
// and the external integrations (wiki fetchers, geocoder, stores).
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers, season headings, and
//     episode indexes for logging.
//   - Structured error markers plus the Wrap helper so failures carry the
//     component and operation that produced them and can be classified with
//     Kind.
//
// Use these helpers when wiring new integrations so error text and log
// fields stay uniform across the CLI.
package services
