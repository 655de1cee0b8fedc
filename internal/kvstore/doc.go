// Package kvstore provides the string key/value persistence behind the
// geocode cache.
//
// Three backends share the Store interface: a SQLite database (the default),
// a single JSON file rewritten atomically on every change, and a process-local
// map. Open picks one from configuration. All backends are safe for
// concurrent use.
package kvstore
