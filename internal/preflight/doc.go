// Package preflight provides readiness checks for the filesystem paths, the
// cache store, the gazetteer data, and the remote services episodemap
// depends on.
//
// The CLI "episodemap status" command renders RunAll results.
package preflight
