// Package logs reads the run log written by episodemap: the last N lines, and
// lines appended afterwards when following a resolve run from another shell.
package logs
