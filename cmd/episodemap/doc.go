// Command episodemap parses the episode tables of a travel show's wiki page,
// translates each filming location, and resolves it to coordinates through a
// cache-first, rate-limited geocoding queue.
//
// Commands:
//
//	episodemap parse [--file F] [--json] [--match Q]
//	episodemap translate <label>...
//	episodemap resolve [--file F] [--json] [--match Q]
//	episodemap cache list|get|set|remove|clear|count
//	episodemap config init|show|validate
//	episodemap status [--offline]
//	episodemap logs [-n N] [--follow]
package main
