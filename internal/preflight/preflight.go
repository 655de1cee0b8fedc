package preflight

import (
	"context"
	"net/url"

	"episodemap/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects which checks RunAll performs.
type Options struct {
	// Network enables the wiki and geocoder reachability probes.
	Network bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckCacheStore(ctx, cfg),
		CheckGazetteer(cfg),
	}

	if cfg.Source.Mode == config.SourceModeFile {
		results = append(results, CheckSourceFile(cfg.Source.File))
	} else if opts.Network {
		results = append(results, CheckHTTP(ctx, "Wiki source", sourceProbeURL(cfg), cfg.Source.UserAgent))
	}

	if opts.Network {
		results = append(results, CheckHTTP(ctx, "Geocoder", cfg.Geocoder.BaseURL+"/status?format=json", cfg.Geocoder.UserAgent))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func sourceProbeURL(cfg *config.Config) string {
	if cfg.Source.Mode == config.SourceModeEdit {
		return cfg.Source.IndexURL
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("meta", "siteinfo")
	params.Set("format", "json")
	return cfg.Source.APIURL + "?" + params.Encode()
}
