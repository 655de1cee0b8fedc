// Package pipeline runs fetch, parse, translate, and resolve end to end and
// returns one entry per episode in document order.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"episodemap/internal/logging"
	"episodemap/internal/resolver"
	"episodemap/internal/services"
	"episodemap/internal/wikitext"
)

// Fetcher supplies the wikitext document.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Translator maps a source-language label to the geocoder's language.
type Translator interface {
	Translate(label string) string
}

// Submitter queues a label for resolution.
type Submitter interface {
	Submit(name string) *resolver.Request
}

// Entry pairs an episode with its translated label and resolution.
type Entry struct {
	Episode wikitext.Episode
	Label   string
	Result  resolver.Result
}

// Report summarizes a run.
type Report struct {
	Episodes   int
	CacheHits  int
	Resolved   int
	NotFound   int
	Failed     int
	Unresolved []string
	Elapsed    time.Duration
}

// Located returns the number of entries with coordinates.
func (r Report) Located() int {
	return r.CacheHits + r.Resolved
}

// Options adjusts a run.
type Options struct {
	// Match keeps only episodes matching this query (see wikitext.Filter).
	Match  string
	Logger *slog.Logger
}

// Run fetches and parses the document, then resolves every episode.
func Run(ctx context.Context, fetcher Fetcher, translator Translator, submitter Submitter, opts Options) ([]Entry, Report, error) {
	episodes, err := Load(ctx, fetcher, opts.Logger)
	if err != nil {
		return nil, Report{}, err
	}
	episodes = wikitext.Filter(episodes, opts.Match)
	return Resolve(ctx, episodes, translator, submitter, opts.Logger)
}

// Load fetches the document and parses it into episodes.
func Load(ctx context.Context, fetcher Fetcher, logger *slog.Logger) ([]wikitext.Episode, error) {
	logger = logging.NewComponentLogger(logger, "pipeline")

	start := time.Now()
	document, err := fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	episodes := wikitext.Parse(document)
	logger.Info("document parsed",
		logging.Int("bytes", len(document)),
		logging.Int("episodes", len(episodes)),
		logging.Duration("elapsed", time.Since(start)))
	if len(episodes) == 0 {
		logging.WarnWithContext(logger, "document contains no episodes", "parse_empty",
			logging.Hint("check source.page and source.section"),
			logging.Impact("nothing to resolve"))
	}
	return episodes, nil
}

// Resolve translates every episode's location and waits for all results.
// All labels are submitted before the first wait so the resolver queue sees
// them in document order.
func Resolve(ctx context.Context, episodes []wikitext.Episode, translator Translator, submitter Submitter, logger *slog.Logger) ([]Entry, Report, error) {
	logger = logging.NewComponentLogger(logger, "pipeline")
	start := time.Now()

	entries := make([]Entry, len(episodes))
	requests := make([]*resolver.Request, len(episodes))
	for i, ep := range episodes {
		label := translator.Translate(ep.Location)
		entries[i] = Entry{Episode: ep, Label: label}
		requests[i] = submitter.Submit(label)
	}

	report := Report{Episodes: len(episodes)}
	seen := make(map[string]struct{})
	for i, req := range requests {
		result, err := req.Wait(ctx)
		if err != nil {
			return nil, Report{}, fmt.Errorf("wait for %q: %w", entries[i].Label, err)
		}
		entries[i].Result = result

		epCtx := services.WithEpisode(services.WithSeason(ctx, entries[i].Episode.Season), entries[i].Episode.Index)
		epLogger := logging.WithContext(epCtx, logger)

		switch result.Status {
		case resolver.StatusCacheHit:
			report.CacheHits++
		case resolver.StatusResolved:
			report.Resolved++
		case resolver.StatusNotFound:
			report.NotFound++
		case resolver.StatusFailed:
			report.Failed++
		}
		if result.Found() {
			epLogger.Debug("episode located",
				logging.Location(entries[i].Label),
				logging.String("status", string(result.Status)))
			continue
		}
		epLogger.Debug("episode unresolved",
			logging.Location(entries[i].Label),
			logging.String("status", string(result.Status)))
		if _, dup := seen[entries[i].Label]; !dup {
			seen[entries[i].Label] = struct{}{}
			report.Unresolved = append(report.Unresolved, entries[i].Label)
		}
	}
	report.Elapsed = time.Since(start)

	logger.Info("resolution complete",
		logging.Int("episodes", report.Episodes),
		logging.Int("cache_hits", report.CacheHits),
		logging.Int("resolved", report.Resolved),
		logging.Int("not_found", report.NotFound),
		logging.Int("failed", report.Failed),
		logging.Duration("elapsed", report.Elapsed))
	return entries, report, nil
}
