package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"episodemap/internal/geo"
	"episodemap/internal/geocache"
	"episodemap/internal/kvstore"
	"episodemap/internal/logging"
	"episodemap/internal/pipeline"
	"episodemap/internal/resolver"
	"episodemap/internal/wikitext"
)

type resolvedEntry struct {
	wikitext.Episode
	Label       string           `json:"label"`
	Status      resolver.Status  `json:"status"`
	Coordinates *geo.Coordinates `json:"coordinates,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type resolveSummary struct {
	SessionID  string   `json:"session_id"`
	Episodes   int      `json:"episodes"`
	Located    int      `json:"located"`
	CacheHits  int      `json:"cache_hits"`
	Resolved   int      `json:"resolved"`
	NotFound   int      `json:"not_found"`
	Failed     int      `json:"failed"`
	Unresolved []string `json:"unresolved"`
	ElapsedMS  int64    `json:"elapsed_ms"`
}

type resolveOutput struct {
	Entries []resolvedEntry `json:"entries"`
	Summary resolveSummary  `json:"summary"`
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var file string
	var match string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Parse, translate, and geocode every episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			lock := flock.New(cfg.LockPath())
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !ok {
				return errors.New("another episodemap resolve run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			sessionID := uuid.NewString()
			logger, closeLog, err := ctx.logger(sessionID)
			if err != nil {
				return err
			}
			defer closeLog()

			fetcher, err := newFetcher(cfg, file)
			if err != nil {
				return err
			}
			dict, seeds, err := loadGazetteer(cfg)
			if err != nil {
				return err
			}
			geocoder, err := newGeocoder(cfg)
			if err != nil {
				return err
			}
			store, err := kvstore.Open(cfg, logger)
			if err != nil {
				return fmt.Errorf("open cache store: %w", err)
			}
			defer store.Close()

			res := resolver.New(geocoder, geocache.New(seeds, store, logger), resolver.Options{
				MinDelay: cfg.MinDelay(),
				Context:  cmd.Context(),
				Logger:   logger,
			})
			defer res.Close()

			logger.Info("resolve run started",
				logging.String("source", cfg.Source.Mode),
				logging.String("cache", cfg.Cache.Backend),
				logging.Duration("min_delay", cfg.MinDelay()))

			entries, report, err := pipeline.Run(cmd.Context(), fetcher, dict, res, pipeline.Options{
				Match:  match,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			if err := res.Close(); err != nil {
				return err
			}

			output := buildResolveOutput(sessionID, entries, report)
			if jsonOut {
				return writeJSON(cmd, output)
			}
			printResolveOutput(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read wikitext from this file instead of the configured source")
	cmd.Flags().StringVarP(&match, "match", "m", "", "Only resolve episodes whose season, number, or location contains this text")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func buildResolveOutput(sessionID string, entries []pipeline.Entry, report pipeline.Report) resolveOutput {
	out := resolveOutput{
		Entries: make([]resolvedEntry, 0, len(entries)),
		Summary: resolveSummary{
			SessionID:  sessionID,
			Episodes:   report.Episodes,
			Located:    report.Located(),
			CacheHits:  report.CacheHits,
			Resolved:   report.Resolved,
			NotFound:   report.NotFound,
			Failed:     report.Failed,
			Unresolved: nonNil(report.Unresolved),
			ElapsedMS:  report.Elapsed.Milliseconds(),
		},
	}
	for _, entry := range entries {
		item := resolvedEntry{
			Episode: entry.Episode,
			Label:   entry.Label,
			Status:  entry.Result.Status,
		}
		if entry.Result.Found() {
			coords := entry.Result.Coordinates
			item.Coordinates = &coords
		}
		if entry.Result.Err != nil {
			item.Error = entry.Result.Err.Error()
		}
		out.Entries = append(out.Entries, item)
	}
	return out
}

func printResolveOutput(out io.Writer, output resolveOutput) {
	summary := output.Summary
	if len(output.Entries) == 0 {
		fmt.Fprintln(out, "No episodes found")
		return
	}

	rows := make([][]string, 0, len(output.Entries))
	for _, entry := range output.Entries {
		coords := ""
		if entry.Coordinates != nil {
			coords = entry.Coordinates.String()
		}
		rows = append(rows, []string{entry.Season, entry.Index, entry.Label, string(entry.Status), coords})
	}
	columns := []tableColumn{
		leftColumn("Season"),
		rightColumn("#"),
		leftColumn("Location"),
		leftColumn("Status"),
		rightColumn("Coordinates"),
	}
	fmt.Fprintln(out, renderTable(columns, rows))

	fmt.Fprintf(out, "Located %d of %s (cache %d, geocoded %d); not found %d, failed %d\n",
		summary.Located,
		pluralize(summary.Episodes, "episode", "episodes"),
		summary.CacheHits,
		summary.Resolved,
		summary.NotFound,
		summary.Failed,
	)
	if len(summary.Unresolved) > 0 {
		fmt.Fprintf(out, "Unresolved: %s\n", strings.Join(summary.Unresolved, "; "))
	}
}
