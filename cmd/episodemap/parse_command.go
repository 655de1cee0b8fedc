package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"episodemap/internal/pipeline"
	"episodemap/internal/wikitext"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var file string
	var match string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse the episode tables and print the records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, closeLog, err := ctx.logger("")
			if err != nil {
				return err
			}
			defer closeLog()
			fetcher, err := newFetcher(cfg, file)
			if err != nil {
				return err
			}

			episodes, err := pipeline.Load(cmd.Context(), fetcher, logger)
			if err != nil {
				return err
			}
			episodes = wikitext.Filter(episodes, match)

			if jsonOut {
				return writeJSON(cmd, nonNil(episodes))
			}

			out := cmd.OutOrStdout()
			if len(episodes) == 0 {
				fmt.Fprintln(out, "No episodes found")
				return nil
			}
			columns := []tableColumn{
				leftColumn("Season"),
				rightColumn("#"),
				leftColumn("Location"),
				leftColumn("Currency"),
				leftColumn("Gold card"),
				leftColumn("Premiere"),
			}
			fmt.Fprintln(out, renderTable(columns, episodeRows(episodes)))
			fmt.Fprintln(out, pluralize(len(episodes), "episode", "episodes"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read wikitext from this file instead of the configured source")
	cmd.Flags().StringVarP(&match, "match", "m", "", "Only show episodes whose season, number, or location contains this text")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
