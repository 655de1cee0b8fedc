package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type translation struct {
	Label      string `json:"label"`
	Translated string `json:"translated"`
}

func newTranslateCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "translate <label>...",
		Short: "Translate location labels with the gazetteer",
		Long: "Translate location labels the way resolve does before geocoding.\n" +
			"Groups are separated by \";\" and tokens by \":\" or \"/\".",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dict, _, err := loadGazetteer(cfg)
			if err != nil {
				return err
			}

			results := make([]translation, 0, len(args))
			for _, label := range args {
				results = append(results, translation{Label: label, Translated: dict.Translate(label)})
			}
			if jsonOut {
				return writeJSON(cmd, results)
			}

			out := cmd.OutOrStdout()
			if len(results) == 1 {
				fmt.Fprintln(out, results[0].Translated)
				return nil
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				rows = append(rows, []string{strings.TrimSpace(r.Label), r.Translated})
			}
			fmt.Fprintln(out, renderTable([]tableColumn{leftColumn("Label"), leftColumn("Translated")}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
