package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"episodemap/internal/config"
	"episodemap/internal/language"
	"episodemap/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Run preflight checks against the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			report := &statusReport{colorize: shouldColorize(out)}

			report.section("Configuration")
			configDetail := ctx.configPath
			if !ctx.configExists {
				configDetail += " (defaults)"
			}
			report.add("Config", statusInfo, configDetail)
			if cfg.Source.Mode == config.SourceModeFile {
				report.add("Source", statusInfo, cfg.Source.Mode+" "+cfg.Source.File)
			} else {
				report.add("Source", statusInfo, fmt.Sprintf("%s %s (section %d)", cfg.Source.Mode, cfg.Source.Page, cfg.Source.Section))
			}
			report.add("Geocoder", statusInfo, fmt.Sprintf("%s (min delay %s)", cfg.Geocoder.BaseURL, cfg.MinDelay()))
			if cfg.Geocoder.Language != "" {
				var names []string
				for _, code := range strings.Split(cfg.Geocoder.Language, ",") {
					names = append(names, fmt.Sprintf("%s (%s)", language.DisplayName(code), code))
				}
				report.add("Geocoder language", statusInfo, strings.Join(names, ", "))
			}
			if cfg.Geocoder.Email == "" {
				report.add("Geocoder email", statusWarn, "not set; heavy use may be throttled")
			}

			report.section("Checks")
			results := preflight.RunAll(cmd.Context(), cfg, preflight.Options{Network: !offline})
			report.checks(results)
			report.writeTo(out)

			if failed := preflight.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%s failed", pluralize(len(failed), "check", "checks"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip network reachability checks")
	return cmd
}
