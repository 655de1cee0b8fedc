package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"episodemap/internal/geo"
	"episodemap/internal/geocache"
	"episodemap/internal/kvstore"
)

type cacheEntry struct {
	Name        string           `json:"name"`
	Coordinates *geo.Coordinates `json:"coordinates,omitempty"`
	Raw         string           `json:"raw,omitempty"`
	UpdatedAt   string           `json:"updated_at,omitempty"`
}

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage persisted geocode results",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheGetCommand(ctx))
	cacheCmd.AddCommand(newCacheSetCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCacheCountCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store kvstore.Store) error {
				stored, err := store.List(cmd.Context(), geocache.KeyPrefix)
				if err != nil {
					return err
				}
				entries := make([]cacheEntry, 0, len(stored))
				for _, item := range stored {
					entries = append(entries, toCacheEntry(item))
				}
				if jsonOut {
					return writeJSON(cmd, entries)
				}

				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Geocode cache is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					value := entry.Raw
					if entry.Coordinates != nil {
						value = entry.Coordinates.String()
					}
					rows = append(rows, []string{entry.Name, value, entry.UpdatedAt})
				}
				fmt.Fprintln(out, renderTable([]tableColumn{leftColumn("Location"), rightColumn("Coordinates"), leftColumn("Updated")}, rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

func newCacheGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <location>",
		Short: "Show the cached coordinates of a translated location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			return ctx.withStore(func(store kvstore.Store) error {
				value, ok, err := store.Get(cmd.Context(), geocache.Key(name))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("%q is not cached", name)
				}
				coords, err := geo.Decode(value)
				if err != nil {
					return fmt.Errorf("cached value for %q: %w", name, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), coords.String())
				return nil
			})
		},
	}
}

func newCacheSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <location> <lat> <lon>",
		Short: "Store coordinates for a translated location",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			coords, err := geo.Parse(args[1], args[2])
			if err != nil {
				return err
			}
			if err := coords.CheckRange(); err != nil {
				return err
			}
			return ctx.withStore(func(store kvstore.Store) error {
				if err := store.Set(cmd.Context(), geocache.Key(name), coords.Encode()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cached %s at %s\n", name, coords.String())
				return nil
			})
		},
	}
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <location>...",
		Aliases: []string{"rm"},
		Short:   "Remove cached locations so the next run geocodes them again",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store kvstore.Store) error {
				out := cmd.OutOrStdout()
				for _, arg := range args {
					name := strings.TrimSpace(arg)
					removed, err := store.Delete(cmd.Context(), geocache.Key(name))
					if err != nil {
						return err
					}
					if removed {
						fmt.Fprintf(out, "Removed %s\n", name)
					} else {
						fmt.Fprintf(out, "%s was not cached\n", name)
					}
				}
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached location",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store kvstore.Store) error {
				removed, err := store.Clear(cmd.Context(), geocache.KeyPrefix)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", pluralize(removed, "entry", "entries"))
				return nil
			})
		},
	}
}

func newCacheCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count cached locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store kvstore.Store) error {
				count, err := store.Count(cmd.Context(), geocache.KeyPrefix)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), count)
				return nil
			})
		},
	}
}

func toCacheEntry(item kvstore.Entry) cacheEntry {
	entry := cacheEntry{Name: strings.TrimPrefix(item.Key, geocache.KeyPrefix)}
	if !item.UpdatedAt.IsZero() {
		entry.UpdatedAt = item.UpdatedAt.Local().Format("2006-01-02 15:04")
	}
	coords, err := geo.Decode(item.Value)
	if err != nil {
		entry.Raw = item.Value
		return entry
	}
	entry.Coordinates = &coords
	return entry
}
