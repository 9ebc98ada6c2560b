// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cli

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
)

// DefaultKeep is how many versions per kind prune retains by default.
const DefaultKeep = 3

type pruneOptions struct {
	keep int
	json bool
}

func newPruneCommand(g *globalOptions) *cobra.Command {
	opts := &pruneOptions{}

	cmd := &cobra.Command{
		Use:   "prune [kind...]",
		Short: "Remove old artifact versions",
		Long: `Keeps the newest --keep versions of each artifact kind and removes the
rest. With no kinds given, every kind is pruned. The latest version is
never removed.`,
		ValidArgs: storage.Kinds,
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(cmd, g, opts, args)
		},
	}

	cmd.Flags().IntVar(&opts.keep, "keep", DefaultKeep, "versions to keep per kind")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output removed versions as JSON")

	return cmd
}

func runPrune(cmd *cobra.Command, g *globalOptions, opts *pruneOptions, kinds []string) error {
	if opts.keep < 1 {
		return fmt.Errorf("--keep must be at least 1, got %d", opts.keep)
	}
	if len(kinds) == 0 {
		kinds = storage.Kinds
	}

	store, err := storage.NewStore(g.artifactsDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}

	removed := make(map[string][]int, len(kinds))
	total := 0
	for _, kind := range kinds {
		vs, err := store.Prune(cmd.Context(), kind, opts.keep)
		if err != nil {
			return fmt.Errorf("prune %s: %w", kind, err)
		}
		removed[kind] = vs
		total += len(vs)
	}

	logging.Info().Int("keep", opts.keep).Int("removed", total).Msg("artifacts pruned")

	if opts.json {
		return printJSON(cmd, removed)
	}

	out := cmd.OutOrStdout()
	for _, kind := range kinds {
		vs := removed[kind]
		if len(vs) == 0 {
			if _, err := fmt.Fprintf(out, "%s: nothing to remove\n", kind); err != nil {
				return err
			}
			continue
		}
		slices.Sort(vs)
		names := make([]string, len(vs))
		for i, v := range vs {
			names[i] = "v" + strconv.Itoa(v)
		}
		if _, err := fmt.Fprintf(out, "%s: removed %v\n", kind, names); err != nil {
			return err
		}
	}
	return nil
}
