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

func newDeleteCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <version>",
		Short: "Delete one artifact version",
		Long: `Removes a single artifact version. Deleting the latest version rolls the
kind back to the next newest one on the server's next start.`,
		Example: `  ttctl delete classifier 4`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if !slices.Contains(storage.Kinds, kind) {
				return fmt.Errorf("unknown artifact kind %q", kind)
			}
			version, err := strconv.Atoi(args[1])
			if err != nil || version < 1 {
				return fmt.Errorf("version must be a positive integer, got %q", args[1])
			}

			store, err := storage.NewStore(g.artifactsDir)
			if err != nil {
				return fmt.Errorf("open artifact store: %w", err)
			}
			if err := store.Delete(cmd.Context(), kind, version); err != nil {
				return fmt.Errorf("delete %s v%d: %w", kind, version, err)
			}
			logging.Info().Str("kind", kind).Int("version", version).Msg("artifact deleted")

			out := cmd.OutOrStdout()
			if latest, ok := store.LatestVersion(kind); ok {
				_, err = fmt.Fprintf(out, "Deleted %s v%d; latest is now v%d\n", kind, version, latest)
			} else {
				_, err = fmt.Fprintf(out, "Deleted %s v%d; no %s versions remain\n", kind, version, kind)
			}
			return err
		},
	}
}
