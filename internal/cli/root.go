// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/timelytourist/internal/config"
	"github.com/tomtom215/timelytourist/internal/logging"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	artifactsDir string
	logLevel     string
}

// NewRootCommand builds the ttctl command tree. Each call returns fresh
// commands with their own flag state.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "ttctl",
		Short: "Manage Timely Tourist recommendation artifacts",
		Long: `ttctl builds and inspects the artifacts served by the Timely Tourist
recommendation service, and runs recommendations against them offline.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Init(logging.Config{
				Level:     opts.logLevel,
				Format:    "console",
				Output:    cmd.ErrOrStderr(),
				Timestamp: true,
			})
		},
	}

	defaultDir := config.Default().Artifacts.Dir
	if dir := os.Getenv("ARTIFACTS_DIR"); dir != "" {
		defaultDir = dir
	}
	root.PersistentFlags().StringVar(&opts.artifactsDir, "artifacts", defaultDir, "artifact directory")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newBuildMetadataCommand(opts),
		newImportCommand(opts),
		newInspectCommand(opts),
		newPruneCommand(opts),
		newDeleteCommand(opts),
		newRecommendCommand(opts),
		newSimilarCommand(opts),
	)
	return root
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
