// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
)

type buildMetadataOptions struct {
	dataset string
	version int
	json    bool
}

func newBuildMetadataCommand(g *globalOptions) *cobra.Command {
	opts := &buildMetadataOptions{}

	cmd := &cobra.Command{
		Use:   "build-metadata",
		Short: "Build the metadata artifact from a dataset CSV",
		Long: `Reads the survey dataset, cleans it, and writes the metadata artifact:
the ordered feature identifiers, the sorted group labels, and the
locations of every group.

Fully empty rows are dropped and blank cells take the column's most
frequent value. The scaler and classifier are trained elsewhere against
the same feature order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuildMetadata(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dataset, "dataset", "", "dataset CSV file")
	cmd.Flags().IntVar(&opts.version, "version", 0, "artifact version to write (0 = next)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output the build summary as JSON")
	_ = cmd.MarkFlagRequired("dataset") //nolint:errcheck // flag defined above

	return cmd
}

type buildSummary struct {
	Artifact string       `json:"artifact"`
	Version  int          `json:"version"`
	Stats    DatasetStats `json:"stats"`
}

func runBuildMetadata(cmd *cobra.Command, g *globalOptions, opts *buildMetadataOptions) error {
	if opts.version < 0 {
		return fmt.Errorf("--version must be non-negative, got %d", opts.version)
	}

	f, err := os.Open(opts.dataset)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	payload, stats, err := BuildMetadata(f)
	if err != nil {
		return fmt.Errorf("build metadata from %s: %w", opts.dataset, err)
	}

	store, err := storage.NewStore(g.artifactsDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}

	version := opts.version
	if version == 0 {
		latest, _ := store.LatestVersion(storage.KindMetadata)
		version = latest + 1
	}

	meta := storage.ArtifactMetadata{
		BuiltAt:      time.Now().UTC(),
		FeatureCount: stats.Features,
		GroupCount:   stats.Groups,
		Source:       filepath.Base(opts.dataset),
	}
	if err := store.Save(cmd.Context(), storage.KindMetadata, version, payload, meta); err != nil {
		return fmt.Errorf("save metadata artifact: %w", err)
	}

	logging.Info().
		Int("version", version).
		Int("features", stats.Features).
		Int("groups", stats.Groups).
		Msg("metadata artifact written")

	summary := buildSummary{Artifact: storage.KindMetadata, Version: version, Stats: stats}
	if opts.json {
		return printJSON(cmd, summary)
	}

	out := cmd.OutOrStdout()
	_, err = fmt.Fprintf(out, "Wrote %s v%d to %s\n  rows: %d (dropped %d empty)\n  filled cells: %d\n  features: %d\n  groups: %d\n  locations: %d\n",
		storage.KindMetadata, version, store.Dir(),
		stats.Rows, stats.DroppedRows, stats.FilledCells,
		stats.Features, stats.Groups, stats.Locations)
	return err
}

