// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/timelytourist/internal/recommend/registry"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
)

type inspectOptions struct {
	registryPath string
	history      int
	json         bool
}

func newInspectCommand(g *globalOptions) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show stored artifacts and the activation history",
		Long: `Lists the latest version of every stored artifact. With --registry,
also shows which artifact versions the server was started with.

The registry is opened exclusively, so stop the server (or point at a
copy) before reading it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.registryPath, "registry", "", "activation registry directory")
	cmd.Flags().IntVar(&opts.history, "history", 10, "activations to show (0 = all)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output as JSON")

	return cmd
}

type inspectReport struct {
	Artifacts []storage.ArtifactMetadata `json:"artifacts"`
	History   []registry.Activation      `json:"history,omitempty"`
}

func runInspect(cmd *cobra.Command, g *globalOptions, opts *inspectOptions) error {
	store, err := storage.NewStore(g.artifactsDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}
	artifacts, err := store.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list artifacts: %w", err)
	}

	report := inspectReport{Artifacts: artifacts}
	if opts.registryPath != "" {
		reg, err := registry.Open(registry.Options{Path: opts.registryPath})
		if err != nil {
			return err
		}
		defer reg.Close()

		report.History, err = reg.History(cmd.Context(), opts.history)
		if err != nil {
			return err
		}
	}

	if opts.json {
		return printJSON(cmd, report)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if len(report.Artifacts) == 0 {
		fmt.Fprintf(tw, "No artifacts in %s\n", store.Dir())
	} else {
		fmt.Fprintln(tw, "KIND\tVERSION\tBUILT\tFEATURES\tGROUPS\tSIZE\tCHECKSUM")
		for _, a := range report.Artifacts {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%d\t%d\t%d\t%s\n",
				a.Kind, a.Version, a.BuiltAt.Format(time.RFC3339),
				a.FeatureCount, a.GroupCount, a.SizeBytes, shortChecksum(a.Checksum))
		}
	}

	if opts.registryPath != "" {
		fmt.Fprintln(tw)
		if len(report.History) == 0 {
			fmt.Fprintln(tw, "No activations recorded")
		} else {
			fmt.Fprintln(tw, "ACTIVATED\tID\tARTIFACTS\tFEATURES\tGROUPS\tLOCATIONS")
			for _, a := range report.History {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
					a.ActivatedAt.Format(time.RFC3339), a.ID, artifactVersions(a.Artifacts),
					a.FeatureCount, a.GroupCount, a.LocationCount)
			}
		}
	}
	return tw.Flush()
}

func shortChecksum(sum string) string {
	if len(sum) > 12 {
		return sum[:12]
	}
	return sum
}

func artifactVersions(refs []registry.ArtifactRef) string {
	out := ""
	for i, r := range refs {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%s=v%d", r.Kind, r.Version)
	}
	return out
}
