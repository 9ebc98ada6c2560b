// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
)

// errNoArtifacts is returned when the artifact directory is empty.
var errNoArtifacts = errors.New("no artifacts found in directory")

func loadEngine(ctx context.Context, dir string) (*recommend.Engine, error) {
	store, err := storage.NewStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}
	if _, ok := store.LatestVersion(storage.KindMetadata); !ok {
		return nil, fmt.Errorf("%w: %s", errNoArtifacts, store.Dir())
	}
	return recommend.LoadEngine(ctx, store, recommend.DefaultConfig(), logging.WithComponent("recommend"))
}

func checkCount(n int) error {
	if n < 0 {
		return fmt.Errorf("-n must be non-negative, got %d", n)
	}
	return nil
}

type recommendOptions struct {
	personality string
	category    string
	motivation  string
	concerns    string
	count       int
	json        bool
}

func newRecommendCommand(g *globalOptions) *cobra.Command {
	opts := &recommendOptions{}

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend destinations for a set of preferences",
		Long: `Loads the latest artifacts and runs one recommendation. Personality
and category are required; motivation and concerns are optional and are
only encoded when given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.personality, "personality", "", "personality trait, e.g. Extraversion")
	cmd.Flags().StringVar(&opts.category, "category", "", "tourism category, e.g. Adventure")
	cmd.Flags().StringVar(&opts.motivation, "motivation", "", "travel motivation")
	cmd.Flags().StringVar(&opts.concerns, "concerns", "", "travelling concerns")
	cmd.Flags().IntVarP(&opts.count, "count", "n", recommend.DefaultK, "number of recommendations")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output results as JSON")
	_ = cmd.MarkFlagRequired("personality") //nolint:errcheck // flag defined above
	_ = cmd.MarkFlagRequired("category")    //nolint:errcheck // flag defined above

	return cmd
}

func (o *recommendOptions) preferences(cmd *cobra.Command) features.Preferences {
	prefs := features.Preferences{
		PersonalityTraits: o.personality,
		TourismCategory:   o.category,
	}
	if cmd.Flags().Changed("motivation") {
		prefs.TravelMotivation = features.Optional(o.motivation)
	}
	if cmd.Flags().Changed("concerns") {
		prefs.TravellingConcerns = features.Optional(o.concerns)
	}
	return prefs
}

func runRecommend(cmd *cobra.Command, g *globalOptions, opts *recommendOptions) error {
	if err := checkCount(opts.count); err != nil {
		return err
	}
	if strings.TrimSpace(opts.personality) == "" || strings.TrimSpace(opts.category) == "" {
		return errors.New("--personality and --category must not be blank")
	}

	engine, err := loadEngine(cmd.Context(), g.artifactsDir)
	if err != nil {
		return err
	}

	outcome := engine.Evaluate(cmd.Context(), opts.preferences(cmd), opts.count)
	if outcome.Err != nil {
		logging.Warn().Err(outcome.Err).Str("stage", outcome.Stage.String()).Msg("recommendation failed")
	}

	if opts.json {
		return printJSON(cmd, outcome.Recommendations)
	}

	out := cmd.OutOrStdout()
	if len(outcome.Recommendations) == 0 {
		if outcome.Err != nil {
			_, err = fmt.Fprintf(out, "No recommendations (%s: %v)\n", outcome.Stage, outcome.Err)
		} else {
			_, err = fmt.Fprintln(out, "No recommendations.")
		}
		return err
	}

	fmt.Fprintf(out, "Group: %s\n\n", outcome.Group) //nolint:errcheck // best-effort terminal output
	for i, rec := range outcome.Recommendations {
		if rec.PlaceID != "" {
			fmt.Fprintf(out, "  [%d] %s (%s)\n", i+1, rec.Name, rec.PlaceID) //nolint:errcheck // best-effort terminal output
		} else {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, rec.Name) //nolint:errcheck // best-effort terminal output
		}
	}
	return nil
}

type similarOptions struct {
	count int
	json  bool
}

func newSimilarCommand(g *globalOptions) *cobra.Command {
	opts := &similarOptions{}

	cmd := &cobra.Command{
		Use:   "similar [location]",
		Short: "List locations that share a group with a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimilar(cmd, g, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", recommend.DefaultK, "number of locations")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output results as JSON")

	return cmd
}

func runSimilar(cmd *cobra.Command, g *globalOptions, opts *similarOptions, name string) error {
	if err := checkCount(opts.count); err != nil {
		return err
	}

	engine, err := loadEngine(cmd.Context(), g.artifactsDir)
	if err != nil {
		return err
	}

	similar := engine.SimilarLocations(cmd.Context(), name, opts.count)
	if opts.json {
		return printJSON(cmd, similar)
	}

	out := cmd.OutOrStdout()
	if len(similar) == 0 {
		_, err = fmt.Fprintf(out, "No locations similar to %q.\n", name)
		return err
	}
	for i, loc := range similar {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, loc) //nolint:errcheck // best-effort terminal output
	}
	return nil
}
