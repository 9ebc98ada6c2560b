// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/timelytourist/internal/logging"
	"github.com/tomtom215/timelytourist/internal/recommend/classifier"
	"github.com/tomtom215/timelytourist/internal/recommend/errdefs"
	"github.com/tomtom215/timelytourist/internal/recommend/scaler"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
)

type importOptions struct {
	version int
	json    bool
}

func newImportCommand(g *globalOptions) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <scaler|classifier> <file.json>",
		Short: "Import a trained scaler or classifier into the artifact store",
		Long: `Reads a scaler or classifier exported by the training job as plain JSON,
checks it against the latest metadata artifact, and stores it as a new
artifact version.

Scaler files hold "mean" and "scale" arrays. Classifier files hold
"classes", "layers" (each with "weights" indexed [input][output] and
"biases"), and optionally "hidden_activation".`,
		Example: `  ttctl build-metadata --dataset survey.csv
  ttctl import scaler scaler.json
  ttctl import classifier mlp.json`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{storage.KindScaler, storage.KindClassifier},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, g, opts, args[0], args[1])
		},
	}

	cmd.Flags().IntVar(&opts.version, "version", 0, "artifact version to write (0 = next)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output the import summary as JSON")

	return cmd
}

type importSummary struct {
	Artifact        string `json:"artifact"`
	Version         int    `json:"version"`
	Features        int    `json:"features"`
	MetadataVersion int    `json:"metadata_version"`
}

func runImport(cmd *cobra.Command, g *globalOptions, opts *importOptions, kind, path string) error {
	if opts.version < 0 {
		return fmt.Errorf("--version must be non-negative, got %d", opts.version)
	}

	store, err := storage.NewStore(g.artifactsDir)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}

	var meta storage.MetadataPayload
	metaInfo, err := store.Load(cmd.Context(), storage.KindMetadata, 0, &meta)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s (run build-metadata first)", errNoArtifacts, store.Dir())
	}
	if err != nil {
		return fmt.Errorf("load metadata artifact: %w", err)
	}

	raw, err := os.ReadFile(path) //nolint:gosec // path is an operator-supplied CLI argument
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var payload interface{}
	var width int
	switch kind {
	case storage.KindScaler:
		var p storage.ScalerPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode scaler %s: %w", path, err)
		}
		s, err := scaler.New(p.Mean, p.Scale)
		if err != nil {
			return fmt.Errorf("invalid scaler: %w", err)
		}
		payload, width = p, s.Width()

	case storage.KindClassifier:
		var p storage.ClassifierPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode classifier %s: %w", path, err)
		}
		layers := make([]classifier.Layer, 0, len(p.Layers))
		for _, l := range p.Layers {
			layers = append(layers, classifier.Layer{Weights: l.Weights, Biases: l.Biases})
		}
		m, err := classifier.New(p.Classes, layers, classifier.Activation(p.HiddenActivation))
		if err != nil {
			return fmt.Errorf("invalid classifier: %w", err)
		}
		for _, id := range p.Classes {
			if id < 0 || id >= len(meta.LabelClasses) {
				return fmt.Errorf("%w: class %d outside metadata v%d's %d groups",
					errdefs.ErrShapeMismatch, id, metaInfo.Version, len(meta.LabelClasses))
			}
		}
		payload, width = p, m.InputWidth()

	default:
		return fmt.Errorf("unknown artifact kind %q (want %s or %s)", kind, storage.KindScaler, storage.KindClassifier)
	}

	if want := len(meta.FeatureColumns); width != want {
		return fmt.Errorf("%w: %s expects %d features, metadata v%d has %d",
			errdefs.ErrShapeMismatch, kind, width, metaInfo.Version, want)
	}

	version := opts.version
	if version == 0 {
		latest, _ := store.LatestVersion(kind)
		version = latest + 1
	}

	info := storage.ArtifactMetadata{
		BuiltAt:      time.Now().UTC(),
		FeatureCount: width,
		GroupCount:   len(meta.LabelClasses),
		Source:       filepath.Base(path),
	}
	if err := store.Save(cmd.Context(), kind, version, payload, info); err != nil {
		return fmt.Errorf("save %s artifact: %w", kind, err)
	}

	logging.Info().
		Str("kind", kind).
		Int("version", version).
		Int("features", width).
		Msg("artifact imported")

	summary := importSummary{Artifact: kind, Version: version, Features: width, MetadataVersion: metaInfo.Version}
	if opts.json {
		return printJSON(cmd, summary)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %s v%d to %s (%d features, metadata v%d)\n",
		kind, version, store.Dir(), width, metaInfo.Version)
	return err
}
