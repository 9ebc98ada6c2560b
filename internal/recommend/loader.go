// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/timelytourist/internal/recommend/classifier"
	"github.com/tomtom215/timelytourist/internal/recommend/directory"
	"github.com/tomtom215/timelytourist/internal/recommend/features"
	"github.com/tomtom215/timelytourist/internal/recommend/scaler"
	"github.com/tomtom215/timelytourist/internal/recommend/storage"
)

// ArtifactSource loads stored artifacts. *storage.Store implements it.
type ArtifactSource interface {
	Load(ctx context.Context, kind string, version int, target interface{}) (*storage.ArtifactMetadata, error)
}

// LoadEngine loads the metadata, scaler, and classifier artifacts at the
// versions pinned in cfg (latest when zero) and builds an Engine. Every
// failure is reported as ErrEngineInitFailed naming the artifact.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadEngine(ctx context.Context, src ArtifactSource, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if src == nil {
		return nil, fmt.Errorf("%w: no artifact source", ErrEngineInitFailed)
	}

	var (
		meta  storage.MetadataPayload
		scl   storage.ScalerPayload
		model storage.ClassifierPayload
	)

	loads := []struct {
		kind    string
		version int
		target  interface{}
	}{
		{storage.KindMetadata, cfg.Artifacts.Metadata, &meta},
		{storage.KindScaler, cfg.Artifacts.Scaler, &scl},
		{storage.KindClassifier, cfg.Artifacts.Classifier, &model},
	}

	infos := make([]ArtifactInfo, 0, len(loads))
	for _, l := range loads {
		md, err := src.Load(ctx, l.kind, l.version, l.target)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s artifact: %w", ErrEngineInitFailed, l.kind, err)
		}
		infos = append(infos, ArtifactInfo{
			Kind:     l.kind,
			Version:  md.Version,
			Checksum: md.Checksum,
			BuiltAt:  md.BuiltAt,
		})
	}

	components, err := BuildComponents(&meta, &scl, &model)
	if err != nil {
		return nil, err
	}

	engine, err := NewEngine(cfg, components, logger)
	if err != nil {
		return nil, err
	}
	engine.manifest.Artifacts = infos

	engine.logger.Info().
		Int("features", engine.manifest.FeatureCount).
		Int("groups", engine.manifest.GroupCount).
		Int("locations", engine.manifest.LocationCount).
		Int("metadata_version", infos[0].Version).
		Int("scaler_version", infos[1].Version).
		Int("classifier_version", infos[2].Version).
		Msg("recommendation engine loaded")

	return engine, nil
}

// BuildComponents turns decoded artifact payloads into engine components.
func BuildComponents(meta *storage.MetadataPayload, scl *storage.ScalerPayload, model *storage.ClassifierPayload) (Components, error) {
	schema, err := features.NewSchema(meta.FeatureColumns)
	if err != nil {
		return Components{}, fmt.Errorf("%w: metadata artifact: %w", ErrEngineInitFailed, err)
	}

	groups := make([]directory.Group, 0, len(meta.Groups))
	for _, g := range meta.Groups {
		locs := make([]directory.Location, 0, len(g.Locations))
		for _, l := range g.Locations {
			locs = append(locs, directory.Location{Name: l.Name, PlaceID: l.PlaceID})
		}
		groups = append(groups, directory.Group{Label: g.Label, Locations: locs})
	}
	dir, err := directory.New(meta.LabelClasses, groups)
	if err != nil {
		return Components{}, fmt.Errorf("%w: metadata artifact: %w", ErrEngineInitFailed, err)
	}

	std, err := scaler.New(scl.Mean, scl.Scale)
	if err != nil {
		return Components{}, fmt.Errorf("%w: scaler artifact: %w", ErrEngineInitFailed, err)
	}

	layers := make([]classifier.Layer, 0, len(model.Layers))
	for _, l := range model.Layers {
		layers = append(layers, classifier.Layer{Weights: l.Weights, Biases: l.Biases})
	}
	mlp, err := classifier.New(model.Classes, layers, classifier.Activation(model.HiddenActivation))
	if err != nil {
		return Components{}, fmt.Errorf("%w: classifier artifact: %w", ErrEngineInitFailed, err)
	}

	return Components{
		Schema:     schema,
		Scaler:     std,
		Classifier: mlp,
		Directory:  dir,
	}, nil
}
