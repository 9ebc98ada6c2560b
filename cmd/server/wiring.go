// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package main

import (
	"time"

	"github.com/tomtom215/timelytourist/internal/config"
	"github.com/tomtom215/timelytourist/internal/metrics"
	"github.com/tomtom215/timelytourist/internal/recommend"
	"github.com/tomtom215/timelytourist/internal/recommend/registry"
)

func engineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	ec.Limits.DefaultK = cfg.Recommend.DefaultK
	ec.Limits.MaxK = cfg.Recommend.MaxK
	ec.Artifacts = recommend.ArtifactVersions{
		Metadata:   cfg.Artifacts.MetadataVersion,
		Scaler:     cfg.Artifacts.ScalerVersion,
		Classifier: cfg.Artifacts.ClassifierVersion,
	}
	return ec
}

// openRegistry returns nil when the registry is disabled.
func openRegistry(cfg *config.Config) (*registry.Registry, error) {
	if cfg.Registry.Path == "" {
		return nil, nil
	}
	return registry.Open(registry.Options{
		Path:   cfg.Registry.Path,
		Retain: cfg.Registry.HistoryLimit,
	})
}

func activationOf(m *recommend.Manifest) *registry.Activation {
	refs := make([]registry.ArtifactRef, 0, len(m.Artifacts))
	for _, a := range m.Artifacts {
		refs = append(refs, registry.ArtifactRef{Kind: a.Kind, Version: a.Version, Checksum: a.Checksum})
	}
	return &registry.Activation{
		ActivatedAt:   m.LoadedAt,
		Artifacts:     refs,
		FeatureCount:  m.FeatureCount,
		GroupCount:    m.GroupCount,
		LocationCount: m.LocationCount,
	}
}

func snapshotOf(m *recommend.Manifest, loadDuration time.Duration) metrics.EngineSnapshot {
	versions := make(map[string]int, len(m.Artifacts))
	for _, a := range m.Artifacts {
		versions[a.Kind] = a.Version
	}
	return metrics.EngineSnapshot{
		Features:     m.FeatureCount,
		Groups:       m.GroupCount,
		Locations:    m.LocationCount,
		Versions:     versions,
		LoadDuration: loadDuration,
	}
}
