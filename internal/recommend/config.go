// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package recommend

import "fmt"

// DefaultK is the number of recommendations returned when the caller does
// not ask for a specific count.
const DefaultK = 5

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Artifacts pins the artifact versions to load.
	Artifacts ArtifactVersions `json:"artifacts"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the default number of recommendations to return.
	// Default: 5.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value. Transport layers reject larger
	// requests; the engine itself never truncates below the caller's k.
	// Default: 50.
	MaxK int `json:"max_k"`
}

// ArtifactVersions selects artifact versions. Zero means latest.
type ArtifactVersions struct {
	Metadata   int `json:"metadata"`
	Scaler     int `json:"scaler"`
	Classifier int `json:"classifier"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultK: DefaultK,
			MaxK:     50,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultK < 0 {
		return fmt.Errorf("limits.default_k must be non-negative, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	pins := map[string]int{
		"artifacts.metadata":   c.Artifacts.Metadata,
		"artifacts.scaler":     c.Artifacts.Scaler,
		"artifacts.classifier": c.Artifacts.Classifier,
	}
	for name, v := range pins {
		if v < 0 {
			return fmt.Errorf("%s must be non-negative, got %d", name, v)
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types
	clone := *c
	return &clone
}
