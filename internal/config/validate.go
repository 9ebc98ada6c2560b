// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package config

import (
	"fmt"
	"strings"
	"time"
)

// maxK bounds RECOMMEND_MAX_K.
const maxK = 1000

// Validate checks every section.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateArtifacts,
		c.validateRegistry,
		c.validateRecommend,
		c.validateSecurity,
		c.validateWebSocket,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	timeouts := []struct {
		name string
		d    time.Duration
	}{
		{"HTTP_TIMEOUT", c.Server.Timeout},
		{"HTTP_READ_TIMEOUT", c.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", c.Server.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
	}
	for _, t := range timeouts {
		if t.d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", t.name, t.d)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateArtifacts() error {
	if strings.TrimSpace(c.Artifacts.Dir) == "" {
		return fmt.Errorf("ARTIFACTS_DIR is required")
	}
	versions := map[string]int{
		"ARTIFACTS_METADATA_VERSION":   c.Artifacts.MetadataVersion,
		"ARTIFACTS_SCALER_VERSION":     c.Artifacts.ScalerVersion,
		"ARTIFACTS_CLASSIFIER_VERSION": c.Artifacts.ClassifierVersion,
	}
	for name, v := range versions {
		if v < 0 {
			return fmt.Errorf("%s must be 0 (latest) or a positive version, got %d", name, v)
		}
	}
	return nil
}

func (c *Config) validateRegistry() error {
	if c.Registry.HistoryLimit < 0 {
		return fmt.Errorf("REGISTRY_HISTORY_LIMIT must be non-negative, got %d", c.Registry.HistoryLimit)
	}
	if c.Registry.GCInterval < 0 {
		return fmt.Errorf("REGISTRY_GC_INTERVAL must be non-negative, got %s", c.Registry.GCInterval)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.MaxK < 1 || r.MaxK > maxK {
		return fmt.Errorf("RECOMMEND_MAX_K must be between 1 and %d, got %d", maxK, r.MaxK)
	}
	if r.DefaultK < 0 || r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be between 0 and RECOMMEND_MAX_K (%d), got %d", r.MaxK, r.DefaultK)
	}
	if r.CacheSize < 0 {
		return fmt.Errorf("RECOMMEND_CACHE_SIZE must be non-negative, got %d", r.CacheSize)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	for _, o := range c.Security.CORSOrigins {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("CORS_ORIGINS contains an empty origin")
		}
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitReqs > 100000 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between 1 and 100000, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateWebSocket() error {
	if c.WebSocket.EventsPerSecond <= 0 {
		return fmt.Errorf("WS_EVENTS_PER_SECOND must be positive, got %v", c.WebSocket.EventsPerSecond)
	}
	if c.WebSocket.Burst < 1 {
		return fmt.Errorf("WS_BURST must be at least 1, got %d", c.WebSocket.Burst)
	}
	return nil
}
