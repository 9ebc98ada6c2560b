// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all server configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Registry  RegistryConfig  `koanf:"registry"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	WebSocket WebSocketConfig `koanf:"websocket"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT, HTTP_HOST
//   - HTTP_TIMEOUT: per-request handler timeout (default: 30s)
//   - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
//   - SHUTDOWN_TIMEOUT: graceful shutdown budget (default: 10s)
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ArtifactsConfig locates the trained artifacts. A version of 0 loads the
// latest stored version of that kind.
//
// Environment Variables:
//   - ARTIFACTS_DIR (default: /data/artifacts)
//   - ARTIFACTS_METADATA_VERSION
//   - ARTIFACTS_SCALER_VERSION
//   - ARTIFACTS_CLASSIFIER_VERSION
type ArtifactsConfig struct {
	Dir               string `koanf:"dir"`
	MetadataVersion   int    `koanf:"metadata_version"`
	ScalerVersion     int    `koanf:"scaler_version"`
	ClassifierVersion int    `koanf:"classifier_version"`
}

// RegistryConfig holds the activation registry settings. An empty path
// keeps the registry in memory.
//
// Environment Variables:
//   - REGISTRY_PATH (default: /data/registry)
//   - REGISTRY_HISTORY_LIMIT: activations retained (default: 100)
//   - REGISTRY_GC_INTERVAL: value log GC period, 0 disables (default: 10m)
type RegistryConfig struct {
	Path         string        `koanf:"path"`
	HistoryLimit int           `koanf:"history_limit"`
	GCInterval   time.Duration `koanf:"gc_interval"`
}

// RecommendConfig holds request limits.
//
// Environment Variables:
//   - RECOMMEND_DEFAULT_K (default: 5)
//   - RECOMMEND_MAX_K (default: 50)
//   - RECOMMEND_CACHE_SIZE: cached result sets, 0 disables (default: 1000)
type RecommendConfig struct {
	DefaultK  int `koanf:"default_k"`
	MaxK      int `koanf:"max_k"`
	CacheSize int `koanf:"cache_size"`
}

// SecurityConfig holds CORS and rate limiting settings.
//
// Environment Variables:
//   - CORS_ORIGINS: comma-separated origins (default: *)
//   - RATE_LIMIT_REQUESTS: requests per window per client (default: 100)
//   - RATE_LIMIT_WINDOW (default: 1m)
//   - RATE_LIMIT_DISABLED (default: false)
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// WebSocketConfig holds per-connection event limits.
//
// Environment Variables:
//   - WS_EVENTS_PER_SECOND (default: 10)
//   - WS_BURST (default: 20)
type WebSocketConfig struct {
	EventsPerSecond float64 `koanf:"events_per_second"`
	Burst           int     `koanf:"burst"`
}

// Load reads configuration from defaults, the optional config file, and
// the environment, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// String summarises the configuration for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s artifacts=%s registry=%q default_k=%d max_k=%d",
		c.Server.Addr(), c.Artifacts.Dir, c.Registry.Path, c.Recommend.DefaultK, c.Recommend.MaxK)
}
