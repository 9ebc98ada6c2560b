// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaultConfig().Validate() error = %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:9999" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Recommend.DefaultK != 5 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend = %+v, want 5/50", cfg.Recommend)
	}
	if cfg.Artifacts.Dir != "/data/artifacts" {
		t.Errorf("Artifacts.Dir = %q", cfg.Artifacts.Dir)
	}
	if cfg.Registry.HistoryLimit != 100 {
		t.Errorf("Registry.HistoryLimit = %d, want 100", cfg.Registry.HistoryLimit)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "HTTP_TIMEOUT"},
		{"zero shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"console format", func(c *Config) { c.Logging.Format = "console" }, ""},
		{"missing artifacts dir", func(c *Config) { c.Artifacts.Dir = " " }, "ARTIFACTS_DIR"},
		{"negative classifier version", func(c *Config) { c.Artifacts.ClassifierVersion = -1 }, "ARTIFACTS_CLASSIFIER_VERSION"},
		{"pinned versions", func(c *Config) { c.Artifacts.MetadataVersion = 3 }, ""},
		{"in-memory registry", func(c *Config) { c.Registry.Path = "" }, ""},
		{"negative history", func(c *Config) { c.Registry.HistoryLimit = -1 }, "REGISTRY_HISTORY_LIMIT"},
		{"negative gc interval", func(c *Config) { c.Registry.GCInterval = -time.Second }, "REGISTRY_GC_INTERVAL"},
		{"negative cache size", func(c *Config) { c.Recommend.CacheSize = -1 }, "RECOMMEND_CACHE_SIZE"},
		{"max k zero", func(c *Config) { c.Recommend.MaxK = 0 }, "RECOMMEND_MAX_K"},
		{"max k too large", func(c *Config) { c.Recommend.MaxK = maxK + 1 }, "RECOMMEND_MAX_K"},
		{"default above max", func(c *Config) { c.Recommend.DefaultK = 51 }, "RECOMMEND_DEFAULT_K"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
		{"empty cors origin", func(c *Config) { c.Security.CORSOrigins = []string{""} }, "CORS_ORIGINS"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"short window", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"disabled limiter skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"zero ws rate", func(c *Config) { c.WebSocket.EventsPerSecond = 0 }, "WS_EVENTS_PER_SECOND"},
		{"zero ws burst", func(c *Config) { c.WebSocket.Burst = 0 }, "WS_BURST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"HTTP_PORT":                    "server.port",
		"LOG_LEVEL":                    "logging.level",
		"ARTIFACTS_DIR":                "artifacts.dir",
		"ARTIFACTS_CLASSIFIER_VERSION": "artifacts.classifier_version",
		"REGISTRY_PATH":                "registry.path",
		"RECOMMEND_MAX_K":              "recommend.max_k",
		"RECOMMEND_CACHE_SIZE":         "recommend.cache_size",
		"REGISTRY_GC_INTERVAL":         "registry.gc_interval",
		"CORS_ORIGINS":                 "security.cors_origins",
		"RATE_LIMIT_DISABLED":          "security.rate_limit_disabled",
		"WS_BURST":                     "websocket.burst",
		"PATH":                         "",
		"HOME":                         "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

// Tests below use t.Setenv and cannot run in parallel.

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("ARTIFACTS_DIR", "/srv/artifacts")
	t.Setenv("ARTIFACTS_SCALER_VERSION", "2")
	t.Setenv("RECOMMEND_DEFAULT_K", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("WS_EVENTS_PER_SECOND", "2.5")

	cfg, err := loadFrom("")
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("Logging.Format = %q", cfg.Logging.Format)
	}
	if cfg.Artifacts.Dir != "/srv/artifacts" || cfg.Artifacts.ScalerVersion != 2 {
		t.Errorf("Artifacts = %+v", cfg.Artifacts)
	}
	if cfg.Recommend.DefaultK != 3 || cfg.Recommend.MaxK != 50 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Security.RateLimitWindow != 30*time.Second {
		t.Errorf("RateLimitWindow = %v", cfg.Security.RateLimitWindow)
	}
	if cfg.WebSocket.EventsPerSecond != 2.5 {
		t.Errorf("EventsPerSecond = %v", cfg.WebSocket.EventsPerSecond)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `server:
  port: 7000
artifacts:
  dir: /opt/artifacts
  classifier_version: 4
recommend:
  default_k: 8
  max_k: 20
security:
  cors_origins:
    - https://app.example
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("RECOMMEND_MAX_K", "30")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from file", cfg.Server.Port)
	}
	if cfg.Artifacts.Dir != "/opt/artifacts" || cfg.Artifacts.ClassifierVersion != 4 {
		t.Errorf("Artifacts = %+v", cfg.Artifacts)
	}
	if cfg.Recommend.DefaultK != 8 {
		t.Errorf("DefaultK = %d, want 8 from file", cfg.Recommend.DefaultK)
	}
	if cfg.Recommend.MaxK != 30 {
		t.Errorf("MaxK = %d, want 30 from env", cfg.Recommend.MaxK)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"https://app.example"}) {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default", cfg.Logging.Level)
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("RECOMMEND_DEFAULT_K", "500")

	if _, err := loadFrom(""); err == nil || !strings.Contains(err.Error(), "RECOMMEND") {
		t.Errorf("loadFrom() error = %v, want validation failure", err)
	}
}

func TestLoad_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := loadFrom(path); err == nil {
		t.Error("loadFrom() succeeded on malformed YAML")
	}
}

func TestConfig_String(t *testing.T) {
	t.Parallel()

	s := defaultConfig().String()
	for _, want := range []string{"addr=0.0.0.0:9999", "artifacts=/data/artifacts", "max_k=50"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
