// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

// Package config loads server configuration with Koanf v2.
//
// Sources are layered, later layers winning:
//
//  1. Built-in defaults (structs provider)
//  2. An optional YAML file: CONFIG_PATH, or the first of config.yaml,
//     config.yml, /etc/timelytourist/config.yaml
//  3. Environment variables, through an explicit mapping table so that
//     unrelated variables never leak into the configuration
//
// Example config.yaml:
//
//	server:
//	  port: 9999
//	artifacts:
//	  dir: /data/artifacts
//	  classifier_version: 3
//	recommend:
//	  default_k: 5
//	  max_k: 50
//	security:
//	  cors_origins: ["https://app.example.com"]
//
// Load validates the merged result; a configuration that fails validation
// is never returned.
package config
