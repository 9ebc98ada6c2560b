// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Command server runs the Timely Tourist recommendation service.

Startup order:

 1. Configuration: koanf v2 (defaults, optional config file, environment)
 2. Logging: zerolog
 3. Artifact store: versioned metadata, scaler and classifier artifacts
 4. Engine: loaded once, fatal on failure; artifacts are not reloaded,
    so results are memoized in an LRU cache
 5. Activation registry: BadgerDB history of loaded artifact versions
 6. Supervisor tree: registry GC, WebSocket hub, HTTP server

# Supervisor Tree

	timelytourist
	├── data-layer
	│   └── registry-gc (only when REGISTRY_PATH is set)
	├── messaging-layer
	│   └── websocket-hub
	└── api-layer
	    └── http-server

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=9999
	LOG_LEVEL=info
	ARTIFACTS_DIR=/data/artifacts
	REGISTRY_PATH=/data/registry   # empty disables the registry
	RECOMMEND_DEFAULT_K=5
	RECOMMEND_MAX_K=50
	RECOMMEND_CACHE_SIZE=1000      # 0 disables the result cache
	CORS_ORIGINS=*

# Signals

SIGINT and SIGTERM cancel the root context. Connected WebSocket clients
receive a server_shutdown frame, in-flight HTTP requests get
SHUTDOWN_TIMEOUT to finish, and the registry is closed last.

Artifacts are produced with the ttctl command.
*/
package main
