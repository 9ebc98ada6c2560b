// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package supervisor runs the server's long-lived services under suture v4.

The tree has three layers that restart independently:

	timelytourist
	├── data-layer
	│   └── RegistryGCService
	├── messaging-layer
	│   └── WebSocketHubService
	└── api-layer
	    └── HTTPServerService

A crashed service is restarted with exponential backoff once it exceeds
FailureThreshold failures (decaying at FailureDecay per second). Supervisor
events go to the slog logger passed to NewSupervisorTree; the server
passes logging.NewSlogLogger so they land in the zerolog stream.

Usage:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewRegistryGCService(reg, cfg.Registry.GCInterval))
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(factory, cfg.Server.ShutdownTimeout))
	err := tree.Serve(ctx)

The engine itself is not a service. It is loaded once before the tree
starts and is read-only afterwards.

See the services subpackage for the wrappers.
*/
package supervisor
