// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

/*
Package services adapts server components to suture.Service.

  - HTTPServerService: ListenAndServe/Shutdown to Serve(ctx), building a
    fresh server from a factory on every restart
  - WebSocketHubService: delegates to the hub's RunWithContext
  - RegistryGCService: periodic value log GC for the activation registry

Each wrapper returns ctx.Err() on a clean shutdown and implements
fmt.Stringer so supervisor events name it.
*/
package services
