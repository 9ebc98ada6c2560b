// Timely Tourist - Travel Destination Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/timelytourist

package services

import (
	"context"
	"time"

	"github.com/tomtom215/timelytourist/internal/logging"
)

// GarbageCollector is satisfied by *registry.Registry.
type GarbageCollector interface {
	RunGC() error
}

// RegistryGCService periodically reclaims activation registry space.
// A failed pass is logged and retried on the next tick; it never
// restarts the service.
type RegistryGCService struct {
	gc       GarbageCollector
	interval time.Duration
	name     string
}

// NewRegistryGCService runs gc every interval.
func NewRegistryGCService(gc GarbageCollector, interval time.Duration) *RegistryGCService {
	return &RegistryGCService{
		gc:       gc,
		interval: interval,
		name:     "registry-gc",
	}
}

// Serve implements suture.Service. A non-positive interval disables GC
// and the service just waits for shutdown.
func (r *RegistryGCService) Serve(ctx context.Context) error {
	if r.interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := r.gc.RunGC(); err != nil {
				logging.Warn().Err(err).Msg("Registry GC failed")
				continue
			}
			logging.Debug().Dur("duration", time.Since(start)).Msg("Registry GC complete")
		}
	}
}

// String names the service in supervisor events.
func (r *RegistryGCService) String() string {
	return r.name
}
