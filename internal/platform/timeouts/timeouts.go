// Package timeouts defines shared timeout constants for board processes.
package timeouts

import "time"

// Generation caps one checklist generation call before the fallback list is used.
const Generation = 20 * time.Second

// HealthProbe caps a single gRPC health check round trip.
const HealthProbe = time.Second

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long servers wait for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
