// Package timeouts defines shared timeout constants used across siege
// commands and servers.
package timeouts

import "time"

// HealthCheck caps how long a probe waits for a SERVING health status.
const HealthCheck = 5 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown.
const Shutdown = 10 * time.Second

// OTelShutdown bounds the final span flush when a command exits.
const OTelShutdown = 5 * time.Second
