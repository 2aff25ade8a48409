// Package server composes and runs the siege process boundary.
//
// It hosts the JSON API over HTTP and a gRPC listener that only serves the
// standard health service, both backed by one in-memory session store.
package server
