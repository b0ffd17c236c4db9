package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer starts serving requests and blocks until ctx is cancelled or
	// a listener fails. On cancellation the server is shut down gracefully
	// and nil is returned.
	RunServer(ctx context.Context) error

	// Shutdown stops accepting new requests and waits for in-flight ones
	// until ctx expires.
	Shutdown(ctx context.Context) error
}
