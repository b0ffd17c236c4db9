// Package server wires and runs the application's transport servers.
//
// It provides orchestration for HTTP and gRPC server lifecycles, including
// startup and graceful shutdown of all enabled transports. Signal handling
// lives in cmd/server, which cancels the context passed to RunServer.
package server
