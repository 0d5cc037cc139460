package server

import "context"

// Server is the lifecycle of the transports owned by this package.
type Server interface {
	// RunServer serves until ctx is cancelled, then shuts every transport
	// down gracefully. It returns the first listener error, if any.
	RunServer(ctx context.Context) error
}

// transport is one listener: HTTP or gRPC.
type transport interface {
	name() string
	serve() error
	shutdown(ctx context.Context) error
}
