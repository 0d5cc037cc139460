// Package server runs the sync server's transports.
//
// Every configured transport (HTTP, gRPC) listens until the run context is
// cancelled, after which all of them are shut down within the configured
// shutdown timeout.
package server
