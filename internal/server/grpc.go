package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-fin-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

type grpcServer struct {
	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(handler.Interceptors()...)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, grpc.ConnectionTimeout(cfg.RequestTimeout))
	}

	server := grpc.NewServer(opts...)
	handler.Register(server)

	return &grpcServer{
		server:  server,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) name() string {
	return "grpc"
}

func (g *grpcServer) serve() error {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("gRPC listen on %s: %w", g.address, err)
	}

	g.logger.Info().Str("addr", g.address).Msg("Launching GRPC server")
	if err := g.server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// shutdown waits for running calls until ctx ends, then drops them.
func (g *grpcServer) shutdown(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return ctx.Err()
	}
}
