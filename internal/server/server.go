package server

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/handler"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	transports      []transport
	shutdownTimeout time.Duration

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	s := &server{
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = defaultShutdownTimeout
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		s.transports = append(s.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		s.transports = append(s.transports, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(s.transports) == 0 {
		return nil, errNoServersAreCreated
	}

	return s, nil
}

func (s *server) RunServer(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	for _, t := range s.transports {
		g.Go(func() error {
			if err := t.serve(); err != nil {
				s.logger.Err(err).Str("transport", t.name()).Msg("server stopped with error")
				return err
			}
			return nil
		})
	}

	// one failed listener stops the others as well
	g.Go(func() error {
		<-gCtx.Done()
		return s.shutdown()
	})

	err := g.Wait()
	if err == nil {
		s.logger.Info().Msg("server Shutdown gracefully")
	}
	return err
}

func (s *server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	for _, t := range s.transports {
		s.logger.Info().Str("transport", t.name()).Msg("shutting down")
		if err := t.shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
