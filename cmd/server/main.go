package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/handler"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-fin-keeper/internal/server"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/workers"
	"github.com/MKhiriev/go-fin-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-fin-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	build := models.AppBuildInfo{Version: buildVersion, Date: buildDate, Commit: buildCommit}
	services, err := service.NewServices(storages, cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	counters := newCounterStore(cfg.RateLimit, storages)
	limiter := ratelimit.NewLimiter(counters, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	handlers, err := handler.NewHandlers(services, limiter, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.RunServer(gCtx)
	})
	g.Go(func() error {
		return workers.NewWorkers(
			workers.NewRateLimitJanitor(counters, cfg.Workers.JanitorInterval, log),
		).Run(gCtx)
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

type counterStore interface {
	ratelimit.CounterStore
	workers.ExpiredCounters
}

// newCounterStore keeps counters in Postgres when several replicas share one
// budget, in memory otherwise.
func newCounterStore(cfg config.RateLimit, storages *store.Storages) counterStore {
	if cfg.Store == config.RateLimitStorePostgres {
		return storages.RateLimitRepository
	}
	return ratelimit.NewMemoryStore()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
