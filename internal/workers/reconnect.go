package workers

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	defaultReconnectBase = 2 * time.Second
	defaultReconnectMax  = 30 * time.Second
)

// ReconnectTrigger waits for a sync cycle that failed because the server was
// unreachable, pings the server with exponential backoff and asks for a
// reconnect sync once it answers.
type ReconnectTrigger struct {
	engine    service.SyncEngine
	probe     service.ConnectivityService
	scheduler service.SyncScheduler
	base      time.Duration
	maxWait   time.Duration

	logger *logger.Logger
}

// NewReconnectTrigger pings no sooner than base after an outage is seen and
// no less often than every maxWait while it lasts.
func NewReconnectTrigger(engine service.SyncEngine, probe service.ConnectivityService, scheduler service.SyncScheduler, base, maxWait time.Duration, logger *logger.Logger) *ReconnectTrigger {
	if base <= 0 {
		base = defaultReconnectBase
	}
	if maxWait < base {
		maxWait = max(base, defaultReconnectMax)
	}
	return &ReconnectTrigger{
		engine:    engine,
		probe:     probe,
		scheduler: scheduler,
		base:      base,
		maxWait:   maxWait,
		logger:    logger,
	}
}

func (r *ReconnectTrigger) Run(ctx context.Context) error {
	updates, unsubscribe := r.engine.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case status := <-updates:
			if !status.Offline {
				continue
			}
			if err := r.waitForServer(ctx); err != nil {
				return nil
			}

			queued := r.scheduler.Trigger(models.TriggerReconnect)
			r.logger.Info().Bool("queued", queued).Msg("server is reachable again, sync triggered")

			// статусы, пришедшие во время ожидания, описывают уже пережитый обрыв
			select {
			case <-updates:
			default:
			}
		}
	}
}

// waitForServer returns nil once the server answers and ctx.Err() when ctx
// ends first.
func (r *ReconnectTrigger) waitForServer(ctx context.Context) error {
	backoff := retry.WithCappedDuration(r.maxWait, retry.NewExponential(r.base))
	next, _ := backoff.Next()

	t := time.NewTimer(next)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
	}

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := r.probe.Ping(ctx); err != nil {
			r.logger.Debug().Err(err).Msg("server still unreachable")
			return retry.RetryableError(err)
		}
		return nil
	})
}
