package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const defaultSyncInterval = 30 * time.Second

type clientSyncJob struct {
	engine   SyncEngine
	interval time.Duration
	triggers chan models.TriggerReason
	busy     atomic.Bool
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a scheduler that calls engine.Sync on a ticker and
// on triggers. The job is idle until Start is called.
func NewClientSyncJob(engine SyncEngine, interval time.Duration, logger *logger.Logger) SyncScheduler {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &clientSyncJob{
		engine:   engine,
		interval: interval,
		triggers: make(chan models.TriggerReason, 1),
		now:      time.Now,
		logger:   logger,
	}
}

func (j *clientSyncJob) Start(ctx context.Context, userID int64) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		j.cycle(jobCtx, userID, models.TriggerForeground)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.cycle(jobCtx, userID, models.TriggerTimer)
			case reason := <-j.triggers:
				j.cycle(jobCtx, userID, reason)
			}
		}
	}()
}

// Trigger never blocks. A trigger that arrives while a cycle is running is
// dropped, and so is one queued behind another: the cycle that runs reads the
// store as it is at that moment.
func (j *clientSyncJob) Trigger(reason models.TriggerReason) bool {
	if j.busy.Load() {
		return false
	}
	select {
	case j.triggers <- reason:
		return true
	default:
		return false
	}
}

// Stop cancels the loop and waits for a running cycle to return. Safe to
// call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

// cycle runs one sync and then drops a trigger queued before it started,
// since that cycle already served it.
func (j *clientSyncJob) cycle(ctx context.Context, userID int64, reason models.TriggerReason) {
	j.busy.Store(true)
	defer j.busy.Store(false)

	j.run(ctx, userID, reason)
	select {
	case <-j.triggers:
	default:
	}
}

func (j *clientSyncJob) run(ctx context.Context, userID int64, reason models.TriggerReason) {
	log := j.logger.With().
		Str("func", "*clientSyncJob.run").
		Str("reason", string(reason)).
		Logger()

	status := j.engine.Status()
	if reason.Automatic() {
		if status.State == models.SyncUnauthenticated {
			log.Debug().Msg("skipping sync, not authenticated")
			return
		}
		if status.RetryAfter != nil && j.now().Before(*status.RetryAfter) {
			log.Debug().Time("retry_after", *status.RetryAfter).Msg("skipping sync, rate limited")
			return
		}
	}

	err := j.engine.Sync(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncInProgress):
		log.Debug().Msg("sync already running, trigger coalesced")
	case ctx.Err() != nil:
	default:
		log.Warn().Err(err).Msg("sync cycle failed, will retry")
	}
}
