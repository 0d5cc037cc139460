package workers

import (
	"context"
	"os"
	"os/signal"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// SyncJob keeps the device's sync scheduler running for one account.
type SyncJob struct {
	scheduler service.SyncScheduler
	userID    int64
}

func NewSyncJob(scheduler service.SyncScheduler, userID int64) *SyncJob {
	return &SyncJob{scheduler: scheduler, userID: userID}
}

func (s *SyncJob) Run(ctx context.Context) error {
	s.scheduler.Start(ctx, s.userID)
	<-ctx.Done()
	s.scheduler.Stop()
	return nil
}

// SignalTrigger turns OS signals into scheduler triggers, e.g. SIGHUP into a
// manual sync.
type SignalTrigger struct {
	scheduler service.SyncScheduler
	reasons   map[os.Signal]models.TriggerReason
	notify    func(c chan<- os.Signal, sig ...os.Signal)
	stop      func(c chan<- os.Signal)

	logger *logger.Logger
}

func NewSignalTrigger(scheduler service.SyncScheduler, reasons map[os.Signal]models.TriggerReason, logger *logger.Logger) *SignalTrigger {
	return &SignalTrigger{
		scheduler: scheduler,
		reasons:   reasons,
		notify:    signal.Notify,
		stop:      signal.Stop,
		logger:    logger,
	}
}

func (s *SignalTrigger) Run(ctx context.Context) error {
	signals := make(chan os.Signal, 1)
	sigs := make([]os.Signal, 0, len(s.reasons))
	for sig := range s.reasons {
		sigs = append(sigs, sig)
	}
	s.notify(signals, sigs...)
	defer s.stop(signals)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-signals:
			reason := s.reasons[sig]
			queued := s.scheduler.Trigger(reason)
			s.logger.Info().
				Str("signal", sig.String()).
				Str("reason", string(reason)).
				Bool("queued", queued).
				Msg("sync triggered by signal")
		}
	}
}
