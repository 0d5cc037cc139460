package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

const defaultJanitorInterval = time.Minute

// RateLimitJanitor drops finished rate-limit windows on a ticker.
type RateLimitJanitor struct {
	counters ExpiredCounters
	interval time.Duration
	now      func() time.Time

	logger *logger.Logger
}

func NewRateLimitJanitor(counters ExpiredCounters, interval time.Duration, logger *logger.Logger) *RateLimitJanitor {
	if interval <= 0 {
		interval = defaultJanitorInterval
	}
	return &RateLimitJanitor{
		counters: counters,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run never fails: a store error is logged and retried on the next tick.
func (j *RateLimitJanitor) Run(ctx context.Context) error {
	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			j.sweep(ctx)
		}
	}
}

func (j *RateLimitJanitor) sweep(ctx context.Context) {
	removed, err := j.counters.DeleteExpired(ctx, j.now())
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Warn().Err(err).Str("func", "*RateLimitJanitor.sweep").Msg("deleting expired rate limit windows failed")
		}
		return
	}
	if removed > 0 {
		j.logger.Debug().Int64("removed", removed).Msg("expired rate limit windows deleted")
	}
}
