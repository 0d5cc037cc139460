// Package ratelimit implements a fixed-window request budget per identifier.
//
// Counters live behind [CounterStore] so a single-node deployment can keep
// them in memory while several server replicas share them through Postgres.
// A failing store never rejects a request: sync availability wins over strict
// enforcement.
package ratelimit

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

//go:generate mockgen -source=limiter.go -destination=../mock/counter_store_mock.go -package=mock

// CounterStore counts hits per key within fixed windows.
type CounterStore interface {
	// Increment records one hit for key at now and returns the number of hits
	// in the key's current window together with the moment that window ends.
	// When the previous window has ended a new one starts at now with count 1.
	// The read-modify-write must be atomic.
	Increment(ctx context.Context, key string, window time.Duration, now time.Time) (count int64, resetAt time.Time, err error)
}

// Decision is the outcome of one [Limiter.Allow] call.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
	// FailedOpen is set when the counter store errored and the request was
	// let through without being counted.
	FailedOpen bool
}

// Limiter allows at most limit requests per window for each key.
type Limiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewLimiter builds a limiter over store.
func NewLimiter(store CounterStore, limit int, window time.Duration) *Limiter {
	return NewLimiterWithNow(store, limit, window, time.Now)
}

// NewLimiterWithNow is [NewLimiter] with an injectable clock.
func NewLimiterWithNow(store CounterStore, limit int, window time.Duration, now func() time.Time) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    now,
	}
}

// Allow counts one request for key and reports whether it fits the budget.
// A non-positive limit disables limiting.
func (l *Limiter) Allow(ctx context.Context, key string) Decision {
	if l.limit <= 0 || l.window <= 0 {
		return Decision{Allowed: true, Limit: l.limit}
	}

	now := l.now()
	count, resetAt, err := l.store.Increment(ctx, key, l.window, now)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "Limiter.Allow").
			Str("key", key).
			Msg("rate limit counter store unavailable, allowing request")
		return Decision{Allowed: true, Limit: l.limit, Remaining: l.limit, FailedOpen: true}
	}

	d := Decision{
		Limit:   l.limit,
		ResetAt: resetAt,
	}
	if count <= int64(l.limit) {
		d.Allowed = true
		d.Remaining = l.limit - int(count)
		return d
	}

	d.RetryAfter = resetAt.Sub(now)
	if d.RetryAfter < 0 {
		d.RetryAfter = 0
	}
	return d
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}
