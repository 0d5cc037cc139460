package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

// rateLimitRepository keeps limiter windows in the rate_limits table. The
// upsert is a single statement, so concurrent replicas never lose a hit.
type rateLimitRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewRateLimitRepository(db *DB, logger *logger.Logger) RateLimitRepository {
	logger.Debug().Msg("creating rate limit repository")
	return &rateLimitRepository{
		db:     db,
		logger: logger,
	}
}

func (r *rateLimitRepository) Increment(ctx context.Context, key string, window time.Duration, now time.Time) (int64, time.Time, error) {
	var (
		count   int64
		resetAt time.Time
	)
	err := r.db.QueryRowContext(ctx, incrementRateLimit, key, now.UTC(), window.Seconds()).Scan(&count, &resetAt)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*rateLimitRepository.Increment").
			Str("key", key).
			Msg("failed to increment counter")
		return 0, time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, resetAt, nil
}

// DeleteExpired drops windows that ended at or before now.
func (r *rateLimitRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredRateLimits, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return res.RowsAffected()
}
