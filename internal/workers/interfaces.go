// Package workers runs the background loops of both binaries: the rate-limit
// janitor on the server, the sync scheduler and its signal triggers on the
// device.
package workers

import (
	"context"
	"time"
)

// Worker blocks in Run until ctx is cancelled or it fails.
type Worker interface {
	Run(ctx context.Context) error
}

// ExpiredCounters is implemented by both rate-limit counter stores.
type ExpiredCounters interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
