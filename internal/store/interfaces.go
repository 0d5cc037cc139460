package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/merge"
	"github.com/MKhiriev/go-fin-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// PushDecider picks the winner for one pushed row. stored is nil when the
// server has no row with that id.
type PushDecider func(stored *models.Record, pushed models.Record) merge.PushDecision

// RecordRepository is the authoritative store of synchronizable rows.
type RecordRepository interface {
	// ApplyPush writes a batch of rows of one table in a single transaction
	// and returns one result per row, in order. Rows owned by another user
	// come back with Error set.
	ApplyPush(ctx context.Context, userID int64, table models.Table, rows []models.Record, decide PushDecider) ([]models.PushResult, error)
	// Pull returns up to limit rows with sequence > cursor in ascending
	// sequence order, and whether more rows follow.
	Pull(ctx context.Context, userID int64, table models.Table, cursor int64, limit int) ([]models.Record, bool, error)
	Stats(ctx context.Context, userID int64, table models.Table) (models.TableStats, error)
}

// RateLimitRepository keeps fixed-window counters shared by server replicas.
type RateLimitRepository interface {
	Increment(ctx context.Context, key string, window time.Duration, now time.Time) (int64, time.Time, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
