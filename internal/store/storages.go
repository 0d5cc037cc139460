package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

// Storages is everything the sync server persists in Postgres.
type Storages struct {
	DB                  *DB
	UserRepository      UserRepository
	RecordRepository    RecordRepository
	RateLimitRepository RateLimitRepository
}

// NewStorages connects to Postgres, applies migrations and builds the
// repositories.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		DB:                  db,
		UserRepository:      NewUserRepository(db, logger),
		RecordRepository:    NewRecordRepository(db, logger),
		RateLimitRepository: NewRateLimitRepository(db, logger),
	}, nil
}

func (s *Storages) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
