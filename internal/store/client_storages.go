package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

// ClientStorages groups the device-side repositories.
type ClientStorages struct {
	DB *DB
	// RecordRepository is the SQLite-backed store of the six record tables
	// and their pull cursors.
	RecordRepository LocalRecordRepository
}

// NewClientStorages opens (creating if needed) the SQLite file at
// cfg.SQLitePath, applies migrations and returns the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.SQLitePath, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		DB:               db,
		RecordRepository: NewLocalRecordRepository(db, logger),
	}, nil
}

func (s *ClientStorages) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
