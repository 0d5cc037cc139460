package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/migrations"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// DB is a database handle together with its dialect and error classifier.
type DB struct {
	*sql.DB
	dialect            migrations.Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a driver error is worth retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// Migrate applies the schema of the handle's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// IsRetryable reports whether err is a transient database failure.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

var knownTables = func() map[models.Table]struct{} {
	m := make(map[models.Table]struct{}, len(models.SyncTables))
	for _, t := range models.SyncTables {
		m[t] = struct{}{}
	}
	return m
}()

// checkTable guards every query that interpolates a table name.
func checkTable(table models.Table) error {
	if _, ok := knownTables[table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return nil
}
