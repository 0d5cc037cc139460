package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
)

func TestRateLimitRepository_Increment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := logger.Nop()
	repo := NewRateLimitRepository(&DB{DB: db, logger: l}, l)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	resetAt := now.Add(time.Minute)

	mock.ExpectQuery("INSERT INTO rate_limits").
		WithArgs("user:7", now, float64(60)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "reset_at"}).AddRow(int64(3), resetAt))

	count, gotReset, err := repo.Increment(context.Background(), "user:7", time.Minute, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.True(t, resetAt.Equal(gotReset))
}

func TestRateLimitRepository_IncrementError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := logger.Nop()
	repo := NewRateLimitRepository(&DB{DB: db, logger: l}, l)

	mock.ExpectQuery("INSERT INTO rate_limits").WillReturnError(errors.New("down"))

	_, _, err = repo.Increment(context.Background(), "ip:1.2.3.4", time.Minute, time.Now())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestRateLimitRepository_DeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := logger.Nop()
	repo := NewRateLimitRepository(&DB{DB: db, logger: l}, l)

	mock.ExpectExec("DELETE FROM rate_limits").WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
