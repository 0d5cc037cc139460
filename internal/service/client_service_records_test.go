package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/tables"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func TestRecordService_Lifecycle(t *testing.T) {
	repo := newLocalRepo(t)
	clock := testNow
	tracker := NewChangeTrackerWithNow(repo, func() time.Time { return clock })
	svc := NewRecordService(tracker, repo, tables.Default(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testUser, models.TableGoals, goalPayload("car"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Clock)
	assert.Equal(t, models.RecordPending, created.SyncStatus)
	assert.True(t, testNow.Equal(created.CreatedAt))

	clock = clock.Add(time.Minute)
	updated, err := svc.Update(ctx, testUser, models.TableGoals, created.ID, goalPayload("car v2"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Clock)
	assert.True(t, testNow.Equal(updated.CreatedAt))
	assert.True(t, testNow.Add(time.Minute).Equal(updated.UpdatedAt))

	deleted, err := svc.Delete(ctx, testUser, models.TableGoals, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted.Clock)
	assert.True(t, deleted.IsDeleted())
	assert.True(t, models.PayloadEqual(goalPayload("car v2"), deleted.Payload))

	visible, err := svc.List(ctx, testUser, models.TableGoals, false)
	require.NoError(t, err)
	assert.Empty(t, visible)
	all, err := svc.List(ctx, testUser, models.TableGoals, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	restored, err := svc.Restore(ctx, testUser, models.TableGoals, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), restored.Clock)
	assert.False(t, restored.IsDeleted())

	got, err := svc.Get(ctx, testUser, models.TableGoals, created.ID)
	require.NoError(t, err)
	assert.True(t, got.SameState(restored.Record))
}

func TestRecordService_Errors(t *testing.T) {
	repo := newLocalRepo(t)
	svc := NewRecordService(NewChangeTracker(repo), repo, tables.Default(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, testUser, models.TableGoals, []byte(`{"name":"car"}`))
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Create(ctx, testUser, "budgets", goalPayload("car"))
	assert.ErrorIs(t, err, tables.ErrUnknownTable)

	_, err = svc.Update(ctx, testUser, models.TableGoals, idA, goalPayload("car"))
	assert.ErrorIs(t, err, store.ErrRecordNotFound)

	created, err := svc.Create(ctx, testUser, models.TableGoals, goalPayload("car"))
	require.NoError(t, err)

	_, err = svc.Restore(ctx, testUser, models.TableGoals, created.ID)
	assert.ErrorIs(t, err, ErrRecordIsNotDeleted)

	_, err = svc.Delete(ctx, testUser, models.TableGoals, created.ID)
	require.NoError(t, err)
	_, err = svc.Delete(ctx, testUser, models.TableGoals, created.ID)
	assert.ErrorIs(t, err, ErrRecordIsDeleted)
	_, err = svc.Update(ctx, testUser, models.TableGoals, created.ID, goalPayload("car v2"))
	assert.ErrorIs(t, err, ErrRecordIsDeleted)

	// неудачная правка не двигает часы
	got, err := svc.Get(ctx, testUser, models.TableGoals, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Clock)

	_, err = svc.Get(ctx, testUser+1, models.TableGoals, created.ID)
	assert.ErrorIs(t, err, store.ErrForeignRecord)
}

func TestChangeTracker_ConcurrentStampsNeverCollide(t *testing.T) {
	repo := newLocalRepo(t)
	svc := NewRecordService(NewChangeTracker(repo), repo, tables.Default(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, testUser, models.TableGoals, goalPayload("car"))
	require.NoError(t, err)

	const writers = 10
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Update(ctx, testUser, models.TableGoals, created.ID, goalPayload("car"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.Get(ctx, testUser, models.TableGoals, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(writers+1), got.Clock)
}

func TestAuthoritative(t *testing.T) {
	apply := authoritative(testNow)
	incoming := goalRow(idA, 3, "server")
	incoming.Sequence = 9

	t.Run("insert", func(t *testing.T) {
		next, ok := apply(nil, incoming)
		require.True(t, ok)
		assert.Equal(t, models.RecordSynced, next.SyncStatus)
		assert.Equal(t, int64(9), next.Sequence)
		require.NotNil(t, next.LastSyncedAt)
		assert.Equal(t, testNow, *next.LastSyncedAt)
	})

	t.Run("equal clock overwrites pending", func(t *testing.T) {
		local := models.LocalRecord{Record: goalRow(idA, 3, "local"), SyncStatus: models.RecordPending}
		next, ok := apply(&local, incoming)
		require.True(t, ok)
		assert.True(t, models.PayloadEqual(incoming.Payload, next.Payload))
	})

	t.Run("higher local clock kept", func(t *testing.T) {
		local := models.LocalRecord{Record: goalRow(idA, 4, "local"), SyncStatus: models.RecordPending}
		_, ok := apply(&local, incoming)
		assert.False(t, ok)
	})
}
