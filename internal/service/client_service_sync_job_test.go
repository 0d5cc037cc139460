package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/models"
)

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("sync was not called")
	}
}

func TestClientSyncJob_StartSyncsImmediately(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	job := NewClientSyncJob(engine, time.Hour, logger.Nop())

	called := make(chan struct{}, 1)
	engine.EXPECT().Status().Return(models.SyncStatus{State: models.SyncIdle}).AnyTimes()
	engine.EXPECT().Sync(gomock.Any(), int64(3)).DoAndReturn(func(context.Context, int64) error {
		called <- struct{}{}
		return nil
	})

	job.Start(context.Background(), 3)
	waitSignal(t, called)
	job.Stop()
}

func TestClientSyncJob_ManualIgnoresRetryAfter(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	job := NewClientSyncJob(engine, time.Hour, logger.Nop())

	retryAt := time.Now().Add(time.Hour)
	statusRead := make(chan struct{}, 1)
	engine.EXPECT().Status().DoAndReturn(func() models.SyncStatus {
		select {
		case statusRead <- struct{}{}:
		default:
		}
		return models.SyncStatus{State: models.SyncError, RetryAfter: &retryAt}
	}).AnyTimes()

	called := make(chan struct{}, 1)
	// стартовый (автоматический) запуск пропускается, ручной проходит
	engine.EXPECT().Sync(gomock.Any(), int64(3)).DoAndReturn(func(context.Context, int64) error {
		called <- struct{}{}
		return nil
	}).Times(1)

	job.Start(context.Background(), 3)
	waitSignal(t, statusRead)
	require.Eventually(t, func() bool { return job.Trigger(models.TriggerManual) }, time.Second, time.Millisecond)
	waitSignal(t, called)
	job.Stop()
}

func TestClientSyncJob_TriggerDuringCycleIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	job := NewClientSyncJob(engine, time.Hour, logger.Nop())

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	engine.EXPECT().Status().Return(models.SyncStatus{State: models.SyncIdle}).AnyTimes()
	engine.EXPECT().Sync(gomock.Any(), int64(3)).DoAndReturn(func(context.Context, int64) error {
		started <- struct{}{}
		<-release
		return nil
	}).Times(1)

	job.Start(context.Background(), 3)
	waitSignal(t, started)

	assert.False(t, job.Trigger(models.TriggerManual))
	assert.False(t, job.Trigger(models.TriggerReconnect))

	close(release)
	time.Sleep(50 * time.Millisecond)
	job.Stop()
}

func TestClientSyncJob_CycleDropsQueuedTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	job := NewClientSyncJob(engine, time.Hour, logger.Nop()).(*clientSyncJob)

	engine.EXPECT().Status().Return(models.SyncStatus{State: models.SyncIdle})
	engine.EXPECT().Sync(gomock.Any(), int64(3)).Return(nil)

	require.True(t, job.Trigger(models.TriggerForeground))
	job.cycle(context.Background(), 3, models.TriggerTimer)

	assert.Empty(t, job.triggers)
	assert.True(t, job.Trigger(models.TriggerManual))
}

func TestClientSyncJob_UnauthenticatedSkipsAutomatic(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	job := NewClientSyncJob(engine, time.Hour, logger.Nop()).(*clientSyncJob)

	engine.EXPECT().Status().Return(models.SyncStatus{State: models.SyncUnauthenticated}).AnyTimes()

	job.run(context.Background(), 3, models.TriggerReconnect)
}

func TestClientSyncJob_TriggerCoalesces(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewClientSyncJob(mock.NewMockSyncEngine(ctrl), 0, logger.Nop())

	assert.True(t, job.Trigger(models.TriggerReconnect))
	assert.False(t, job.Trigger(models.TriggerForeground))
}

func TestClientSyncJob_StopWithoutStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	job := NewClientSyncJob(mock.NewMockSyncEngine(ctrl), time.Minute, logger.Nop())
	job.Stop()
}

func TestClientSyncJob_InProgressIsNotAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	job := NewClientSyncJob(engine, time.Hour, logger.Nop()).(*clientSyncJob)

	engine.EXPECT().Status().Return(models.SyncStatus{State: models.SyncSyncing})
	engine.EXPECT().Sync(gomock.Any(), int64(3)).Return(ErrSyncInProgress)

	job.run(context.Background(), 3, models.TriggerManual)
}
