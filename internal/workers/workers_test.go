// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type funcWorker func(ctx context.Context) error

func (f funcWorker) Run(ctx context.Context) error { return f(ctx) }

func TestWorkers_RunUntilCancelled(t *testing.T) {
	var started atomic.Int32
	blocking := funcWorker(func(ctx context.Context) error {
		started.Add(1)
		<-ctx.Done()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewWorkers(blocking, blocking, blocking).Run(ctx) }()

	require.Eventually(t, func() bool { return started.Load() == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestWorkers_FailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	failing := funcWorker(func(context.Context) error { return boom })
	waiting := funcWorker(func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	})

	err := NewWorkers(waiting, failing).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWorkers_Empty(t *testing.T) {
	assert.NoError(t, NewWorkers().Run(context.Background()))
}

func TestRateLimitJanitor_Sweeps(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	past := time.Now().Add(-time.Hour)
	_, _, err := store.Increment(context.Background(), "user:1", time.Minute, past)
	require.NoError(t, err)
	_, _, err = store.Increment(context.Background(), "user:2", time.Hour, time.Now())
	require.NoError(t, err)

	j := NewRateLimitJanitor(store, 10*time.Millisecond, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go j.Run(ctx)

	// остаётся только живое окно user:2
	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 5*time.Millisecond)
}

type failingCounters struct {
	calls atomic.Int32
}

func (f *failingCounters) DeleteExpired(context.Context, time.Time) (int64, error) {
	f.calls.Add(1)
	return 0, errors.New("connection refused")
}

func TestRateLimitJanitor_KeepsRunningOnError(t *testing.T) {
	counters := &failingCounters{}
	j := NewRateLimitJanitor(counters, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	require.Eventually(t, func() bool { return counters.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}

func TestSyncJob_StartsAndStops(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheduler := mock.NewMockSyncScheduler(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	gomock.InOrder(
		scheduler.EXPECT().Start(gomock.Any(), int64(4)).Do(func(context.Context, int64) { cancel() }),
		scheduler.EXPECT().Stop(),
	)

	assert.NoError(t, NewSyncJob(scheduler, 4).Run(ctx))
}

func TestSignalTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	scheduler := mock.NewMockSyncScheduler(ctrl)

	var (
		mu      sync.Mutex
		signals chan<- os.Signal
	)
	trigger := NewSignalTrigger(scheduler, map[os.Signal]models.TriggerReason{
		syscall.SIGHUP:  models.TriggerManual,
		syscall.SIGUSR1: models.TriggerForeground,
	}, logger.Nop())
	trigger.notify = func(c chan<- os.Signal, _ ...os.Signal) {
		mu.Lock()
		signals = c
		mu.Unlock()
	}
	trigger.stop = func(chan<- os.Signal) {}

	triggered := make(chan models.TriggerReason, 2)
	scheduler.EXPECT().Trigger(gomock.Any()).DoAndReturn(func(reason models.TriggerReason) bool {
		triggered <- reason
		return true
	}).Times(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- trigger.Run(ctx) }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return signals != nil
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	ch := signals
	mu.Unlock()

	ch <- syscall.SIGHUP
	assert.Equal(t, models.TriggerManual, <-triggered)
	ch <- syscall.SIGUSR1
	assert.Equal(t, models.TriggerForeground, <-triggered)

	cancel()
	assert.NoError(t, <-done)
}

func TestReconnectTrigger_FiresOnceServerAnswers(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	probe := mock.NewMockConnectivityService(ctrl)
	scheduler := mock.NewMockSyncScheduler(ctrl)

	updates := make(chan models.SyncStatus, 1)
	updates <- models.SyncStatus{State: models.SyncError, Offline: true, LastError: "server unavailable"}
	engine.EXPECT().Subscribe().Return((<-chan models.SyncStatus)(updates), func() {})

	down := errors.New("connection refused")
	ctx, cancel := context.WithCancel(context.Background())
	gomock.InOrder(
		probe.EXPECT().Ping(gomock.Any()).Return(down),
		probe.EXPECT().Ping(gomock.Any()).Return(down),
		probe.EXPECT().Ping(gomock.Any()).Return(nil),
		scheduler.EXPECT().Trigger(models.TriggerReconnect).DoAndReturn(func(models.TriggerReason) bool {
			cancel()
			return true
		}),
	)

	trigger := NewReconnectTrigger(engine, probe, scheduler, time.Millisecond, 4*time.Millisecond, logger.Nop())
	assert.NoError(t, trigger.Run(ctx))
}

func TestReconnectTrigger_IgnoresOtherFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	probe := mock.NewMockConnectivityService(ctrl)
	scheduler := mock.NewMockSyncScheduler(ctrl)

	updates := make(chan models.SyncStatus, 3)
	updates <- models.SyncStatus{State: models.SyncError, LastError: "internal server error"}
	engine.EXPECT().Subscribe().Return((<-chan models.SyncStatus)(updates), func() {})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	trigger := NewReconnectTrigger(engine, probe, scheduler, time.Millisecond, time.Millisecond, logger.Nop())
	assert.NoError(t, trigger.Run(ctx))
}

func TestReconnectTrigger_StopsWhileWaiting(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	probe := mock.NewMockConnectivityService(ctrl)
	scheduler := mock.NewMockSyncScheduler(ctrl)

	updates := make(chan models.SyncStatus, 1)
	updates <- models.SyncStatus{State: models.SyncError, Offline: true}
	engine.EXPECT().Subscribe().Return((<-chan models.SyncStatus)(updates), func() {})
	probe.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused")).AnyTimes()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	trigger := NewReconnectTrigger(engine, probe, scheduler, time.Millisecond, 5*time.Millisecond, logger.Nop())
	assert.NoError(t, trigger.Run(ctx))
}
