package client

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/mock"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/models"
)

type appMocks struct {
	auth         *mock.MockClientAuthService
	engine       *mock.MockSyncEngine
	scheduler    *mock.MockSyncScheduler
	connectivity *mock.MockConnectivityService
}

func newTestApp(t *testing.T) (*App, appMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := appMocks{
		auth:         mock.NewMockClientAuthService(ctrl),
		engine:       mock.NewMockSyncEngine(ctrl),
		scheduler:    mock.NewMockSyncScheduler(ctrl),
		connectivity: mock.NewMockConnectivityService(ctrl),
	}

	cfg := &config.ClientConfig{Credentials: config.ClientCredentials{Login: "alice", Password: "correct-horse"}}
	app, err := NewApp(&service.ClientServices{
		AuthService:  m.auth,
		SyncService:  m.engine,
		SyncJob:      m.scheduler,
		Connectivity: m.connectivity,
	}, cfg, logger.Nop())
	require.NoError(t, err)
	app.loginRetry = time.Millisecond
	app.reconnectRetry = time.Millisecond

	return app, m
}

func TestNewApp_RequiresCredentials(t *testing.T) {
	_, err := NewApp(&service.ClientServices{}, &config.ClientConfig{}, logger.Nop())
	assert.ErrorIs(t, err, errNoCredentials)
}

func TestLogin_RetriesWhileServerIsDown(t *testing.T) {
	app, m := newTestApp(t)

	gomock.InOrder(
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(int64(0), fmt.Errorf("login on server: %w", adapter.ErrServerUnavailable)),
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(int64(0), fmt.Errorf("login on server: %w", adapter.ErrInternalServerError)),
		m.auth.EXPECT().Login(gomock.Any(), models.Credentials{Login: "alice", Password: "correct-horse"}).Return(int64(3), nil),
	)

	userID, err := app.login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), userID)
}

func TestLogin_WrongCredentialsAreFatal(t *testing.T) {
	app, m := newTestApp(t)
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(int64(0), service.ErrWrongCredentials)

	_, err := app.login(context.Background())
	assert.ErrorIs(t, err, service.ErrWrongCredentials)
}

func TestLogin_StopsOnCancel(t *testing.T) {
	app, m := newTestApp(t)
	app.loginRetry = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, models.Credentials) (int64, error) {
		cancel()
		return 0, adapter.ErrServerUnavailable
	})

	_, err := app.login(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandleStatus_SignsInAgain(t *testing.T) {
	app, m := newTestApp(t)

	gomock.InOrder(
		m.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(int64(3), nil),
		m.scheduler.EXPECT().Trigger(models.TriggerManual).Return(true),
	)

	err := app.handleStatus(context.Background(), models.SyncStatus{State: models.SyncUnauthenticated, LastError: "client unauthorized"})
	assert.NoError(t, err)
}

func TestHandleStatus_IdleDoesNothing(t *testing.T) {
	app, _ := newTestApp(t)
	assert.NoError(t, app.handleStatus(context.Background(), models.SyncStatus{State: models.SyncIdle, Pending: 2}))
}

func TestWatchStatus_Unsubscribes(t *testing.T) {
	app, m := newTestApp(t)

	updates := make(chan models.SyncStatus, 1)
	updates <- models.SyncStatus{State: models.SyncSyncing}
	unsubscribed := make(chan struct{})
	m.engine.EXPECT().Subscribe().Return((<-chan models.SyncStatus)(updates), func() { close(unsubscribed) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.NoError(t, app.watchStatus(ctx))
	<-unsubscribed
}

func TestReconnect_ServerBackTriggersOnce(t *testing.T) {
	app, m := newTestApp(t)

	updates := make(chan models.SyncStatus, 1)
	updates <- models.SyncStatus{State: models.SyncError, Offline: true, LastError: "server unavailable"}
	m.engine.EXPECT().Subscribe().Return((<-chan models.SyncStatus)(updates), func() {})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	down := fmt.Errorf("ping server: %w", adapter.ErrServerUnavailable)
	gomock.InOrder(
		m.connectivity.EXPECT().Ping(gomock.Any()).Return(down),
		m.connectivity.EXPECT().Ping(gomock.Any()).Return(down),
		m.connectivity.EXPECT().Ping(gomock.Any()).Return(nil),
		m.scheduler.EXPECT().Trigger(models.TriggerReconnect).Return(true).Times(1),
	)

	// после триггера воркер ждёт следующего обрыва до конца контекста
	assert.NoError(t, app.reconnectTrigger().Run(ctx))
}
