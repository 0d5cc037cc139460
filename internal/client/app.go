package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/workers"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const (
	minLoginRetry = 2 * time.Second
	maxLoginRetry = time.Minute

	minReconnectRetry = 2 * time.Second
	maxReconnectRetry = 30 * time.Second
)

var errNoCredentials = errors.New("client login and password are required")

type App struct {
	services       *service.ClientServices
	credentials    models.Credentials
	loginRetry     time.Duration
	reconnectRetry time.Duration

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if cfg.Credentials.Login == "" || cfg.Credentials.Password == "" {
		return nil, errNoCredentials
	}

	return &App{
		services: services,
		credentials: models.Credentials{
			Login:    cfg.Credentials.Login,
			Password: cfg.Credentials.Password,
		},
		loginRetry:     minLoginRetry,
		reconnectRetry: minReconnectRetry,
		logger:         logger,
	}, nil
}

// Run signs in, then runs the scheduler until ctx is cancelled. SIGHUP asks
// for a manual sync, SIGUSR1 for a foreground one. A reconnect sync follows
// every outage as soon as the server answers again.
func (a *App) Run(ctx context.Context) error {
	userID, err := a.login(ctx)
	if err != nil {
		return err
	}
	a.logger.Info().Int64("user_id", userID).Msg("signed in, starting sync")

	return workers.NewWorkers(
		workers.NewSyncJob(a.services.SyncJob, userID),
		workers.NewSignalTrigger(a.services.SyncJob, map[os.Signal]models.TriggerReason{
			syscall.SIGHUP:  models.TriggerManual,
			syscall.SIGUSR1: models.TriggerForeground,
		}, a.logger),
		a.reconnectTrigger(),
		workerFunc(a.watchStatus),
	).Run(ctx)
}

func (a *App) reconnectTrigger() *workers.ReconnectTrigger {
	return workers.NewReconnectTrigger(
		a.services.SyncService,
		a.services.Connectivity,
		a.services.SyncJob,
		a.reconnectRetry,
		maxReconnectRetry,
		a.logger,
	)
}

// login retries while the server is unreachable. Wrong credentials are
// fatal.
func (a *App) login(ctx context.Context) (int64, error) {
	var userID int64
	backoff := retry.WithCappedDuration(maxLoginRetry, retry.NewExponential(a.loginRetry))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		id, err := a.services.AuthService.Login(ctx, a.credentials)
		if err == nil {
			userID = id
			return nil
		}
		if errors.Is(err, service.ErrWrongCredentials) || errors.Is(err, service.ErrInvalidDataProvided) {
			return fmt.Errorf("login as %q: %w", a.credentials.Login, err)
		}

		a.logger.Warn().Err(err).Msg("server unavailable, retrying login")
		return retry.RetryableError(err)
	})
	if err != nil {
		return 0, err
	}

	return userID, nil
}

// watchStatus logs every status change and signs in again once the server
// rejects the token.
func (a *App) watchStatus(ctx context.Context) error {
	updates, unsubscribe := a.services.SyncService.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case status := <-updates:
			if err := a.handleStatus(ctx, status); err != nil {
				return err
			}
		}
	}
}

func (a *App) handleStatus(ctx context.Context, status models.SyncStatus) error {
	event := a.logger.Info()
	if status.State == models.SyncError || status.State == models.SyncUnauthenticated {
		event = a.logger.Warn()
	}
	event.
		Str("state", string(status.State)).
		Int64("pending", status.Pending).
		Int("rejected", status.Rejected).
		Str("last_error", status.LastError).
		Msg("sync status")

	if status.State != models.SyncUnauthenticated {
		return nil
	}

	if _, err := a.login(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	a.services.SyncJob.Trigger(models.TriggerManual)
	return nil
}

type workerFunc func(ctx context.Context) error

func (f workerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
