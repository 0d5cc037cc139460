package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/models"
)

const defaultPushChunk = 500

// maxPullPages stops a pull that keeps reporting hasMore without moving the
// cursor.
const maxPullPages = 10_000

var errCursorStalled = errors.New("pull cursor did not advance")

type clientSyncService struct {
	records store.LocalRecordRepository
	tracker ChangeTracker
	adapter adapter.ServerAdapter
	tables  []models.Table

	parallelism int
	chunk       int
	now         func() time.Time

	running  atomic.Bool
	rejected atomic.Int64

	mu          sync.RWMutex
	status      models.SyncStatus
	subscribers map[int]chan models.SyncStatus
	nextSubID   int

	logger *logger.Logger
}

// SyncEngineConfig tunes [NewClientSyncService].
type SyncEngineConfig struct {
	Tables      []models.Table
	Parallelism int
	MaxPushRows int
}

func NewClientSyncService(records store.LocalRecordRepository, tracker ChangeTracker, serverAdapter adapter.ServerAdapter, cfg SyncEngineConfig, logger *logger.Logger) SyncEngine {
	if len(cfg.Tables) == 0 {
		cfg.Tables = models.SyncTables
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	if cfg.MaxPushRows <= 0 {
		cfg.MaxPushRows = defaultPushChunk
	}

	return &clientSyncService{
		records:     records,
		tracker:     tracker,
		adapter:     serverAdapter,
		tables:      cfg.Tables,
		parallelism: cfg.Parallelism,
		chunk:       cfg.MaxPushRows,
		now:         time.Now,
		status:      models.SyncStatus{State: models.SyncIdle},
		subscribers: make(map[int]chan models.SyncStatus),
		logger:      logger,
	}
}

// Pull stores each page together with its cursor, so a crash after any page
// resumes from the last stored one.
func (s *clientSyncService) Pull(ctx context.Context, userID int64, table models.Table) error {
	cursor, err := s.records.Cursor(ctx, userID, table)
	if err != nil {
		return fmt.Errorf("read %s cursor: %w", table, err)
	}

	for range maxPullPages {
		page, err := s.adapter.Pull(ctx, models.PullRequest{Table: table, Cursor: cursor})
		if err != nil {
			return fmt.Errorf("pull %s: %w", table, err)
		}

		if err = s.tracker.ApplyServer(ctx, userID, table, page.Rows, page.Cursor); err != nil {
			return fmt.Errorf("apply %s page: %w", table, err)
		}

		if !page.HasMore {
			return nil
		}
		if page.Cursor <= cursor {
			return fmt.Errorf("%w: %s stuck at %d", errCursorStalled, table, cursor)
		}
		cursor = page.Cursor
	}

	return fmt.Errorf("%w: %s exceeded %d pages", errCursorStalled, table, maxPullPages)
}

// Push walks pending rows by id. Rows the server rejects stay pending and are
// not sent again in the same call.
func (s *clientSyncService) Push(ctx context.Context, userID int64, table models.Table) error {
	log := logger.FromContext(ctx)

	afterID := ""
	for {
		pending, err := s.records.Pending(ctx, userID, table, afterID, s.chunk)
		if err != nil {
			return fmt.Errorf("read pending %s: %w", table, err)
		}
		if len(pending) == 0 {
			return nil
		}

		rows := make([]models.Record, len(pending))
		for i, local := range pending {
			rows[i] = local.Record
			rows[i].Sequence = 0
		}

		resp, err := s.adapter.Push(ctx, models.PushRequest{Table: table, Rows: rows})
		if err != nil {
			return fmt.Errorf("push %s: %w", table, err)
		}

		if err = s.tracker.MarkSynced(ctx, userID, table, rows, resp.Results); err != nil {
			return fmt.Errorf("apply %s push results: %w", table, err)
		}

		for _, result := range resp.Results {
			if result.Rejected() {
				s.rejected.Add(1)
				log.Warn().
					Str("func", "*clientSyncService.Push").
					Str("table", table.String()).
					Str("id", result.ID).
					Str("reason", result.Error).
					Msg("row rejected by server")
			}
		}

		if len(pending) < s.chunk {
			return nil
		}
		afterID = pending[len(pending)-1].ID
	}
}

func (s *clientSyncService) Sync(ctx context.Context, userID int64) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSyncInProgress
	}
	defer s.running.Store(false)

	log := s.logger.With().Str("func", "*clientSyncService.Sync").Int64("user_id", userID).Logger()
	ctx = log.WithContext(ctx)

	s.rejected.Store(0)
	s.setStatus(func(st *models.SyncStatus) {
		st.State = models.SyncSyncing
		st.LastError = ""
	})

	cycleCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	errs := make([]error, len(s.tables))
	g := new(errgroup.Group)
	g.SetLimit(s.parallelism)

	for i, table := range s.tables {
		g.Go(func() error {
			if err := cycleCtx.Err(); err != nil {
				errs[i] = context.Cause(cycleCtx)
				return nil
			}

			err := s.Pull(cycleCtx, userID, table)
			if err == nil {
				err = s.Push(cycleCtx, userID, table)
			}
			if err != nil {
				errs[i] = err
				// с протухшим токеном остальные таблицы не синхронизировать
				if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrNoToken) {
					cancel(err)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	err := errors.Join(errs...)
	s.finish(ctx, userID, err)
	if err != nil {
		log.Err(err).Msg("sync cycle failed")
		return err
	}

	log.Debug().Int64("rejected", s.rejected.Load()).Msg("sync cycle finished")
	return nil
}

func (s *clientSyncService) finish(ctx context.Context, userID int64, err error) {
	pending, countErr := s.records.CountPending(ctx, userID)
	now := models.TruncateTime(s.now())

	s.setStatus(func(st *models.SyncStatus) {
		if countErr == nil {
			st.Pending = pending
		}
		st.Rejected = int(s.rejected.Load())

		if err == nil {
			st.State = models.SyncIdle
			st.LastError = ""
			st.Offline = false
			st.LastSyncedAt = &now
			st.RetryAfter = nil
			return
		}

		st.LastError = err.Error()
		switch {
		case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrNoToken):
			st.State = models.SyncUnauthenticated
		default:
			st.State = models.SyncError
		}
		if d, ok := adapter.RetryAfter(err); ok {
			at := now.Add(d)
			st.RetryAfter = &at
		}
		st.Offline = st.State == models.SyncError && adapter.IsUnreachable(err)
	})
}

func (s *clientSyncService) RefreshPending(ctx context.Context, userID int64) error {
	pending, err := s.records.CountPending(ctx, userID)
	if err != nil {
		return fmt.Errorf("count pending rows: %w", err)
	}

	s.setStatus(func(st *models.SyncStatus) {
		st.Pending = pending
	})
	return nil
}

func (s *clientSyncService) Status() models.SyncStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *clientSyncService) Subscribe() (<-chan models.SyncStatus, func()) {
	ch := make(chan models.SyncStatus, 1)

	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = ch
	ch <- s.status
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

func (s *clientSyncService) setStatus(update func(*models.SyncStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	update(&s.status)
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- s.status
	}
}
