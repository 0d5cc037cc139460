package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/models"
)

var testNow = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func goalPayload(name string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"name":%q,"targetAmount":"1000.00","currentAmount":"10.00","currency":"EUR"}`, name))
}

func goalRow(id string, clock int64, name string) models.Record {
	return models.Record{
		Envelope: models.Envelope{ID: id, Clock: clock, CreatedAt: testNow, UpdatedAt: testNow},
		Payload:  goalPayload(name),
	}
}

type storedRow struct {
	userID int64
	record models.Record
}

// memRecordRepository is an in-memory authoritative store with the same
// batch semantics as the Postgres one: one lock per call, a per-table
// sequence, foreign ids rejected per row.
type memRecordRepository struct {
	mu        sync.Mutex
	rows      map[models.Table]map[string]storedRow
	sequences map[models.Table]int64
}

func newMemRecordRepository() *memRecordRepository {
	return &memRecordRepository{
		rows:      make(map[models.Table]map[string]storedRow),
		sequences: make(map[models.Table]int64),
	}
}

func (m *memRecordRepository) ApplyPush(_ context.Context, userID int64, table models.Table, rows []models.Record, decide store.PushDecider) ([]models.PushResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rows[table] == nil {
		m.rows[table] = make(map[string]storedRow)
	}

	results := make([]models.PushResult, 0, len(rows))
	for _, pushed := range rows {
		pushed = pushed.Normalize()
		pushed.Sequence = 0

		var stored *models.Record
		if existing, ok := m.rows[table][pushed.ID]; ok {
			if existing.userID != userID {
				results = append(results, models.PushResult{ID: pushed.ID, Error: store.ErrForeignRecord.Error()})
				continue
			}
			r := existing.record
			stored = &r
		}

		decision := decide(stored, pushed)
		if !decision.Write {
			results = append(results, models.PushResult{ID: pushed.ID, Winner: decision.Winner, Row: stored})
			continue
		}

		m.sequences[table]++
		pushed.Sequence = m.sequences[table]
		m.rows[table][pushed.ID] = storedRow{userID: userID, record: pushed}

		written := pushed
		results = append(results, models.PushResult{ID: pushed.ID, Winner: decision.Winner, Row: &written})
	}
	return results, nil
}

func (m *memRecordRepository) Pull(_ context.Context, userID int64, table models.Table, cursor int64, limit int) ([]models.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var page []models.Record
	for _, row := range m.rows[table] {
		if row.userID == userID && row.record.Sequence > cursor {
			page = append(page, row.record)
		}
	}
	sort.Slice(page, func(i, j int) bool { return page[i].Sequence < page[j].Sequence })

	if len(page) > limit {
		return page[:limit], true, nil
	}
	return page, false, nil
}

func (m *memRecordRepository) Stats(_ context.Context, userID int64, table models.Table) (models.TableStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := models.TableStats{Table: table}
	for _, row := range m.rows[table] {
		if row.userID != userID {
			continue
		}
		stats.Counts.Total++
		if !row.record.IsDeleted() {
			stats.Counts.Active++
		}
		stats.LastSequence = max(stats.LastSequence, row.record.Sequence)
	}
	stats.Counts.Deleted = stats.Counts.Total - stats.Counts.Active
	return stats, nil
}

func (m *memRecordRepository) get(table models.Table, id string) (models.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[table][id]
	return row.record, ok
}

// loopbackAdapter serves adapter calls straight from a server SyncService.
type loopbackAdapter struct {
	server SyncService
	userID int64

	mu    sync.Mutex
	token string
	err   error
	calls map[string]int
}

func newLoopbackAdapter(server SyncService, userID int64) *loopbackAdapter {
	return &loopbackAdapter{server: server, userID: userID, token: "tok", calls: make(map[string]int)}
}

func (l *loopbackAdapter) count(method string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[method]
}

func (l *loopbackAdapter) hit(method string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls[method]++
	return l.err
}

func (l *loopbackAdapter) failWith(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
}

func (l *loopbackAdapter) SetToken(token string) { l.token = token }
func (l *loopbackAdapter) Token() string         { return l.token }

func (l *loopbackAdapter) Register(context.Context, models.Credentials) (models.AuthResponse, error) {
	return models.AuthResponse{Token: l.token, UserID: l.userID}, nil
}

func (l *loopbackAdapter) Login(context.Context, models.Credentials) (models.AuthResponse, error) {
	return models.AuthResponse{Token: l.token, UserID: l.userID}, nil
}

func (l *loopbackAdapter) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	if err := l.hit("push"); err != nil {
		return models.PushResponse{}, err
	}
	return l.server.Push(ctx, l.userID, req)
}

func (l *loopbackAdapter) Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	if err := l.hit("pull"); err != nil {
		return models.PullResponse{}, err
	}
	return l.server.Pull(ctx, l.userID, req)
}

func (l *loopbackAdapter) Stats(ctx context.Context, req models.StatsRequest) (models.StatsResponse, error) {
	if err := l.hit("stats"); err != nil {
		return models.StatsResponse{}, err
	}
	return l.server.Stats(ctx, l.userID, req)
}

func (l *loopbackAdapter) Version(context.Context) (models.AppBuildInfo, error) {
	if err := l.hit("version"); err != nil {
		return models.AppBuildInfo{}, err
	}
	return models.AppBuildInfo{Version: "test"}, nil
}
