package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/app"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/internal/validators"
	"github.com/MKhiriev/go-fin-keeper/models"
)

var testRow = models.Record{
	Envelope: models.Envelope{
		ID:        "0192d7a4-8a51-7c3e-9f00-4d9a1b2c3d4e",
		Clock:     2,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	},
	Payload: json.RawMessage(`{"name":"car","targetAmount":"1000.00","currentAmount":"0","currency":"EUR"}`),
}

func TestPush(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.expectAuth()

	req := models.PushRequest{Table: models.TableGoals, Rows: []models.Record{testRow}}
	stored := testRow
	stored.Sequence = 41
	deps.sync.EXPECT().Push(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ any, _ int64, got models.PushRequest) (models.PushResponse, error) {
			assert.Equal(t, models.TableGoals, got.Table)
			require.Len(t, got.Rows, 1)
			assert.Equal(t, testRow.ID, got.Rows[0].ID)
			return models.PushResponse{Results: []models.PushResult{{ID: testRow.ID, Winner: models.WinnerClient, Row: &stored}}}, nil
		})

	rec := doJSON(t, router, http.MethodPost, "/api/sync/push", req, testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[models.PushResponse](t, rec)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.WinnerClient, resp.Results[0].Winner)
	assert.Equal(t, int64(41), resp.Results[0].Row.Sequence)
}

func TestPush_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "unknown table",
			err:        fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrUnknownTable),
			wantStatus: http.StatusNotFound,
			wantMsg:    app.MsgUnknownTable,
		},
		{
			name:       "too many rows",
			err:        fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, validators.ErrTooManyRows),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid data provided: too many rows in one batch",
		},
		{
			name:       "storage",
			err:        fmt.Errorf("push: serialization failure"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, deps := newTestRouter(t)
			deps.expectAuth()
			deps.sync.EXPECT().Push(gomock.Any(), testUserID, gomock.Any()).Return(models.PushResponse{}, tt.err)

			rec := doJSON(t, router, http.MethodPost, "/api/sync/push", models.PushRequest{Table: "budgets"}, testToken)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decodeBody[utils.ErrorResponse](t, rec).Error)
		})
	}
}

func TestSyncRoutes_RequireToken(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.auth.EXPECT().ParseToken(gomock.Any(), "expired").Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid)

	for _, path := range []string{"/api/sync/push", "/api/sync/pull", "/api/sync/stats"} {
		rec := doJSON(t, router, http.MethodPost, path, "{}", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, app.MsgTokenIsExpiredOrInvalid, decodeBody[utils.ErrorResponse](t, rec).Error)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/sync/pull", "{}", "expired")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPull(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.expectAuth()

	deps.sync.EXPECT().Pull(gomock.Any(), testUserID, models.PullRequest{Table: models.TableGoals, Cursor: 40}).
		Return(models.PullResponse{Rows: []models.Record{testRow}, Cursor: 41, HasMore: true}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/sync/pull", models.PullRequest{Table: models.TableGoals, Cursor: 40}, testToken)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[models.PullResponse](t, rec)
	assert.Equal(t, int64(41), resp.Cursor)
	assert.True(t, resp.HasMore)
	require.Len(t, resp.Rows, 1)
	assert.JSONEq(t, string(testRow.Payload), string(resp.Rows[0].Payload))
}

func TestStats_EmptyBodyMeansAllTables(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.expectAuth()

	deps.sync.EXPECT().Stats(gomock.Any(), testUserID, models.StatsRequest{}).
		Return(models.StatsResponse{Totals: models.RecordCounts{Total: 3, Active: 2, Deleted: 1}}, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/sync/stats", nil, testToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decodeBody[models.StatsResponse](t, rec).Totals.Total)
}

func TestStats_BrokenJSON(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.expectAuth()

	rec := doJSON(t, router, http.MethodPost, "/api/sync/stats", `{"table":`, testToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVersion(t *testing.T) {
	router, deps := newTestRouter(t)
	deps.appInfo.EXPECT().GetBuildInfo(gomock.Any()).Return(models.AppBuildInfo{Version: "1.4.0", Commit: "abc"})

	rec := doJSON(t, router, http.MethodGet, "/api/version", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1.4.0", decodeBody[models.AppBuildInfo](t, rec).Version)
}

func TestCheckHTTPMethod(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/sync/push", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, []string{http.MethodPost}, rec.Header().Values("Allow"))

	rec = doJSON(t, router, http.MethodGet, "/api/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
