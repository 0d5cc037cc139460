// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/utils"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// newTestAdapter создаёт httpServerAdapter, направленный на тестовый сервер
func newTestAdapter(t *testing.T, serverURL, hashKey string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{ServerAddress: serverURL, RequestTimeout: 5 * time.Second}, hashKey, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{ServerAddress: "  "}, "", logger.Nop())
	assert.Error(t, err)
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/login", r.URL.Path)

		var creds models.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "alice", creds.Login)

		writeJSON(w, http.StatusOK, models.AuthResponse{Token: "tok-1", UserID: 7})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Login(context.Background(), models.Credentials{Login: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "tok-1", a.Token())
}

func TestRegister_TokenFromHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/user/register", r.URL.Path)
		w.Header().Set("Authorization", "Bearer header-token")
		writeJSON(w, http.StatusOK, models.AuthResponse{UserID: 1})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Register(context.Background(), models.Credentials{Login: "alice", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "header-token", a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, utils.ErrorResponse{Error: "login already exists"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Register(context.Background(), models.Credentials{Login: "alice"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "login already exists")
	assert.Empty(t, a.Token())
}

func TestPush_SendsBearerAndHash(t *testing.T) {
	hasher := utils.NewHasher("secret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/push", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		rows, err := json.Marshal(req.Rows)
		require.NoError(t, err)
		// подпись считается по тем же строкам, что пришли в теле
		assert.True(t, hasher.Verify(rows, req.Hash))

		writeJSON(w, http.StatusOK, models.PushResponse{Results: []models.PushResult{{ID: req.Rows[0].ID, Winner: models.WinnerClient}}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "secret")
	a.SetToken("tok")

	resp, err := a.Push(context.Background(), models.PushRequest{
		Table: models.TableGoals,
		Rows:  []models.Record{{Envelope: models.Envelope{ID: "g1", Clock: 1}, Payload: json.RawMessage(`{"name":"car"}`)}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.WinnerClient, resp.Results[0].Winner)
}

func TestPull_DecodesPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.PullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(5), req.Cursor)

		writeJSON(w, http.StatusOK, models.PullResponse{
			Rows:    []models.Record{{Envelope: models.Envelope{ID: "a", Clock: 2}, Sequence: 6}},
			Cursor:  6,
			HasMore: true,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	a.SetToken("tok")

	page, err := a.Pull(context.Background(), models.PullRequest{Table: models.TableGoals, Cursor: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(6), page.Cursor)
	assert.True(t, page.HasMore)
	require.Len(t, page.Rows, 1)
}

func TestSyncCalls_RequireToken(t *testing.T) {
	a := newTestAdapter(t, "http://127.0.0.1:1", "")

	_, err := a.Stats(context.Background(), models.StatsRequest{})
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestSyncCalls_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		header  string
		check   func(t *testing.T, err error)
		transit bool
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) },
		},
		{
			name:   "forbidden is unauthorized",
			status: http.StatusForbidden,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrUnauthorized) },
		},
		{
			name:   "unknown table",
			status: http.StatusNotFound,
			check:  func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrNotFound) },
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			header: "12",
			check: func(t *testing.T, err error) {
				d, ok := RetryAfter(err)
				assert.True(t, ok)
				assert.Equal(t, 12*time.Second, d)
			},
			transit: true,
		},
		{
			name:    "bad gateway",
			status:  http.StatusBadGateway,
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrServerUnavailable) },
			transit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.header != "" {
					w.Header().Set("Retry-After", tt.header)
				}
				writeJSON(w, tt.status, utils.ErrorResponse{Error: "nope"})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "")
			a.SetToken("tok")

			_, err := a.Stats(context.Background(), models.StatsRequest{})
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, tt.transit, IsTransient(err))
		})
	}
}

func TestIsTransient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url, "")
	a.SetToken("tok")

	_, err := a.Pull(context.Background(), models.PullRequest{Table: models.TableGoals})
	require.Error(t, err)
	assert.True(t, IsTransient(err))
	assert.False(t, IsTransient(errors.New("boom")))
	assert.False(t, IsTransient(nil))
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Duration(0), parseRetryAfter("", now))
	assert.Equal(t, 30*time.Second, parseRetryAfter("30", now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-3", now))
	assert.Equal(t, 90*time.Second, parseRetryAfter(now.Add(90*time.Second).Format(http.TimeFormat), now))
	assert.Equal(t, time.Duration(0), parseRetryAfter("garbage", now))
}

func TestVersion_WithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/version", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, models.AppBuildInfo{Version: "1.4.0", Commit: "abc"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	info, err := a.Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", info.Version)
}

func TestVersion_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url, "")
	_, err := a.Version(context.Background())

	assert.ErrorIs(t, err, ErrServerUnavailable)
	assert.True(t, IsTransient(err))
}

func TestIsUnreachable(t *testing.T) {
	assert.True(t, IsUnreachable(fmt.Errorf("%w: dial tcp", ErrServerUnavailable)))
	assert.True(t, IsUnreachable(context.DeadlineExceeded))
	assert.False(t, IsUnreachable(fmt.Errorf("%w: boom", ErrInternalServerError)))
	assert.False(t, IsUnreachable(&RateLimitedError{RetryAfter: time.Second}))
	assert.False(t, IsUnreachable(nil))
}
