package http

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/ratelimit"
	"github.com/MKhiriev/go-fin-keeper/models"
)

// The device adapter against the real router: token handling, push signing
// and the 429 mapping have to agree on both ends.
func TestAdapterRoundTrip(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryStore(), 3, time.Minute)
	router, deps := newTestRouter(t, withLimiter(limiter), withHashKey("shared-secret"))

	srv := httptest.NewServer(router)
	defer srv.Close()

	client, err := adapter.NewHTTPServerAdapter(config.ClientAdapter{
		ServerAddress:  srv.URL,
		RequestTimeout: 5 * time.Second,
	}, "shared-secret", logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	user := models.User{UserID: testUserID, Login: "alice"}
	deps.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(user, nil)
	deps.auth.EXPECT().CreateToken(gomock.Any(), user).Return(models.Token{SignedString: testToken, UserID: testUserID}, nil)
	deps.expectAuth()

	auth, err := client.Login(ctx, models.Credentials{Login: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, testUserID, auth.UserID)
	assert.Equal(t, testToken, client.Token())

	deps.sync.EXPECT().Push(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, req models.PushRequest) (models.PushResponse, error) {
			row := req.Rows[0]
			return models.PushResponse{Results: []models.PushResult{{ID: row.ID, Winner: models.WinnerServer, Row: &row}}}, nil
		})

	pushed, err := client.Push(ctx, models.PushRequest{Table: models.TableGoals, Rows: []models.Record{testRow}})
	require.NoError(t, err)
	require.Len(t, pushed.Results, 1)
	assert.Equal(t, models.WinnerServer, pushed.Results[0].Winner)

	deps.sync.EXPECT().Pull(gomock.Any(), testUserID, gomock.Any()).Return(models.PullResponse{Cursor: 0}, nil)
	_, err = client.Pull(ctx, models.PullRequest{Table: models.TableGoals})
	require.NoError(t, err)

	// the budget of 3 is spent by push, pull and this call
	deps.sync.EXPECT().Stats(gomock.Any(), testUserID, gomock.Any()).Return(models.StatsResponse{}, nil)
	_, err = client.Stats(ctx, models.StatsRequest{})
	require.NoError(t, err)

	_, err = client.Stats(ctx, models.StatsRequest{})
	var limited *adapter.RateLimitedError
	require.True(t, errors.As(err, &limited), "got %v", err)
	assert.InDelta(t, time.Minute.Seconds(), limited.RetryAfter.Seconds(), 2)
	assert.True(t, adapter.IsTransient(err))
}
