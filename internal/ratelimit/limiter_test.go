package ratelimit

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fin-keeper/internal/mock"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestLimiter_FixedWindow(t *testing.T) {
	clock := newClock()
	l := NewLimiterWithNow(NewMemoryStore(), 2, time.Minute, clock.Now)
	ctx := context.Background()

	d := l.Allow(ctx, "user:1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	d = l.Allow(ctx, "user:1")
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	clock.Advance(20 * time.Second)
	d = l.Allow(ctx, "user:1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 40*time.Second, d.RetryAfter)

	// другой ключ считается отдельно
	assert.True(t, l.Allow(ctx, "user:2").Allowed)

	clock.Advance(40 * time.Second)
	assert.True(t, l.Allow(ctx, "user:1").Allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 0, time.Minute)
	for range 100 {
		require.True(t, l.Allow(context.Background(), "k").Allowed)
	}
}

func TestLimiter_FailsOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockCounterStore(ctrl)
	store.EXPECT().
		Increment(gomock.Any(), "ip:10.0.0.1", time.Minute, gomock.Any()).
		Return(int64(0), time.Time{}, errors.New("connection refused")).
		Times(3)

	l := NewLimiter(store, 1, time.Minute)
	for range 3 {
		d := l.Allow(context.Background(), "ip:10.0.0.1")
		assert.True(t, d.Allowed)
		assert.True(t, d.FailedOpen)
	}
}

func TestLimiter_ConcurrentCallersNeverExceedLimit(t *testing.T) {
	l := NewLimiter(NewMemoryStore(), 50, time.Hour)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow(context.Background(), "user:7").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestMemoryStore_Cleanup(t *testing.T) {
	clock := newClock()
	s := NewMemoryStore()
	ctx := context.Background()

	_, _, _ = s.Increment(ctx, "a", time.Minute, clock.Now())
	_, _, _ = s.Increment(ctx, "b", 2*time.Minute, clock.Now())
	require.Equal(t, 2, s.Len())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, s.Cleanup(clock.Now()))
	assert.Equal(t, 1, s.Len())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "user:42", UserKey(42))

	r := httptest.NewRequest("POST", "/api/user/login", nil)
	r.RemoteAddr = "192.0.2.7:51234"
	assert.Equal(t, "ip:192.0.2.7", IPKey(r))

	r.RemoteAddr = "192.0.2.8"
	assert.Equal(t, "ip:192.0.2.8", IPKey(r))
}

func TestRetryAfterSeconds(t *testing.T) {
	assert.Equal(t, "1", RetryAfterSeconds(Decision{RetryAfter: 0}))
	assert.Equal(t, "1", RetryAfterSeconds(Decision{RetryAfter: 300 * time.Millisecond}))
	assert.Equal(t, "41", RetryAfterSeconds(Decision{RetryAfter: 40*time.Second + time.Millisecond}))
	assert.Equal(t, "60", RetryAfterSeconds(Decision{RetryAfter: time.Minute}))
}
