package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterRefills(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
}

func TestRedisLimiterWindow(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedisLimiter(rdb, 3, time.Minute)
	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "ratelimit:login:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := l.Allow(ctx, "ratelimit:login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL("ratelimit:login:1.2.3.4"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(ctx, "ratelimit:login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok)
}

// dropExpire fails any pipeline that carries an EXPIRE, as a connection
// reset mid-request would.
type dropExpire struct{}

func (dropExpire) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return next(ctx, network, addr)
	}
}

func (dropExpire) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return next
}

func (dropExpire) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			if cmd.Name() == "expire" {
				return errors.New("connection reset")
			}
		}
		return next(ctx, cmds)
	}
}

func TestRedisLimiterNeverLeavesCounterWithoutTTL(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	key := "ratelimit:login:5.6.7.8"

	broken := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = broken.Close() })
	broken.AddHook(dropExpire{})

	_, err := NewRedisLimiter(broken, 1, time.Minute).Allow(ctx, key)
	require.Error(t, err)
	assert.False(t, mr.Exists(key), "counter must not be written without its expiry")

	// A counter already stuck without a TTL is re-armed by the next call.
	_, err = mr.Incr(key, 5)
	require.NoError(t, err)
	require.Zero(t, mr.TTL(key))

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	l := NewRedisLimiter(rdb, 1, time.Minute)

	ok, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	ok, err = l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func TestRateLimitMiddleware(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.POST("/login", RateLimit(NewMemoryLimiter(1, time.Minute), "login", m, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.POST("/open", RateLimit(failingLimiter{}, "open", m, zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := perform(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = perform(r, http.MethodPost, "/login", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"code":"RATE_LIMIT_EXCEEDED","message":"Too many requests. Please try again later"}`, w.Body.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited.WithLabelValues("login")))

	w = perform(r, http.MethodPost, "/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
