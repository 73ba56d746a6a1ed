package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/academy-backoffice/internal/config"
	"github.com/stemsi/academy-backoffice/internal/metrics"
	"github.com/stemsi/academy-backoffice/internal/response"
)

// Limiter decides whether one more request under key is allowed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ─── In-process token bucket ────────────────────────────────────────────

// MemoryLimiter implements a per-key token bucket held in process memory.
type MemoryLimiter struct {
	mu          sync.Mutex
	visitors    map[string]*visitor
	rate        int           // Tokens per interval
	interval    time.Duration // Refill interval
	now         func() time.Time
	lastCleanup time.Time
}

type visitor struct {
	tokens   int
	lastSeen time.Time
}

// NewMemoryLimiter creates a MemoryLimiter (e.g., 10 requests per minute).
func NewMemoryLimiter(rate int, interval time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		interval: interval,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastCleanup) > l.interval {
		l.cleanupLocked(now)
		l.lastCleanup = now
	}

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{tokens: l.rate, lastSeen: now}
		l.visitors[key] = v
	}

	// Refill tokens based on elapsed time.
	refill := int(now.Sub(v.lastSeen)/l.interval) * l.rate
	if refill > 0 {
		v.tokens += refill
		if v.tokens > l.rate {
			v.tokens = l.rate
		}
		v.lastSeen = now
	}

	if v.tokens <= 0 {
		return false, nil
	}
	v.tokens--
	return true, nil
}

func (l *MemoryLimiter) cleanupLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > 3*l.interval {
			delete(l.visitors, key)
		}
	}
}

// ─── Redis fixed window ─────────────────────────────────────────────────

// RedisLimiter counts requests per key in fixed windows shared by every
// instance talking to the same Redis.
type RedisLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter creates a RedisLimiter allowing limit requests per window.
func NewRedisLimiter(rdb *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, limit: int64(limit), window: window}
}

// Allow increments the counter and arms its expiry in one MULTI block.
// EXPIRE NX runs on every call so a counter that somehow lost its TTL
// still ends with the next window.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	var incr *redis.IntCmd
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}
	return incr.Val() <= l.limit, nil
}

// ─── Middleware ─────────────────────────────────────────────────────────

// RateLimit rejects requests from a client IP once limiter refuses them.
// Limiter failures let the request through.
func RateLimit(limiter Limiter, scope string, m *metrics.Metrics, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.CacheKey.RateLimitKey(scope, c.ClientIP())

		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			log.Warn().Err(err).Str("scope", scope).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !allowed {
			if m != nil {
				m.RateLimited.WithLabelValues(scope).Inc()
			}
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
