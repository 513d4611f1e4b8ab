package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/pkg/response"
)

// KeyFunc builds the redis counter key of a request.
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath limits each route separately per client.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "rl:path:" + path + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID must run after Auth; anonymous requests fall back to the client ip.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + uid
	}
}

// INCR then PEXPIRE on the first hit of a window, atomically.
var incrExpireScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// Limiter builds fixed-window rate limits backed by redis.
// A nil client or a disabled limiter turns every limit into a pass-through.
type Limiter struct {
	rdb     *redis.Client
	enabled bool
	logger  logrus.FieldLogger
}

func NewLimiter(rdb *redis.Client, enabled bool, logger logrus.FieldLogger) *Limiter {
	return &Limiter{rdb: rdb, enabled: enabled, logger: logger}
}

// Limit allows max requests per window for each key. Redis failures fail open.
func (l *Limiter) Limit(max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if l == nil || !l.enabled || l.rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		key := keyFn(c)
		res, err := incrExpireScript.Run(c.Request.Context(), l.rdb, []string{key}, window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			l.logger.WithError(err).WithField("key", key).Warn("rate limit check failed")
			c.Next()
			return
		}
		count, ttlMs := int(res[0]), res[1]
		resetSec := 0
		if ttlMs > 0 {
			resetSec = int((time.Duration(ttlMs)*time.Millisecond + time.Second - 1) / time.Second)
		}

		remaining := max - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
