package handlers

import (
	"context"
	"expvar"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/internal/domain/repository"
	"github.com/oksasatya/mood-diary/pkg/helpers"
)

var (
	cacheHits          = expvar.NewInt("cache_hits")
	cacheMisses        = expvar.NewInt("cache_misses")
	cacheInvalidations = expvar.NewInt("cache_invalidations")
	cacheErrors        = expvar.NewInt("cache_errors")
)

func profileKey(userID string) string { return "profile:" + userID }

func moodKey(userID, date string) string { return "mood:" + userID + ":" + date }

func moodListPattern(userID string) string { return "mood:list:" + userID + ":*" }

func moodListKey(userID string, f repository.MoodFilter) string {
	key := "mood:list:" + userID + ":"
	if f.StartDate != nil {
		key += f.StartDate.Format("2006-01-02")
	}
	key += ":"
	if f.EndDate != nil {
		key += f.EndDate.Format("2006-01-02")
	}
	key += ":"
	if f.Value != nil {
		key += strconv.Itoa(*f.Value)
	}
	return key
}

// ReadCache is the TTL read-through cache in front of the services.
// A nil client disables it. Redis errors are logged and treated as misses.
type ReadCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logrus.FieldLogger
}

func NewReadCache(rdb *redis.Client, ttl time.Duration, logger logrus.FieldLogger) *ReadCache {
	return &ReadCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (rc *ReadCache) enabled() bool { return rc != nil && rc.rdb != nil }

// getCached decodes key into dest and reports a hit.
func getCached[T any](ctx context.Context, rc *ReadCache, key string, dest *T) bool {
	if !rc.enabled() {
		return false
	}
	ok, err := helpers.RedisGetJSON(ctx, rc.rdb, key, dest)
	if err != nil {
		cacheErrors.Add(1)
		helpers.LogWarn(rc.logger, "cache read failed", err, logrus.Fields{"key": key})
		return false
	}
	if ok {
		cacheHits.Add(1)
	} else {
		cacheMisses.Add(1)
	}
	return ok
}

func (rc *ReadCache) Set(ctx context.Context, key string, v any) {
	if !rc.enabled() {
		return
	}
	if err := helpers.RedisSetJSON(ctx, rc.rdb, key, v, rc.ttl); err != nil {
		cacheErrors.Add(1)
		helpers.LogWarn(rc.logger, "cache write failed", err, logrus.Fields{"key": key})
	}
}

// Invalidate drops the exact keys and every key matching the glob patterns.
func (rc *ReadCache) Invalidate(ctx context.Context, keys []string, patterns ...string) {
	if !rc.enabled() {
		return
	}
	if err := helpers.RedisDel(ctx, rc.rdb, keys...); err != nil {
		cacheErrors.Add(1)
		helpers.LogWarn(rc.logger, "cache invalidation failed", err, logrus.Fields{"keys": keys})
	} else {
		cacheInvalidations.Add(int64(len(keys)))
	}
	for _, p := range patterns {
		n, err := helpers.RedisDelPattern(ctx, rc.rdb, p)
		cacheInvalidations.Add(n)
		if err != nil {
			cacheErrors.Add(1)
			helpers.LogWarn(rc.logger, "cache pattern invalidation failed", err, logrus.Fields{"pattern": p})
		}
	}
}
