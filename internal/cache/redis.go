package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pukadigital/content-hub/internal/logger"
	"github.com/pukadigital/content-hub/internal/models"
)

const redisKeyPrefix = "contenthub:cache:"

// Redis is a Store backed by a Redis instance, for deployments where
// several replicas should share one revalidation window. Entries are
// stored as JSON with the TTL enforced by Redis itself. Any Redis error
// degrades to a cache miss; the cache never fails a request.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedis creates a Redis-backed cache with the given revalidation window.
func NewRedis(client *redis.Client, ttl time.Duration, log logger.Logger) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (r *Redis) Get(ctx context.Context, key string) ([]models.Post, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("Cache read failed, treating as miss",
				logger.String("key", key),
				logger.Error(err),
			)
		}
		r.misses.Add(1)
		return nil, false
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		r.log.Warn("Corrupt cache entry, treating as miss",
			logger.String("key", key),
			logger.Error(err),
		)
		r.misses.Add(1)
		return nil, false
	}

	r.hits.Add(1)
	return posts, true
}

func (r *Redis) Set(ctx context.Context, key string, posts []models.Post) {
	data, err := json.Marshal(posts)
	if err != nil {
		r.log.Warn("Cache entry marshal failed",
			logger.String("key", key),
			logger.Error(err),
		)
		return
	}

	if err := r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		r.log.Warn("Cache write failed",
			logger.String("key", key),
			logger.Error(err),
		)
	}
}

func (r *Redis) Stats() Stats {
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
	}
}
