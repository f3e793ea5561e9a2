package infra

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis creates and validates a go-redis client connection.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Validate connectivity at startup
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

// ── Active-price cache ────────────────────────────────────────────────────────

// PrixCache stores the active pricing windows of one owner key in a Redis hash:
// one hash per (company, building, type) and generation, one field per as-of
// date. A write to the owner bumps the generation, so a fill computed before
// the write lands in a hash nobody reads any more and expires with its TTL.
type PrixCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPrixCache(rdb *redis.Client, ttl time.Duration) *PrixCache {
	return &PrixCache{rdb: rdb, ttl: ttl}
}

func prixGenKey(owner string) string { return "carco:prix:gen:" + owner }

func prixCacheKey(owner string, gen int64) string {
	return "carco:prix:" + owner + ":" + strconv.FormatInt(gen, 10)
}

// Get returns the cached payload and the generation it was looked up in.
// Any Redis error counts as a miss; a negative generation means the result
// must not be cached.
func (c *PrixCache) Get(ctx context.Context, owner, field string) ([]byte, int64, bool) {
	gen, err := c.rdb.Get(ctx, prixGenKey(owner)).Int64()
	if errors.Is(err, redis.Nil) {
		gen, err = 0, nil
	}
	if err != nil {
		return nil, -1, false
	}
	b, err := c.rdb.HGet(ctx, prixCacheKey(owner, gen), field).Bytes()
	if err != nil {
		return nil, gen, false
	}
	return b, gen, true
}

// Set populates the cache under gen, best effort.
func (c *PrixCache) Set(ctx context.Context, owner string, gen int64, field string, payload []byte) {
	if gen < 0 {
		return
	}
	key := prixCacheKey(owner, gen)
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, key, field, payload)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("prix cache: set failed")
	}
}

// Invalidate moves the owner to a new generation and drops the previous hash.
func (c *PrixCache) Invalidate(ctx context.Context, owner string) {
	gen, err := c.rdb.Incr(ctx, prixGenKey(owner)).Result()
	if err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("prix cache: invalidate failed")
		return
	}
	if err := c.rdb.Del(ctx, prixCacheKey(owner, gen-1)).Err(); err != nil {
		log.Warn().Err(err).Str("owner", owner).Msg("prix cache: drop previous generation failed")
	}
}
