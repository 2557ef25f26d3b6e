package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"newsagent/types"

	"github.com/redis/go-redis/v9"
)

// RecentKey holds the capped list of recent articles, newest at index 0.
const RecentKey = "articles:recent"

// RedisRecent keeps the last max articles in a Redis list.
type RedisRecent struct {
	rdb *redis.Client
	max int
}

// NewRedisRecent connects to redisURL and verifies the connection.
func NewRedisRecent(ctx context.Context, redisURL string, max int) (*RedisRecent, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("storage: invalid REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("storage: connect to Redis: %w", err)
	}
	return &RedisRecent{rdb: rdb, max: max}, nil
}

// Save pushes the article onto the list and trims it to max entries.
func (r *RedisRecent) Save(ctx context.Context, a *types.Article) error {
	b, err := json.Marshal(newRecord(a))
	if err != nil {
		return fmt.Errorf("storage: marshal article: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, RecentKey, b)
		pipe.LTrim(ctx, RecentKey, 0, int64(r.max-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: push recent article: %w", err)
	}
	return nil
}

// Recent returns up to limit entries from the list, newest first.
func (r *RedisRecent) Recent(ctx context.Context, limit int) ([]*types.Article, error) {
	entries, err := r.rdb.LRange(ctx, RecentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: read recent articles: %w", err)
	}
	return decodeRecords(entries), nil
}

// Close closes the Redis client.
func (r *RedisRecent) Close() error {
	return r.rdb.Close()
}

// decodeRecords skips entries that do not parse.
func decodeRecords(entries []string) []*types.Article {
	articles := make([]*types.Article, 0, len(entries))
	for _, e := range entries {
		var rec record
		if err := json.Unmarshal([]byte(e), &rec); err != nil {
			log.Printf("Warning: skipping unreadable recent article: %v", err)
			continue
		}
		articles = append(articles, rec.article())
	}
	return articles
}
