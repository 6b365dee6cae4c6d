package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SentimentCache handles Redis operations for the dashboard sentiment score.
// The cached value is nullable end-to-end: a company with no measurable
// sentiment caches an explicit null so consumers can branch on absence.
type SentimentCache interface {
	Get(ctx context.Context, companyID string) (*float64, bool, error)
	Set(ctx context.Context, companyID string, score *float64) error
	Invalidate(ctx context.Context, companyID string) error
}

type sentimentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSentimentCache creates a new sentiment cache
func NewSentimentCache(client *redis.Client) SentimentCache {
	return &sentimentCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *sentimentCache) key(companyID string) string {
	return fmt.Sprintf("company:%s:sentiment", companyID)
}

// Get returns the cached score and whether the cache held an entry at all.
func (c *sentimentCache) Get(ctx context.Context, companyID string) (*float64, bool, error) {
	data, err := c.client.Get(ctx, c.key(companyID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var score *float64
	if err := json.Unmarshal([]byte(data), &score); err != nil {
		return nil, false, err
	}
	return score, true, nil
}

func (c *sentimentCache) Set(ctx context.Context, companyID string, score *float64) error {
	data, err := json.Marshal(score)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(companyID), data, c.ttl).Err()
}

func (c *sentimentCache) Invalidate(ctx context.Context, companyID string) error {
	return c.client.Del(ctx, c.key(companyID)).Err()
}
