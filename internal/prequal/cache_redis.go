package prequal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"prequal/internal/bre"
	"prequal/internal/platform/redis"
	id "prequal/pkg/domain"
)

// RedisCache persists eligible offers in Redis with a TTL matching the offer
// validity window, so a restarted instance still sees recent results.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    offerValidityDays * 24 * time.Hour,
	}
}

func (c *RedisCache) Put(ctx context.Context, phone id.Phone, ev bre.Evaluation) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode cached offer: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(phone, ev.LenderID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache offer for %s/%s: %w", phone, ev.LenderID, err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, phone id.Phone, lender id.LenderID) (*bre.Evaluation, error) {
	payload, err := c.client.Get(ctx, cacheKey(phone, lender)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cached offer for %s/%s: %w", phone, lender, err)
	}
	var ev bre.Evaluation
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("decode cached offer: %w", err)
	}
	return &ev, nil
}
