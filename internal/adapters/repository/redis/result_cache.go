package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/polls/internal/core/ports"
)

const countsTTL = 30 * time.Second

type resultCache struct {
	client *redis.Client
}

// NewResultCache caches per-question choice counts. Entries are
// invalidated on every vote and expire on their own as a backstop.
func NewResultCache(client *redis.Client) ports.ResultCache {
	return &resultCache{
		client: client,
	}
}

func (c *resultCache) GetCounts(ctx context.Context, questionID uuid.UUID) (map[uuid.UUID]int64, error) {
	raw, err := c.client.Get(ctx, countsKey(questionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached counts: %w", err)
	}

	var counts map[uuid.UUID]int64
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode cached counts: %w", err)
	}
	return counts, nil
}

func (c *resultCache) SetCounts(ctx context.Context, questionID uuid.UUID, counts map[uuid.UUID]int64) error {
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("failed to encode counts: %w", err)
	}
	if err := c.client.Set(ctx, countsKey(questionID), raw, countsTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache counts: %w", err)
	}
	return nil
}

func (c *resultCache) Invalidate(ctx context.Context, questionID uuid.UUID) error {
	if err := c.client.Del(ctx, countsKey(questionID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached counts: %w", err)
	}
	return nil
}

func countsKey(questionID uuid.UUID) string {
	return "polls:counts:" + questionID.String()
}
