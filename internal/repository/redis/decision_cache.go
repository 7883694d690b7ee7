package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"priceWise/business/pricing"
	"priceWise/domain"

	"github.com/redis/go-redis/v9"
)

const defaultDecisionTTL = 24 * time.Hour

// DecisionCache keeps recently served decisions addressable by id so the
// explain endpoint can re-render them without re-scoring.
type DecisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ pricing.DecisionCache = (*DecisionCache)(nil)

func NewDecisionCache(client *redis.Client) *DecisionCache {
	return &DecisionCache{
		client: client,
		ttl:    defaultDecisionTTL,
	}
}

func (c *DecisionCache) StoreDecision(ctx context.Context, rec domain.DecisionRecord) error {
	key := decisionKey(rec.ID)

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal decision record: %w", err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store decision in Redis: %w", err)
	}

	return nil
}

func (c *DecisionCache) GetDecision(ctx context.Context, id string) (domain.DecisionRecord, bool, error) {
	val, err := c.client.Get(ctx, decisionKey(id)).Result()
	if err == redis.Nil {
		return domain.DecisionRecord{}, false, nil
	}
	if err != nil {
		return domain.DecisionRecord{}, false, fmt.Errorf("failed to get decision from Redis: %w", err)
	}

	var rec domain.DecisionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		return domain.DecisionRecord{}, false, fmt.Errorf("failed to unmarshal decision record: %w", err)
	}

	return rec, true, nil
}

func decisionKey(id string) string {
	return fmt.Sprintf("pricing:decision:%s", id)
}
