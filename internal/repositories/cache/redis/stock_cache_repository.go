package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/partbin/stockledger/internal/apperrors"
	"github.com/partbin/stockledger/internal/core/domain"
	portsrepo "github.com/partbin/stockledger/internal/core/ports/repositories"
	"github.com/partbin/stockledger/internal/models"
	"github.com/partbin/stockledger/internal/utils/mapping"
)

const stockKeyPrefix = "stock:"

// RedisStockCacheRepository keeps the stock projection in Redis. Values are
// JSON-encoded levels under "stock:<location>:<part>" with no TTL: the cache
// is derived, so correctness comes from invalidation and rebuild, not expiry.
type RedisStockCacheRepository struct {
	client *redis.Client
}

// NewRedisStockCacheRepository creates the Redis-backed stock projection.
func NewRedisStockCacheRepository(client *redis.Client) portsrepo.StockCacheRepository {
	return &RedisStockCacheRepository{client: client}
}

var _ portsrepo.StockCacheRepository = (*RedisStockCacheRepository)(nil)

func cacheKey(locationID, partID string) string {
	return stockKeyPrefix + domain.StockKey{LocationID: locationID, PartID: partID}.String()
}

// Get retrieves the cached level for a key.
func (r *RedisStockCacheRepository) Get(ctx context.Context, locationID, partID string) (*domain.StockLevel, error) {
	val, err := r.client.Get(ctx, cacheKey(locationID, partID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get stock level for key %s:%s: %w", locationID, partID, err)
	}

	var m models.StockLevel
	if err := json.Unmarshal([]byte(val), &m); err != nil {
		return nil, fmt.Errorf("failed to decode stock level for key %s:%s: %w", locationID, partID, err)
	}
	level := mapping.ToDomainStockLevel(m)
	return &level, nil
}

// Put overwrites the cached level for the key.
func (r *RedisStockCacheRepository) Put(ctx context.Context, level domain.StockLevel) error {
	m := mapping.ToModelStockLevel(level)
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode stock level for key %s: %w", level.Key(), err)
	}
	if err := r.client.Set(ctx, stockKeyPrefix+level.Key().String(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to put stock level for key %s: %w", level.Key(), err)
	}
	return nil
}

// Invalidate marks the key's entry stale. Marking an absent key is a no-op.
func (r *RedisStockCacheRepository) Invalidate(ctx context.Context, locationID, partID string) error {
	level, err := r.Get(ctx, locationID, partID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if level.Stale {
		return nil
	}
	level.Stale = true
	return r.Put(ctx, *level)
}

// DeleteAll drops the entire projection, for a full rebuild.
func (r *RedisStockCacheRepository) DeleteAll(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, stockKeyPrefix+"*", 0).Iterator()
	keys := []string{}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan stock cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete stock cache keys: %w", err)
	}
	return nil
}
