package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"custom-field-api/internal/domain"
)

const keyPrefix = "field_definition:"

// FieldDefinitionCache is a read-through Redis cache for field definitions,
// used on the hot value-validation path. All methods degrade to a miss or a
// no-op when Redis is unavailable.
type FieldDefinitionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewFieldDefinitionCache creates a new FieldDefinitionCache
func NewFieldDefinitionCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *FieldDefinitionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FieldDefinitionCache{client: client, ttl: ttl, logger: logger}
}

// Get fetches a cached field definition by ID
func (c *FieldDefinitionCache) Get(ctx context.Context, id uuid.UUID) (*domain.FieldDefinition, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, keyPrefix+id.String()).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read field definition from cache",
				zap.String("field_id", id.String()),
				zap.Error(err))
		}
		return nil, false
	}
	var def domain.FieldDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		c.logger.Warn("Failed to decode cached field definition",
			zap.String("field_id", id.String()),
			zap.Error(err))
		return nil, false
	}
	return &def, true
}

// Set stores a field definition in the cache
func (c *FieldDefinitionCache) Set(ctx context.Context, def *domain.FieldDefinition) {
	if c == nil || c.client == nil || def == nil {
		return
	}
	data, err := json.Marshal(def)
	if err != nil {
		c.logger.Warn("Failed to encode field definition for cache",
			zap.String("field_id", def.ID.String()),
			zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+def.ID.String(), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write field definition to cache",
			zap.String("field_id", def.ID.String()),
			zap.Error(err))
	}
}

// Invalidate removes a field definition from the cache after a mutation
func (c *FieldDefinitionCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+id.String()).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached field definition",
			zap.String("field_id", id.String()),
			zap.Error(err))
	}
}
