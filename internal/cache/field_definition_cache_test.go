package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"custom-field-api/internal/domain"
)

func TestFieldDefinitionCache_NilClientDegradesToMiss(t *testing.T) {
	c := NewFieldDefinitionCache(nil, time.Minute, zap.NewNop())
	ctx := context.Background()

	def, ok := c.Get(ctx, uuid.New())
	assert.False(t, ok)
	assert.Nil(t, def)

	// Writes and invalidations must be silent no-ops
	c.Set(ctx, &domain.FieldDefinition{})
	c.Invalidate(ctx, uuid.New())
}

func TestFieldDefinitionCache_NilReceiver(t *testing.T) {
	var c *FieldDefinitionCache
	ctx := context.Background()

	def, ok := c.Get(ctx, uuid.New())
	assert.False(t, ok)
	assert.Nil(t, def)

	c.Set(ctx, &domain.FieldDefinition{})
	c.Invalidate(ctx, uuid.New())
}

func TestNewFieldDefinitionCache_DefaultTTL(t *testing.T) {
	c := NewFieldDefinitionCache(nil, 0, zap.NewNop())
	assert.Equal(t, 5*time.Minute, c.ttl)

	c = NewFieldDefinitionCache(nil, 30*time.Second, zap.NewNop())
	assert.Equal(t, 30*time.Second, c.ttl)
}
