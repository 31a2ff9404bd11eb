package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tutorlink/tutorlink-api/internal/api/metrics"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
)

const (
	skillFacetKey   = keyPrefix + "skills:facet"
	DefaultSkillTTL = 5 * time.Minute
)

// SkillCache stores the global skill facet as a JSON array under a single key.
type SkillCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ ports.SkillCache = (*SkillCache)(nil)

func NewSkillCache(client redis.Cmdable, ttl time.Duration) *SkillCache {
	if ttl <= 0 {
		ttl = DefaultSkillTTL
	}
	return &SkillCache{client: client, ttl: ttl}
}

// Get returns ports.ErrCacheMiss when the key is absent.
func (c *SkillCache) Get(ctx context.Context) ([]string, error) {
	raw, err := c.client.Get(ctx, skillFacetKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.SkillCacheLookups.WithLabelValues("miss").Inc()
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("skill cache get: %w", err)
	}

	skills := make([]string, 0)
	if err := json.Unmarshal(raw, &skills); err != nil {
		return nil, fmt.Errorf("skill cache decode: %w", err)
	}
	metrics.SkillCacheLookups.WithLabelValues("hit").Inc()
	return skills, nil
}

func (c *SkillCache) Set(ctx context.Context, skills []string) error {
	raw, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("skill cache encode: %w", err)
	}
	if err := c.client.Set(ctx, skillFacetKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("skill cache set: %w", err)
	}
	return nil
}

func (c *SkillCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, skillFacetKey).Err(); err != nil {
		return fmt.Errorf("skill cache invalidate: %w", err)
	}
	return nil
}
