package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by SkillCache.Get when nothing is cached.
var ErrCacheMiss = errors.New("cache miss")

// SkillCache stores the global skill facet list.
type SkillCache interface {
	Get(ctx context.Context) ([]string, error)
	Set(ctx context.Context, skills []string) error
	Invalidate(ctx context.Context) error
}
