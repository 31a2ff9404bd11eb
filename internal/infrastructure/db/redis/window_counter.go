package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = keyPrefix + "ratelimit:"

// WindowCounter counts hits per key inside fixed time windows.
type WindowCounter struct {
	client redis.Cmdable
}

func NewWindowCounter(client redis.Cmdable) *WindowCounter {
	return &WindowCounter{client: client}
}

// Hit increments the counter for key and returns the count within the current
// window. The expiry is only set by the first hit, so the window does not
// slide.
func (w *WindowCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, error) {
	k := rateLimitPrefix + key

	pipe := w.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate counter: %w", err)
	}
	return incr.Val(), nil
}
