package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/api/metrics"
)

const rateWindow = time.Minute

// WindowCounter counts hits per key inside a fixed window.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit allows at most perMinute requests per client IP and route. A nil
// counter or a non-positive limit disables it; counter failures let the
// request through.
func RateLimit(counter WindowCounter, perMinute int, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if counter == nil || perMinute <= 0 {
			return next
		}
		return func(c echo.Context) error {
			key := "ip:" + c.RealIP() + ":" + c.Path()

			count, err := counter.Hit(c.Request().Context(), key, rateWindow)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			remaining := perMinute - int(count)
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(perMinute))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			if int(count) > perMinute {
				metrics.RateLimitedTotal.Inc()
				h.Set("Retry-After", strconv.Itoa(int(rateWindow.Seconds())))
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
