package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhive/todo-api/internal/api/metrics"
)

// Limiter is the interface the rate-limit middleware needs from the
// Redis-backed fixed-window limiter.
type Limiter interface {
	Allow(ctx context.Context, bucket, client string, limit int64, window time.Duration) (bool, error)
}

// RateLimit rejects callers exceeding limit requests per window, keyed by
// client IP. When the limiter backend is unavailable the request is let
// through; availability wins over strictness here.
func RateLimit(limiter Limiter, bucket string, limit int64, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), bucket, c.RealIP(), limit, window)
			if err != nil {
				log.Warn().Err(err).Str("bucket", bucket).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(bucket).Inc()
				log.Warn().
					Str("ip", c.RealIP()).
					Str("path", c.Path()).
					Str("bucket", bucket).
					Msg("rate limit exceeded")
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}
			return next(c)
		}
	}
}
