package middleware

import (
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/marketplace-reputation/internal/config"
)

// RateLimit returns a fixed-window limiter backed by Redis: one counter
// per (client IP, route, window), incremented per request and expired
// with the window. When the counter passes the limit the request is
// rejected with 429. A nil client or a disabled config yields a
// pass-through middleware, mirroring how the rest of the app degrades
// without Redis. Redis errors fail open so a cache outage never takes
// the API down with it.
func RateLimit(client *redis.Client, cfg config.RateLimitConfig) echo.MiddlewareFunc {
    if client == nil || !cfg.Enabled {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            window := time.Now().Unix() / int64(cfg.Window.Seconds())
            key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.RealIP(), c.Path(), window)

            ctx := c.Request().Context()
            n, err := client.Incr(ctx, key).Result()
            if err != nil {
                return next(c)
            }
            if n == 1 {
                _ = client.Expire(ctx, key, cfg.Window).Err()
            }
            if n > int64(cfg.Limit) {
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
            }
            return next(c)
        }
    }
}
