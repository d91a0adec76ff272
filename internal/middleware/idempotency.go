package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	// IdempotencyHeader is the standard HTTP header for idempotency keys.
	IdempotencyHeader = "Idempotency-Key"

	// idempotencyCacheTTL defines how long responses are cached in Redis.
	idempotencyCacheTTL = 24 * time.Hour

	// lockTimeout prevents indefinite locks if a request crashes mid-flight.
	lockTimeout = 10 * time.Second

	idempotencyKeyPrefix = "idempotency:"
	lockKeyPrefix        = "lock:"
)

// bodyCaptureWriter tees the response body so a successful result can be
// cached and replayed for a retried request.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency guards mutating routes against duplicate processing. A request
// carrying an Idempotency-Key either replays the cached response of the first
// attempt or acquires a short-lived lock while it executes; a concurrent
// duplicate is answered with 409. Requests without the header pass through.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		logger := GetLoggerFromCtx(ctx)
		cacheKey := idempotencyKeyPrefix + key
		lockKey := lockKeyPrefix + key

		cached, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			logger.Info("Idempotency cache hit", slog.String("key", key))
			c.Header("X-Idempotency-Hit", "true")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "processing", lockTimeout).Result()
		if err != nil {
			logger.Error("Idempotency lock acquisition failed", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if !acquired {
			logger.Warn("Concurrent request with same idempotency key", slog.String("key", key))
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A request with this idempotency key is currently being processed"})
			return
		}
		defer func() {
			if err := rdb.Del(ctx, lockKey).Err(); err != nil {
				logger.Error("Failed to release idempotency lock", slog.String("error", err.Error()))
			}
		}()

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// Cache successful responses only.
		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			if err := rdb.Set(ctx, cacheKey, writer.body.String(), idempotencyCacheTTL).Err(); err != nil {
				logger.Error("Failed to cache idempotent response", slog.String("error", err.Error()))
			}
		}
	}
}
