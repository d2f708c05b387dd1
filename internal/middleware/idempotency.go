package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	ReplayedHeader    = "Idempotent-Replayed"

	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
)

type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body,omitempty"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func idempotencyCacheKey(path, userID, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, userID, key)
}

// Idempotency replays the stored response of a POST or PUT carrying an
// Idempotency-Key the same user already sent to the same path. A second
// request arriving while the first is still running gets 409. Only 2xx
// responses are stored.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	logger := zap.L().Named("middleware.idempotency")
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		method := c.Request.Method
		if rdb == nil || key == "" || (method != http.MethodPost && method != http.MethodPut) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := idempotencyCacheKey(c.Request.URL.Path, c.GetString("user_id_validated"), key)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached cachedResponse
			if err := json.Unmarshal(val, &cached); err == nil {
				c.Header(ReplayedHeader, "true")
				if len(cached.Body) == 0 {
					c.Status(cached.Status)
				} else {
					c.Data(cached.Status, "application/json; charset=utf-8", cached.Body)
				}
				c.Abort()
				return
			}
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "1", idempotencyLockTTL).Result()
		if err != nil {
			logger.Warn("idempotency lock unavailable, continuing without it", zap.String("key", cacheKey), zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			response.Error(c, http.StatusConflict, apperror.CodeConflict, "A request with this Idempotency-Key is still being processed", nil)
			c.Abort()
			return
		}
		defer func() {
			if err := rdb.Del(context.WithoutCancel(ctx), lockKey).Err(); err != nil {
				logger.Warn("release idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			}
		}()

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		cached := cachedResponse{Status: status}
		if rec.body.Len() > 0 {
			cached.Body = rec.body.Bytes()
		}
		payload, err := json.Marshal(cached)
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, payload, idempotencyTTL).Err(); err != nil {
			logger.Warn("store idempotent response failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
}
