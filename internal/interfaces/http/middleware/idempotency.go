package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/infrastructure/logger"
	"github.com/shopdesk/backoffice/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// HeaderIdempotencyKey names the client supplied idempotency key
	HeaderIdempotencyKey = "Idempotency-Key"
	// MaxIdempotencyKeyLength bounds the key stored per request
	MaxIdempotencyKeyLength = 128
)

// Idempotency rejects a repeated Idempotency-Key on the same path within ttl
// with 409 DUPLICATE_REQUEST. Requests without the header pass through.
// A key is released again when the request fails, since a failed request
// changed nothing and may be retried. Store errors fail open.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	if store == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrCodeBadRequest,
				"Idempotency-Key is too long",
				GetRequestID(c),
			))
			return
		}

		ctx := c.Request.Context()
		log := logger.GetGinLogger(c)
		scoped := c.Request.Method + " " + c.Request.URL.Path + " " + key

		fresh, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			log.Warn("idempotency store unavailable, processing request", zap.Error(err))
			c.Next()
			return
		}
		if !fresh {
			log.Info("duplicate request rejected", zap.String("idempotency_key", key))
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponse(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				GetRequestID(c),
			))
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			if err := store.Forget(ctx, scoped); err != nil {
				log.Warn("failed to release idempotency key", zap.Error(err))
			}
		}
	}
}
