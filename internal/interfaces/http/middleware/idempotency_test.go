package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backoffice/internal/infrastructure/cache"
	"github.com/shopdesk/backoffice/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func (failingStore) Forget(context.Context, string) error {
	return nil
}

func (failingStore) Close() error {
	return nil
}

func newIdempotentRouter(t *testing.T, mw gin.HandlerFunc, status *int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	calls := 0
	r.POST("/orders/:id/status", mw, func(c *gin.Context) {
		calls++
		c.String(*status, "call %d", calls)
	})
	return r
}

func postWithKey(key, path string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	return req
}

func TestIdempotency(t *testing.T) {
	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	status := http.StatusOK
	r := newIdempotentRouter(t, Idempotency(store, time.Hour), &status)

	t.Run("first request passes, repeat is rejected", func(t *testing.T) {
		w := serve(r, postWithKey("k-1", "/orders/1/status"))
		assert.Equal(t, http.StatusOK, w.Code)

		w = serve(r, postWithKey("k-1", "/orders/1/status"))
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeDuplicateRequest)
		assert.Contains(t, w.Body.String(), w.Header().Get(HeaderRequestID))
	})

	t.Run("key is scoped to the path", func(t *testing.T) {
		w := serve(r, postWithKey("k-1", "/orders/2/status"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no key, no guard", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(r, postWithKey("", "/orders/3/status")).Code)
		assert.Equal(t, http.StatusOK, serve(r, postWithKey("", "/orders/3/status")).Code)
	})

	t.Run("failed request releases the key", func(t *testing.T) {
		status = http.StatusConflict
		w := serve(r, postWithKey("k-2", "/orders/4/status"))
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NotContains(t, w.Body.String(), dto.ErrCodeDuplicateRequest)

		status = http.StatusOK
		w = serve(r, postWithKey("k-2", "/orders/4/status"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("oversized key", func(t *testing.T) {
		w := serve(r, postWithKey(strings.Repeat("k", MaxIdempotencyKeyLength+1), "/orders/5/status"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIdempotency_StoreFailureFailsOpen(t *testing.T) {
	status := http.StatusOK
	r := newIdempotentRouter(t, Idempotency(failingStore{}, time.Hour), &status)

	assert.Equal(t, http.StatusOK, serve(r, postWithKey("k", "/orders/1/status")).Code)
	assert.Equal(t, http.StatusOK, serve(r, postWithKey("k", "/orders/1/status")).Code)
}

func TestIdempotency_NilStore(t *testing.T) {
	status := http.StatusOK
	r := newIdempotentRouter(t, Idempotency(nil, time.Hour), &status)

	assert.Equal(t, http.StatusOK, serve(r, postWithKey("k", "/orders/1/status")).Code)
	assert.Equal(t, http.StatusOK, serve(r, postWithKey("k", "/orders/1/status")).Code)
}
