package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backoffice/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs a recording tracer provider for the test
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(t.Context())
	})
	return sr
}

func newTracedRouter(status int, code string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Tracing(TracingConfig{ServiceName: "shop-test", Enabled: true, SkipPaths: []string{"/health"}}), SpanAttributes())
	r.PATCH("/api/v1/orders/:id/status", func(c *gin.Context) {
		if code == "" {
			c.Status(status)
			return
		}
		resp := dto.NewErrorResponse(code, "rejected", GetRequestID(c))
		RecordErrorCode(c, resp)
		c.JSON(status, resp)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func attr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_RecordsServerSpan(t *testing.T) {
	sr := setupTestTracer(t)
	r := newTracedRouter(http.StatusOK, "")

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/7/status", nil)
	req.Header.Set(HeaderRequestID, "req-trace-1")
	serve(r, req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/orders/:id/status")
	id, ok := attr(spans[0].Attributes(), "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-trace-1", id.AsString())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_ConflictIsNotAFailure(t *testing.T) {
	sr := setupTestTracer(t)
	serve(newTracedRouter(http.StatusConflict, "COD_NOT_PAID"), httptest.NewRequest(http.MethodPatch, "/api/v1/orders/7/status", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	code, ok := attr(spans[0].Attributes(), "shop.error.code")
	require.True(t, ok)
	assert.Equal(t, "COD_NOT_PAID", code.AsString())
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_ServerErrorMarksSpan(t *testing.T) {
	sr := setupTestTracer(t)
	serve(newTracedRouter(http.StatusInternalServerError, dto.ErrCodeInternal), httptest.NewRequest(http.MethodPatch, "/api/v1/orders/7/status", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_SkipPathAndDisabled(t *testing.T) {
	sr := setupTestTracer(t)
	serve(newTracedRouter(http.StatusOK, ""), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Empty(t, sr.Ended())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Tracing(TracingConfig{Enabled: false}), SpanAttributes())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}
