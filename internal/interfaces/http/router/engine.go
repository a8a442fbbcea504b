package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/infrastructure/logger"
	"github.com/shopdesk/backoffice/internal/interfaces/http/dto"
	"github.com/shopdesk/backoffice/internal/interfaces/http/handler"
	"github.com/shopdesk/backoffice/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Config selects the cross-cutting behaviour of the engine
type Config struct {
	ServiceName      string
	TracingEnabled   bool
	ProfilingEnabled bool
	Meter            metric.Meter // nil disables HTTP metrics
	CORSAllowOrigins []string
	TrustedProxies   []string
	MaxBodySize      int64
	IdempotencyStore shared.IdempotencyStore
	IdempotencyTTL   time.Duration
	Swagger          middleware.SwaggerConfig
}

// Handlers are the endpoint groups mounted by NewEngine
type Handlers struct {
	Orders    *handler.OrderHandler
	Receiving *handler.ReceivingSlipHandler
	Dispatch  *handler.DispatchSlipHandler
	Health    *handler.HealthHandler
}

// NewEngine builds the gin engine with the middleware chain and every route
func NewEngine(cfg Config, h Handlers, log *zap.Logger) (*gin.Engine, error) {
	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	httpMetrics, err := middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		Meter:     cfg.Meter,
		Enabled:   cfg.Meter != nil,
		SkipPaths: []string{"/health"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register HTTP metrics: %w", err)
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.ServiceName,
			Enabled:     cfg.TracingEnabled,
			SkipPaths:   []string{"/health"},
		}),
		logger.GinMiddleware(log),
		middleware.SpanAttributes(),
		httpMetrics,
		middleware.Secure(),
		middleware.CORS(cfg.CORSAllowOrigins),
		middleware.BodyLimit(cfg.MaxBodySize),
		middleware.Profiling(middleware.ProfilingConfig{
			Enabled:   cfg.ProfilingEnabled,
			SkipPaths: []string{"/health"},
		}),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(dto.ErrCodeMethodNotAllowed, "Method not allowed", middleware.GetRequestID(c)))
	})

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}
	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), ginSwagger.WrapHandler(swaggerFiles.Handler))

	idem := middleware.Idempotency(cfg.IdempotencyStore, cfg.IdempotencyTTL)
	r := NewRouter(engine)
	if h.Orders != nil {
		r.Register(orderRoutes(h.Orders, idem))
	}
	if h.Receiving != nil || h.Dispatch != nil {
		r.Register(warehouseRoutes(h.Receiving, h.Dispatch, idem))
	}
	r.Setup()

	return engine, nil
}

func orderRoutes(h *handler.OrderHandler, idem gin.HandlerFunc) *DomainGroup {
	return NewDomainGroup("orders", "/orders").
		POST("", h.PlaceOrder).
		GET("/:id", h.GetByID).
		DELETE("/:id", h.Delete).
		PATCH("/:id/status", idem, h.ChangeStatus).
		GET("/:id/invoice", h.GetInvoice)
}

func warehouseRoutes(receiving *handler.ReceivingSlipHandler, dispatch *handler.DispatchSlipHandler, idem gin.HandlerFunc) *DomainGroup {
	warehouse := NewDomainGroup("warehouse", "/warehouse")

	if receiving != nil {
		warehouse.Group("receiving", "/receiving-slips").
			POST("", receiving.Create).
			GET("/:id", receiving.GetByID).
			DELETE("/:id", receiving.Delete).
			POST("/:id/items", receiving.AddItem).
			PUT("/:id/items/:itemId", receiving.UpdateItem).
			DELETE("/:id/items/:itemId", receiving.RemoveItem).
			POST("/:id/confirm", idem, receiving.Confirm)
	}

	if dispatch != nil {
		warehouse.Group("dispatch", "/dispatch-slips").
			POST("", dispatch.Create).
			GET("/:id", dispatch.GetByID).
			DELETE("/:id", dispatch.Delete).
			POST("/:id/items", dispatch.AddItem).
			DELETE("/:id/items/:itemId", dispatch.RemoveItem).
			POST("/:id/confirm", idem, dispatch.Confirm)
	}

	return warehouse
}
