package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	appinv "github.com/shopdesk/backoffice/internal/application/inventory"
	apptrade "github.com/shopdesk/backoffice/internal/application/trade"
	"github.com/shopdesk/backoffice/internal/domain/shared"
	"github.com/shopdesk/backoffice/internal/infrastructure/cache"
	"github.com/shopdesk/backoffice/internal/infrastructure/config"
	"github.com/shopdesk/backoffice/internal/infrastructure/logger"
	"github.com/shopdesk/backoffice/internal/infrastructure/persistence"
	"github.com/shopdesk/backoffice/internal/infrastructure/telemetry"
	"github.com/shopdesk/backoffice/internal/interfaces/http/handler"
	"github.com/shopdesk/backoffice/internal/interfaces/http/middleware"
	"github.com/shopdesk/backoffice/internal/interfaces/http/router"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	_ "github.com/shopdesk/backoffice/docs"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Shop Back Office API
//	@version		1.0
//	@description	Orders, invoicing, goods receipt and goods issue for a single-shop back office

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromLogConfig(cfg.Log), cfg.App.Name)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Bridge(log, log.Level())
	defer shutdownTelemetry(log, cfg.HTTP, tp, mp, lp)

	profiler, err := telemetry.NewProfiler(cfg.Profiling, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	log.Info("Starting shop back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.Bool("telemetry", cfg.Telemetry.Enabled),
		zap.Bool("profiling", profiler.IsEnabled()),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQuery),
	)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := instrumentDatabase(cfg, db, mp, log); err != nil {
		log.Fatal("Failed to instrument database", zap.Error(err))
	}
	if stats, err := db.Stats(); err == nil {
		log.Info("Database connected",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.DBName),
			zap.Int("max_open_connections", stats.MaxOpenConnections),
		)
	}

	store, err := newIdempotencyStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}()
	}

	metrics, err := telemetry.NewShopMetrics(mp.Meter("shop.workflow"))
	if err != nil {
		log.Fatal("Failed to register business metrics", zap.Error(err))
	}

	orderRepo := persistence.NewGormOrderRepository(db.DB)
	orderService := apptrade.NewOrderService(
		persistence.NewGormOrderTransactionScope(db.DB),
		orderRepo,
		persistence.NewGormInvoiceRepository(db.DB),
		persistence.NewGormProductRepository(db.DB),
		persistence.NewGormCustomerRepository(db.DB),
		log,
	)
	orderService.SetMetrics(metrics)

	receivingService := appinv.NewReceivingSlipService(
		persistence.NewGormInventoryTransactionScope(db.DB),
		persistence.NewGormReceivingSlipRepository(db.DB),
		log,
	)
	receivingService.SetMetrics(metrics)

	dispatchService := appinv.NewDispatchSlipService(
		persistence.NewGormInventoryTransactionScope(db.DB),
		persistence.NewGormDispatchSlipRepository(db.DB),
		orderRepo,
		log,
	)
	dispatchService.SetMetrics(metrics)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, err := router.NewEngine(router.Config{
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   tp.IsEnabled(),
		ProfilingEnabled: profiler.IsEnabled(),
		Meter:            httpMeter(mp),
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		IdempotencyStore: store,
		IdempotencyTTL:   cfg.Idempotency.TTL,
		Swagger: middleware.SwaggerConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
		},
	}, router.Handlers{
		Orders:    handler.NewOrderHandler(orderService),
		Receiving: handler.NewReceivingSlipHandler(receivingService),
		Dispatch:  handler.NewDispatchSlipHandler(dispatchService),
		Health:    handler.NewHealthHandler(db, version),
	}, log)
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// instrumentDatabase installs the otelgorm plugin and the query/pool metrics
func instrumentDatabase(cfg *config.Config, db *persistence.Database, mp *telemetry.MeterProvider, log *zap.Logger) error {
	plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:            cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQuery,
		DBName:             cfg.Database.DBName,
	}, log)
	if err := plugin.RegisterOtelGorm(db.DB); err != nil {
		return err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	dbMetrics, err := telemetry.NewDBMetrics(mp.Meter("shop.database"), sqlDB, cfg.Telemetry.DBSlowQuery)
	if err != nil {
		return err
	}
	return db.DB.Use(dbMetrics)
}

// newIdempotencyStore returns nil when the Idempotency-Key guard is disabled
func newIdempotencyStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (shared.IdempotencyStore, error) {
	if !cfg.Idempotency.Enabled {
		log.Info("Idempotency-Key guard disabled")
		return nil, nil
	}
	factory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.IsProduction()),
	)
	store, err := factory.Create(ctx, cfg.Idempotency.Store)
	if err != nil {
		return nil, err
	}
	log.Info("Idempotency store ready",
		zap.String("store", cfg.Idempotency.Store),
		zap.Duration("ttl", cfg.Idempotency.TTL),
	)
	return store, nil
}

// httpMeter returns nil when metrics export is off so the middleware is skipped
func httpMeter(mp *telemetry.MeterProvider) metric.Meter {
	if !mp.IsEnabled() {
		return nil
	}
	return mp.Meter("http.server")
}

func shutdownTelemetry(log *zap.Logger, httpCfg config.HTTPConfig, tp *telemetry.TracerProvider, mp *telemetry.MeterProvider, lp *telemetry.LoggerProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	if err := tp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := lp.Shutdown(ctx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}
}
