package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appcatalog "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/catalog"
	appfinance "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/finance"
	appinv "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/inventory"
	apppartner "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/partner"
	appprod "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/production"
	apptrade "github.com/bn4g2003/ThienPhuoc-sub000/internal/application/trade"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/cache"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/config"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/event"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/logger"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/persistence"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/storage"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/infrastructure/telemetry"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/handler"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/middleware"
	"github.com/bn4g2003/ThienPhuoc-sub000/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/bn4g2003/ThienPhuoc-sub000/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			ThienPhuoc ERP API
//	@version		1.0
//	@description	Debt settlement, inventory transactions and production tracking

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	ActorHeader
//	@in							header
//	@name						X-User-ID
//	@description				UUID of the acting user, required on routes that record who acted

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Telemetry first so the logger can tee into the OTLP log bridge
	bootLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	providers, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    "1.0",
		Insecure:          cfg.Telemetry.Insecure,
		MetricsEnabled:    cfg.Telemetry.MetricsEnabled,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
	}, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: cfg.Log.TimeFormat,
	}, providers.LogCore(logger.ParseLevel(cfg.Log.Level)))
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ERP server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.App.Name,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		providers.EnableSpanProfiles()
	}

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Repositories
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	debtRepo := persistence.NewGormDebtRecordRepository(db.DB)
	debtPaymentRepo := persistence.NewGormDebtPaymentRepository(db.DB)
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	balanceRepo := persistence.NewGormBalanceRepository(db.DB)
	inventoryTxRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	productionOrderRepo := persistence.NewGormProductionOrderRepository(db.DB)
	bomRepo := persistence.NewGormBOMRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)

	// Balance snapshot cache, Redis when configured
	balanceCache, closeCache, err := cache.NewBalanceCacheFactory(cfg.Redis, cache.WithLogger(log)).
		Create(context.Background())
	if err != nil {
		log.Fatal("Failed to create balance cache", zap.Error(err))
	}
	defer func() {
		if err := closeCache(); err != nil {
			log.Error("Error closing balance cache", zap.Error(err))
		}
	}()
	var redisClient *redis.Client
	if rc, ok := balanceCache.(*cache.RedisBalanceCache); ok {
		redisClient = rc.Client()
	}

	// Application services
	partnerService := apppartner.NewPartnerService(partnerRepo)
	itemService := appcatalog.NewItemService(itemRepo)
	bankAccountService := appfinance.NewBankAccountService(bankAccountRepo)
	debtService := appfinance.NewDebtService(debtRepo, debtPaymentRepo, partnerRepo, orderRepo)
	settlementService := appfinance.NewSettlementService(scope.Finance(), log)
	orderService := apptrade.NewOrderService(scope.Finance(), orderRepo, itemRepo, log)
	warehouseService := appinv.NewWarehouseService(warehouseRepo)
	balanceService := appinv.NewBalanceService(warehouseRepo, balanceRepo, balanceCache, log)
	transactionService := appinv.NewTransactionService(scope.Inventory(), inventoryTxRepo, log)
	bomService := appprod.NewBOMService(scope.Production(), bomRepo)
	productionService := appprod.NewProductionService(scope.Production(), productionOrderRepo, bomRepo, balanceRepo, log)

	// Event bus: cache invalidation runs inline, receipt archiving off the request path
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(appinv.NewBalanceCacheInvalidationHandler(balanceCache, log))
	receiptArchive, err := newReceiptArchive(cfg, log)
	if err != nil {
		log.Fatal("Failed to create receipt archive", zap.Error(err))
	}
	eventBus.SubscribeAsync(appfinance.NewReceiptArchiveHandler(receiptArchive, log))

	settlementService.SetEventPublisher(eventBus)
	transactionService.SetEventPublisher(eventBus)
	productionService.SetEventPublisher(eventBus)

	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:   providers.Meter("erp.business"),
		Logger:  log,
		Pending: inventoryTxRepo,
	})
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	settlementService.SetBusinessMetrics(businessMetrics)
	transactionService.SetBusinessMetrics(businessMetrics)
	productionService.SetBusinessMetrics(businessMetrics)
	orderService.SetBusinessMetrics(businessMetrics)

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	rateLimiter, err := middleware.NewRateLimiter(cfg.HTTP.RateLimit, redisClient)
	if err != nil {
		log.Fatal("Failed to create rate limiter", zap.Error(err))
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	httpMetrics := middleware.NewHTTPMetrics("erp")
	if err := httpMetrics.RegisterDBStats(sqlDB, cfg.Database.DBName); err != nil {
		log.Warn("Failed to register database stats collector", zap.Error(err))
	}

	engine := gin.New()

	// Middleware order:
	// 1. RequestID and Recovery wrap everything
	// 2. request logging and tracing see the final status
	// 3. Actor before anything keyed on the acting user
	// 4. profiling labels, CORS, security headers, body and rate limits
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     providers.TracingEnabled(),
	}))
	engine.Use(middleware.Actor())
	engine.Use(middleware.TracingAttributes())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.Profiling(middleware.ProfilingConfig{
		Enabled:          cfg.Profiling.Enabled,
		SkipPaths:        middleware.DefaultProfilingConfig().SkipPaths,
		SkipPathPrefixes: middleware.DefaultProfilingConfig().SkipPathPrefixes,
	}))
	engine.Use(middleware.CORS(cfg.HTTP.CORSOrigins))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.BodyLimit))
	engine.Use(middleware.RateLimit(rateLimiter))
	engine.Use(httpMetrics.Middleware())

	engine.GET("/health", handler.NewHealthHandler(sqlDB).Health)
	engine.GET("/metrics", gin.WrapH(httpMetrics.Handler()))
	if cfg.HTTP.SwaggerEnabled {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handlers := router.Handlers{
		Finance:    handler.NewFinanceHandler(settlementService, debtService, bankAccountService),
		Inventory:  handler.NewInventoryHandler(transactionService, warehouseService, balanceService),
		Partner:    handler.NewPartnerHandler(partnerService),
		Catalog:    handler.NewCatalogHandler(itemService),
		Order:      handler.NewOrderHandler(orderService),
		Production: handler.NewProductionHandler(productionService, bomService),
	}
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.APIGroups(handlers)...).
		Setup()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           engine,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
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

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(ctx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Error("Error shutting down telemetry", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newReceiptArchive returns the S3 archive when enabled, otherwise an in-process one
func newReceiptArchive(cfg *config.Config, log *zap.Logger) (appfinance.ReceiptArchive, error) {
	if !cfg.Storage.ReceiptArchiveEnabled {
		log.Info("Receipt archive disabled, keeping receipts in memory")
		return storage.NewMemoryReceiptArchive(cfg.Storage.KeyPrefix), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Storage.Timeout)
	defer cancel()

	archive, err := storage.NewS3ReceiptArchive(ctx, &cfg.Storage,
		storage.WithLogger(log),
		storage.WithBreaker(storage.DefaultBreakerConfig("receipt-archive")),
	)
	if err != nil {
		return nil, err
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Receipt archive ready", zap.String("bucket", cfg.Storage.Bucket))
	return archive, nil
}
