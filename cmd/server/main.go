package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	analyticsapp "github.com/tradegate/backend/internal/application/analytics"
	fulfillmentapp "github.com/tradegate/backend/internal/application/fulfillment"
	identityapp "github.com/tradegate/backend/internal/application/identity"
	sourcingapp "github.com/tradegate/backend/internal/application/sourcing"
	"github.com/tradegate/backend/internal/domain/fulfillment"
	"github.com/tradegate/backend/internal/domain/shared"
	"github.com/tradegate/backend/internal/domain/sourcing"
	"github.com/tradegate/backend/internal/infrastructure/auth"
	"github.com/tradegate/backend/internal/infrastructure/config"
	"github.com/tradegate/backend/internal/infrastructure/event"
	"github.com/tradegate/backend/internal/infrastructure/logger"
	"github.com/tradegate/backend/internal/infrastructure/persistence"
	"github.com/tradegate/backend/internal/interfaces/http/handler"
	"github.com/tradegate/backend/internal/interfaces/http/middleware"
	"github.com/tradegate/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.NewFromConfig(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting TradeGate backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Token blacklist backed by Redis, with an in-process fallback so the
	// service still starts when Redis is down.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	requirementRepo := persistence.NewGormRequirementRepository(db.DB)
	bidRepo := persistence.NewGormBidRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	statsRepo := persistence.NewGormStatsRepository(db.DB)

	// Application services
	integrityValidator := sourcing.NewIntegrityValidator(
		decimal.NewFromFloat(cfg.Marketplace.SuspiciousPriceFloor),
	)
	historyService := sourcingapp.NewHistoryService(userRepo, orderRepo)

	requirementService := sourcingapp.NewRequirementService(requirementRepo)
	bidService := sourcingapp.NewBidService(bidRepo, requirementRepo, integrityValidator, historyService)
	orderPolicy := fulfillment.NewOrderPolicy(cfg.Marketplace.CancellablePhaseLimit)
	orderService := fulfillmentapp.NewOrderService(orderRepo, bidRepo, requirementRepo, orderPolicy)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	dashboardService := analyticsapp.NewDashboardService(statsRepo, log)

	// Domain event bus: audit log for marketplace lifecycle events.
	eventBus := event.NewInMemoryEventBus(log)
	auditLog := func(evt shared.DomainEvent) {
		log.Info("marketplace event",
			zap.String("event_type", evt.EventType()),
			zap.String("aggregate_type", evt.AggregateType()),
			zap.String("aggregate_id", evt.AggregateID().String()),
		)
	}
	for _, eventType := range []string{
		sourcing.EventTypeRequirementPosted,
		sourcing.EventTypeRequirementClosed,
		sourcing.EventTypeRequirementAwarded,
		sourcing.EventTypeBidAccepted,
	} {
		eventBus.Subscribe(eventType, auditLog)
	}

	requirementService.SetEventPublisher(eventBus)
	bidService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	requirementHandler := handler.NewRequirementHandler(requirementService)
	bidHandler := handler.NewBidHandler(bidService)
	orderHandler := handler.NewOrderHandler(orderService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	systemHandler := handler.NewSystemHandler(db.DB)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/health",
			"/api/v1/system/ping",
		},
		Logger: log,
	}))

	// Login and register attempts get a stricter per-IP limit.
	authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.RateLimitWindow)

	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.POST("/register", middleware.AuthRateLimit(authLimiter), authHandler.Register)
	authRoutes.POST("/login", middleware.AuthRateLimit(authLimiter), authHandler.Login)
	authRoutes.POST("/refresh", authHandler.RefreshToken)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/profile", authHandler.Profile)
	authRoutes.PUT("/profile", authHandler.UpdateProfile)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	requirementRoutes := router.NewDomainGroup("/requirements")
	requirementRoutes.POST("", middleware.RequireImporter(), requirementHandler.Create)
	requirementRoutes.GET("", requirementHandler.List)
	requirementRoutes.GET("/mine", middleware.RequireImporter(), requirementHandler.ListMine)
	requirementRoutes.GET("/:id", requirementHandler.Get)
	requirementRoutes.POST("/:id/close", middleware.RequireImporter(), requirementHandler.Close)
	requirementRoutes.POST("/:id/bids", middleware.RequireExporter(), bidHandler.Submit)
	requirementRoutes.GET("/:id/bids", bidHandler.ListRanked)

	bidRoutes := router.NewDomainGroup("/bids")
	bidRoutes.GET("/mine", middleware.RequireExporter(), bidHandler.ListMine)
	bidRoutes.GET("/:id", bidHandler.Get)
	bidRoutes.PUT("/:id", middleware.RequireExporter(), bidHandler.Update)
	bidRoutes.POST("/:id/withdraw", middleware.RequireExporter(), bidHandler.Withdraw)
	bidRoutes.POST("/:id/accept", middleware.RequireImporter(), bidHandler.Accept)

	orderRoutes := router.NewDomainGroup("/orders")
	orderRoutes.POST("", middleware.RequireImporter(), orderHandler.Create)
	orderRoutes.GET("", orderHandler.ListMine)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.POST("/:id/advance", orderHandler.AdvancePhase)
	orderRoutes.POST("/:id/phases/:phase/documents", orderHandler.AttachDocuments)
	orderRoutes.POST("/:id/cancel", orderHandler.Cancel)

	dashboardRoutes := router.NewDomainGroup("/dashboard")
	dashboardRoutes.GET("", dashboardHandler.Summary)

	systemRoutes := router.NewDomainGroup("/system")
	systemRoutes.GET("/health", systemHandler.Health)
	systemRoutes.GET("/ping", systemHandler.Ping)

	r.Register(authRoutes).
		Register(requirementRoutes).
		Register(bidRoutes).
		Register(orderRoutes).
		Register(dashboardRoutes).
		Register(systemRoutes)

	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
