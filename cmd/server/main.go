package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/michealzs/storemicroservice/internal/application/checkout"
	"github.com/michealzs/storemicroservice/internal/application/importer"
	appstore "github.com/michealzs/storemicroservice/internal/application/store"
	catalogapp "github.com/michealzs/storemicroservice/internal/application/catalog"
	"github.com/michealzs/storemicroservice/internal/domain/shared"
	"github.com/michealzs/storemicroservice/internal/infrastructure/auth"
	"github.com/michealzs/storemicroservice/internal/infrastructure/cache"
	"github.com/michealzs/storemicroservice/internal/infrastructure/config"
	"github.com/michealzs/storemicroservice/internal/infrastructure/ecommerce"
	"github.com/michealzs/storemicroservice/internal/infrastructure/logger"
	"github.com/michealzs/storemicroservice/internal/infrastructure/payment"
	"github.com/michealzs/storemicroservice/internal/infrastructure/persistence"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/handler"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/middleware"
	"github.com/michealzs/storemicroservice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	database, err := persistence.NewDatabaseWithLogger(&cfg.Database, logger.NewGormLogger(log, gormLogLevel))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()
	db := database.DB

	// Repositories
	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	couponRepo := persistence.NewGormCouponRepository(db)
	reviewRepo := persistence.NewGormReviewRepository(db)
	refundRepo := persistence.NewGormRefundRepository(db)
	returnRepo := persistence.NewGormReturnRepository(db)

	// Idempotency store for checkout confirmation. Redis keeps replay
	// protection across instances; a single-node deployment without Redis
	// falls back to the in-process store.
	var idempotency shared.IdempotencyStore
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory idempotency store", zap.Error(err))
		idempotency = cache.NewInMemoryIdempotencyStore()
	} else {
		idempotency = cache.NewRedisIdempotencyStore(redisClient, "")
		defer redisClient.Close()
	}
	cancelPing()

	// External adapters
	stripeAdapter, err := payment.NewStripeAdapter(&cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to initialize payment provider", zap.Error(err))
	}
	shopifyAdapter := ecommerce.NewShopifyAdapter(&cfg.Shopify)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	productService := catalogapp.NewProductService(productRepo, categoryRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	cartService := appstore.NewCartService(orderRepo, productRepo, couponRepo, log)
	orderService := appstore.NewOrderService(orderRepo, refundRepo, returnRepo, log)
	couponService := appstore.NewCouponService(couponRepo, orderRepo)
	reviewService := appstore.NewReviewService(reviewRepo, productRepo)

	checkoutOpts := checkout.DefaultOptions()
	checkoutOpts.SuccessURL = cfg.Stripe.SuccessURL
	checkoutOpts.CancelURL = cfg.Stripe.CancelURL
	checkoutService := checkout.NewService(orderRepo, stripeAdapter, idempotency, checkoutOpts, log)

	importService := importer.NewService(shopifyAdapter, persistence.NewGormCatalogTransactionScope(db), log)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	// Handlers
	productHandler := handler.NewProductHandler(productService)
	categoryHandler := handler.NewCategoryHandler(categoryService, productService)
	cartHandler := handler.NewCartHandler(cartService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	orderHandler := handler.NewOrderHandler(orderService)
	couponHandler := handler.NewCouponHandler(couponService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	importHandler := handler.NewImportHandler(importService)
	systemHandler := handler.NewSystemHandler(db, categoryService, cartService)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler)
	r.Register(productHandler)
	r.Register(categoryHandler)
	r.Register(orderHandler)
	r.Register(reviewHandler)

	// Cart and checkout need a scope identity; the scope middleware issues
	// session keys to guests and keys authenticated users by user id.
	r.Register(router.RegistrarFunc(func(rg *gin.RouterGroup) {
		scoped := rg.Group("")
		scoped.Use(middleware.OptionalJWTAuth(jwtService), middleware.CartScope())
		cartHandler.RegisterRoutes(scoped)
		checkoutHandler.RegisterRoutes(scoped)
		systemHandler.RegisterScopedRoutes(scoped)
	}))

	// Order history requires an authenticated user
	r.Register(router.RegistrarFunc(func(rg *gin.RouterGroup) {
		user := rg.Group("")
		user.Use(middleware.JWTAuth(jwtService))
		orderHandler.RegisterUserRoutes(user)
		reviewHandler.RegisterUserRoutes(user)
	}))

	// Management surface
	r.Register(router.RegistrarFunc(func(rg *gin.RouterGroup) {
		admin := rg.Group("/admin")
		admin.Use(middleware.JWTAuth(jwtService))
		productHandler.RegisterAdminRoutes(admin)
		categoryHandler.RegisterAdminRoutes(admin)
		orderHandler.RegisterAdminRoutes(admin)
		couponHandler.RegisterAdminRoutes(admin)
		reviewHandler.RegisterAdminRoutes(admin)
		importHandler.RegisterAdminRoutes(admin)
	}))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Abandoned-cart reaper
	reaperCtx, stopReaper := context.WithCancel(context.Background())
	go runCartReaper(reaperCtx, cartService, cfg.Cart, log)

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	stopReaper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// runCartReaper periodically deletes empty carts that have not been touched
// within the abandonment window.
func runCartReaper(ctx context.Context, carts *appstore.CartService, cfg config.CartConfig, log *zap.Logger) {
	if cfg.PurgeInterval <= 0 || cfg.AbandonAfter <= 0 {
		log.Info("Cart reaper disabled")
		return
	}

	ticker := time.NewTicker(cfg.PurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := carts.PurgeAbandoned(ctx, cfg.AbandonAfter)
			if err != nil {
				log.Error("Cart purge failed", zap.Error(err))
				continue
			}
			if purged > 0 {
				log.Info("Purged abandoned carts", zap.Int64("count", purged))
			}
		}
	}
}
