package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	eventapp "github.com/eventnexus/backend/internal/application/event"
	identityapp "github.com/eventnexus/backend/internal/application/identity"
	orderapp "github.com/eventnexus/backend/internal/application/order"
	"github.com/eventnexus/backend/internal/infrastructure/auth"
	"github.com/eventnexus/backend/internal/infrastructure/cache"
	"github.com/eventnexus/backend/internal/infrastructure/config"
	"github.com/eventnexus/backend/internal/infrastructure/logger"
	"github.com/eventnexus/backend/internal/infrastructure/notification"
	"github.com/eventnexus/backend/internal/infrastructure/payment"
	"github.com/eventnexus/backend/internal/infrastructure/persistence"
	"github.com/eventnexus/backend/internal/interfaces/http/handler"
	"github.com/eventnexus/backend/internal/interfaces/http/middleware"
	"github.com/eventnexus/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting EventNexus backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	eventRepo := persistence.NewGormEventRepository(db.DB)
	revenueRepo := persistence.NewGormRevenueRepository(db.DB)
	sponsorRepo := persistence.NewGormSponsorRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Payment gateway
	gateway, err := payment.NewRazorpayAdapter(&payment.RazorpayConfig{
		KeyID:         cfg.Razorpay.KeyID,
		KeySecret:     cfg.Razorpay.KeySecret,
		WebhookSecret: cfg.Razorpay.WebhookSecret,
		BaseURL:       cfg.Razorpay.BaseURL,
	})
	if err != nil {
		log.Fatal("Failed to configure payment gateway", zap.Error(err))
	}

	// Notifications
	var notifier orderapp.Notifier
	if cfg.Resend.Enabled {
		mailer := notification.NewResendMailer(cfg.Resend)
		notifier = notification.NewEmailNotifier(mailer, userRepo, eventRepo, log)
	} else {
		log.Info("Email notifications disabled")
		notifier = orderapp.NopNotifier{}
	}

	// Webhook idempotency store (Redis when configured, in-memory otherwise)
	idempotencyStore := cache.NewIdempotencyStore(cfg.Redis, log)

	// Session token verification
	verifier := auth.NewTokenVerifier(cfg.Auth)

	// Application services
	checkoutService := orderapp.NewCheckoutService(txScope, eventRepo, gateway, cfg.Reservation.TTL, log)
	settlementService := orderapp.NewSettlementService(txScope, notifier, log)
	eventService := eventapp.NewEventService(eventRepo, revenueRepo, log)
	revenueService := eventapp.NewRevenueService(revenueRepo, log)
	userService := identityapp.NewUserService(userRepo, eventRepo, sponsorRepo, log)

	// Handlers
	eventHandler := handler.NewEventHandler(eventService)
	orderHandler := handler.NewOrderHandler(checkoutService)
	revenueHandler := handler.NewRevenueHandler(revenueService)
	userHandler := handler.NewUserHandler(userService)
	razorpayWebhookHandler := handler.NewRazorpayWebhookHandler(
		settlementService, idempotencyStore, cfg.Razorpay.WebhookSecret, log)
	userWebhookHandler := handler.NewUserWebhookHandler(
		userService, cfg.Auth.WebhookSecret, log)

	// HTTP engine and global middleware
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(corsConfig),
	)

	engine.GET("/health", healthHandler(db))

	sessionAuth := middleware.SessionAuth(verifier, userRepo, log)

	// Routes
	eventRoutes := router.NewDomainGroup("/events")
	eventRoutes.GET("", eventHandler.List)
	eventRoutes.GET("/:id", eventHandler.GetByID)
	eventRoutes.POST("", sessionAuth, eventHandler.Create)
	eventRoutes.PUT("/:id", sessionAuth, eventHandler.Update)
	eventRoutes.DELETE("/:id", sessionAuth, eventHandler.Delete)

	orderRoutes := router.NewDomainGroup("/orders")
	orderRoutes.Use(sessionAuth)
	orderRoutes.POST("/checkout", orderHandler.Checkout)
	orderRoutes.GET("/:gateway_order_id/status", orderHandler.Status)

	revenueRoutes := router.NewDomainGroup("/revenues")
	revenueRoutes.Use(sessionAuth)
	revenueRoutes.GET("", revenueHandler.List)
	revenueRoutes.GET("/:event_id", revenueHandler.GetByEvent)
	revenueRoutes.PUT("/:event_id/payout", revenueHandler.RecordPayout)

	userRoutes := router.NewDomainGroup("/users")
	userRoutes.GET("/me", sessionAuth, userHandler.Me)
	userRoutes.GET("/:id/profile", userHandler.Profile)

	// Webhooks authenticate with body signatures, not sessions
	webhookRoutes := router.NewDomainGroup("/webhooks")
	webhookRoutes.POST("/razorpay", razorpayWebhookHandler.Handle)
	webhookRoutes.POST("/users", userWebhookHandler.Handle)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(eventRoutes).
		Register(orderRoutes).
		Register(revenueRoutes).
		Register(userRoutes).
		Register(webhookRoutes).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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

// healthHandler reports process and database liveness
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
