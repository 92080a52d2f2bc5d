package main

import (
	"net/http"
	"os"

	"dinedash-api/cache"
	"dinedash-api/config"
	"dinedash-api/handlers"
	"dinedash-api/middleware"
	"dinedash-api/notify"
	"dinedash-api/payments"
	"dinedash-api/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Load()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := config.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Fatal("failed to provision admin account", zap.Error(err))
	}

	// Redis is optional: without it rating lookups just hit the database.
	var ratings *cache.RatingCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.InitRedis(cfg.RedisAddr, logger)
		if err != nil {
			logger.Warn("redis unavailable, rating cache disabled", zap.Error(err))
		} else {
			ratings = cache.NewRatingCache(rdb, logger)
		}
	}

	provider := payments.NewStripeProvider(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	notifier := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.SenderEmail, logger)

	h := handlers.New(db, logger, provider, notifier, ratings, []byte(cfg.JWTSecret))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(corsMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "DineDash Reserve API",
		})
	})
	r.GET("/metrics", middleware.PrometheusHandler())

	routes.SetupRoutes(r, h)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 1 && origins[0] == "*"
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Stripe-Signature")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
