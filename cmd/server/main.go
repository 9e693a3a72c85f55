package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/config"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/handlers"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/repositories/mongodb"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/services"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/cache"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/database"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/logger"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/payment"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/search"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/pkg/vision"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
		Colors: config.IsDevelopment(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer db.Close()

	if err := database.EnsureIndexes(db.Database); err != nil {
		log.WithError(err).Fatal("failed to ensure indexes")
	}

	var cacheService services.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			log.WithError(err).Warn("redis unavailable, continuing without cache")
		} else {
			defer redisCache.Close()
			cacheService = services.NewCacheService(redisCache)
		}
	}

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database, cacheService)
	discountRepo := mongodb.NewDiscountRepository(db.Database, cacheService)
	cartRepo := mongodb.NewCartRepository(db.Database, cacheService)
	paymentRepo := mongodb.NewPaymentRepository(db.Database, cacheService)
	productRepo := mongodb.NewProductRepository(db.Database, cacheService)
	sellerRepo := mongodb.NewSellerRepository(db.Database)

	// External clients
	searchClient := search.NewClient(cfg.Search)
	var analyzer vision.Analyzer
	if cfg.AI.GeminiAPIKey != "" {
		analyzer, err = vision.NewGeminiAnalyzer(context.Background(), cfg.AI)
		if err != nil {
			log.WithError(err).Warn("image analysis unavailable, fallback analysis will be served")
		} else {
			defer analyzer.Close()
		}
	}

	// Services
	discountService := services.NewDiscountService(discountRepo, userRepo, log)
	authService := services.NewAuthService(userRepo, discountService, cfg.Security, log)
	cartService := services.NewCartService(cartRepo, userRepo, log)
	gateway := payment.NewSimulator(0)
	paymentService := services.NewPaymentService(paymentRepo, userRepo, cartRepo, discountService, gateway, db, log)
	productService := services.NewProductService(productRepo, searchClient, analyzer, log)
	analyticsService := services.NewAnalyticsService(userRepo, sellerRepo, productRepo, log)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		cors.New(cors.Config{
			AllowOrigins:     cfg.Security.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	routes.Setup(engine, &routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Cart:      handlers.NewCartHandler(cartService),
		Discount:  handlers.NewDiscountHandler(discountService),
		Payment:   handlers.NewPaymentHandler(paymentService),
		Product:   handlers.NewProductHandler(productService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
	}, cfg.Security.JWTSecret)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler: engine,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
