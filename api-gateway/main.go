package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/openorigin/traceability/api-gateway/config"
	"github.com/openorigin/traceability/api-gateway/loadbalancer"
	"github.com/openorigin/traceability/api-gateway/middleware"
	"github.com/openorigin/traceability/api-gateway/routes"
	"github.com/openorigin/traceability/pkg/logger"
	"github.com/openorigin/traceability/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "traceability-gateway")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting traceability gateway")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Initialize Redis for rate limiting and the edge cache
	redisAddr := getEnv("REDIS_ADDR", "localhost:6379")
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("redis_addr", redisAddr).
			Msg("Failed to connect to Redis - rate limiting and edge caching will be disabled")
		redisClient = nil
	} else {
		logger.Logger.Info().
			Str("redis_addr", redisAddr).
			Msg("Connected to Redis for rate limiting and edge caching")
	}

	// Load configuration
	cfg := config.LoadConfig()

	// Replica pool and the upstream circuit breaker
	pool := loadbalancer.NewPool(cfg.Upstream.Instances, 30*time.Second)
	breaker := middleware.NewCircuitBreaker(cfg.Upstream.Name, 5, 30*time.Second)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Traceability Gateway",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	setupMiddleware(app, redisClient)

	// Setup routes
	routes.SetupRoutes(app, cfg, pool, breaker, redisClient)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Logger.Info().
			Str("addr", addr).
			Strs("replicas", cfg.Upstream.Instances).
			Msg("Gateway listening")

		if err := app.Listen(addr); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start gateway")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down gateway...")

	if err := app.Shutdown(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Gateway forced to shutdown")
	}

	logger.Logger.Info().Msg("Gateway stopped")
}

// setupMiddleware configures global middleware
func setupMiddleware(app *fiber.App, redisClient *redis.Client) {
	// Recover from panics
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	// Request ID (must be first)
	app.Use(requestid.New())

	// OpenTelemetry tracing (after request ID)
	app.Use(middleware.TracingMiddleware())

	// Structured logging (after tracing for the trace ID)
	app.Use(middleware.StructuredLoggingMiddleware())

	// Edge response caching (if Redis available)
	if redisClient != nil {
		cacheConfig := middleware.DefaultCacheConfig()
		app.Use(middleware.CacheMiddleware(redisClient, cacheConfig))
		logger.Logger.Info().
			Dur("ttl", cacheConfig.DefaultTTL).
			Msg("Edge response caching enabled (GET/HEAD only)")
	}

	// Basic fiber logger for quick debugging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	// IP rate limiting (if Redis available); per-actor limits are
	// applied on the authenticated routes
	if redisClient != nil {
		logger.Logger.Info().Msg("Rate limiting enabled (100 req/min per IP)")
		app.Use(middleware.GlobalRateLimiter(redisClient))
	} else {
		logger.Logger.Warn().Msg("Rate limiting disabled (Redis not available)")
	}

	// CORS. Credentials cannot be combined with a wildcard origin.
	allowOrigins := getEnv("CORS_ALLOWED_ORIGINS", "*")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-Id, traceparent, tracestate",
		AllowCredentials: allowOrigins != "*",
		ExposeHeaders:    "X-Request-Id, X-Trace-Id, X-Cache, X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset",
		MaxAge:           86400,
	}))

	// Compression
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":      err.Error(),
		"statusCode": code,
		"path":       c.Path(),
		"method":     c.Method(),
		"requestId":  c.Get("X-Request-Id"),
	})
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
