package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/openorigin/traceability/api-gateway/config"
	"github.com/openorigin/traceability/api-gateway/health"
	"github.com/openorigin/traceability/api-gateway/loadbalancer"
	"github.com/openorigin/traceability/api-gateway/middleware"
	"github.com/openorigin/traceability/api-gateway/proxy"
)

// RouteDefinition maps a path prefix onto the upstream pool
type RouteDefinition struct {
	Prefix      string
	Description string
	RequireAuth bool
}

// Routes lists everything the gateway proxies. The traceability API is
// actor-scoped, so /api always goes through edge auth; the service docs
// stay public.
var Routes = []RouteDefinition{
	{
		Prefix:      "/api",
		Description: "Traceability API (actors, batches, events, traces, recall reports)",
		RequireAuth: true,
	},
	{
		Prefix:      "/swagger",
		Description: "Service API documentation",
		RequireAuth: false,
	},
}

// SetupRoutes wires the health endpoints, the stats endpoint, and the
// proxied routes.
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, pool *loadbalancer.Pool, breaker *middleware.CircuitBreaker, redisClient *redis.Client) {
	reverseProxy := proxy.NewReverseProxy(cfg.Upstream, pool)
	healthChecker := health.NewHealthChecker(cfg.Upstream)

	// Gateway quick health check (no replica probes)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (probes the replicas)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAll(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Per-replica health detail
	app.Get("/health/replicas", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		return c.JSON(healthChecker.CheckAll(ctx))
	})

	// Routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Traceability Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Pool and breaker introspection, admin tokens only
	app.Get("/gateway/stats", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"load_balancer":   pool.GetStats(),
			"circuit_breaker": breaker.GetStats(),
		})
	})

	for _, route := range Routes {
		registerProxyRoute(app, route, reverseProxy, breaker, redisClient)
	}
}

// registerProxyRoute registers all HTTP methods for a proxied prefix
func registerProxyRoute(app *fiber.App, route RouteDefinition, reverseProxy *proxy.ReverseProxy, breaker *middleware.CircuitBreaker, redisClient *redis.Client) {
	handler := func(c *fiber.Ctx) error {
		return reverseProxy.Forward(c)
	}

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
		if redisClient != nil {
			middlewares = append(middlewares, middleware.ActorRateLimiter(redisClient))
		}
	}
	middlewares = append(middlewares, middleware.BreakerMiddleware(breaker))

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	app.All(route.Prefix, append(middlewares, handler)...)
}
