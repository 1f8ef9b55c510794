package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stokq/stock-ledger/api-gateway/config"
	"github.com/stokq/stock-ledger/api-gateway/health"
	"github.com/stokq/stock-ledger/api-gateway/middleware"
	"github.com/stokq/stock-ledger/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth  bool
	RequireAdmin bool
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	{
		Prefix:       "/api/items",
		ServiceName:  "ledger",
		Description:  "Item catalog and stock movements",
		RequireAuth:  true,
		RequireAdmin: false,
	},
	{
		Prefix:       "/api/movements",
		ServiceName:  "ledger",
		Description:  "Movement journal (read only)",
		RequireAuth:  true,
		RequireAdmin: false,
	},
	{
		Prefix:       "/api/stats",
		ServiceName:  "ledger",
		Description:  "Ledger aggregates",
		RequireAuth:  true,
		RequireAdmin: true,
	},
	{
		Prefix:       "/swagger",
		ServiceName:  "ledger",
		Description:  "API documentation",
		RequireAuth:  false,
		RequireAdmin: false,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks the ledger service)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		return c.JSON(healthChecker.CheckAllServices(ctx))
	})

	// Circuit breaker and load balancer stats
	app.Get("/gateway/stats", func(c *fiber.Ctx) error {
		lbStats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			lbStats[name] = lb.GetStats()
		}

		return c.JSON(fiber.Map{
			"circuit_breakers": cbManager.GetAllStats(),
			"load_balancers":   lbStats,
		})
	})

	// Manual cache flush (admin only)
	app.Delete("/gateway/cache", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *fiber.Ctx) error {
		if redisClient == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Cache is not available",
			})
		}

		if err := middleware.InvalidateCache(redisClient, "cache:*"); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"message": "Cache flushed",
		})
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Stock Ledger API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Movement writes get a stricter per-user budget than reads
	var itemWriteLimiter fiber.Handler
	if redisClient != nil {
		itemWriteLimiter = middleware.WriteOnly(middleware.MovementRateLimiter(redisClient))
	}

	for _, route := range Routes {
		var extra []fiber.Handler
		if route.Prefix == "/api/items" && itemWriteLimiter != nil {
			extra = append(extra, itemWriteLimiter)
		}
		registerServiceRoutes(app, route, reverseProxy, extra)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, extra []fiber.Handler) {
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler

	if route.RequireAdmin {
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}
	middlewares = append(middlewares, extra...)

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
