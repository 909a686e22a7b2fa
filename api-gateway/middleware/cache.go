package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/openorigin/traceability/pkg/logger"
)

// CacheConfig holds edge cache configuration
type CacheConfig struct {
	DefaultTTL       time.Duration
	CacheableMethods []string
	CacheableStatus  []int
}

// DefaultCacheConfig returns the edge cache defaults. The TTL is short:
// the service keeps its own invalidating cache, the edge cache only
// absorbs bursts of identical trace and report reads. 404s are cached
// too, so repeated lookups of an unknown batch stay off the service.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		DefaultTTL:       30 * time.Second,
		CacheableMethods: []string{fiber.MethodGet, fiber.MethodHead},
		CacheableStatus:  []int{fiber.StatusOK, fiber.StatusNotFound},
	}
}

// CacheMiddleware implements response caching with Redis for API reads.
func CacheMiddleware(redisClient *redis.Client, config CacheConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Skip caching if Redis is not available
		if redisClient == nil {
			return c.Next()
		}

		// Only API reads are cached
		if !strings.HasPrefix(c.Path(), "/api/") {
			return c.Next()
		}
		if !isMethodCacheable(c.Method(), config.CacheableMethods) {
			return c.Next()
		}

		cacheKey := generateCacheKey(c)

		ctx := context.Background()
		cachedResponse, err := redisClient.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cachedResponse) > 0 {
			logger.Logger.Debug().
				Str("path", c.Path()).
				Str("cache_key", cacheKey).
				Msg("Edge cache hit")

			c.Set("X-Cache", "HIT")
			c.Set("Content-Type", "application/json")
			return c.Send(cachedResponse)
		}

		logger.Logger.Debug().
			Str("path", c.Path()).
			Str("cache_key", cacheKey).
			Msg("Edge cache miss")

		err = c.Next()

		statusCode := c.Response().StatusCode()
		if isStatusCacheable(statusCode, config.CacheableStatus) {
			responseBody := c.Response().Body()

			if cacheErr := redisClient.Set(ctx, cacheKey, responseBody, config.DefaultTTL).Err(); cacheErr != nil {
				logger.Logger.Warn().
					Err(cacheErr).
					Str("cache_key", cacheKey).
					Msg("Failed to cache response")
			} else {
				logger.Logger.Debug().
					Str("path", c.Path()).
					Str("cache_key", cacheKey).
					Dur("ttl", config.DefaultTTL).
					Int("size", len(responseBody)).
					Msg("Response cached at edge")
			}

			c.Set("X-Cache", "MISS")
		}

		return err
	}
}

// generateCacheKey hashes method, path, query, and the auth header, so
// responses are never shared across tokens.
func generateCacheKey(c *fiber.Ctx) string {
	keyComponents := fmt.Sprintf("%s:%s:%s:%s",
		c.Method(),
		c.Path(),
		string(c.Request().URI().QueryString()),
		c.Get("Authorization"),
	)

	hash := sha256.Sum256([]byte(keyComponents))
	return fmt.Sprintf("gw:cache:%s", hex.EncodeToString(hash[:]))
}

func isMethodCacheable(method string, cacheableMethods []string) bool {
	for _, m := range cacheableMethods {
		if m == method {
			return true
		}
	}
	return false
}

func isStatusCacheable(status int, cacheableStatus []int) bool {
	for _, s := range cacheableStatus {
		if s == status {
			return true
		}
	}
	return false
}
