package http

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/openorigin/traceability/pkg/logger"
)

// recordingResponseWriter buffers the response body so a successful
// response can be stored in the cache after it goes out.
type recordingResponseWriter struct {
	http.ResponseWriter
	statusCode int
	body       bytes.Buffer
}

func (rw *recordingResponseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *recordingResponseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// cached implements response caching with Redis for GET trace and report
// routes. Mutations invalidate the owning actor's keys.
func (h *TraceabilityHandler) cached(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip caching if Redis is not available
		if h.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		cacheKey := generateCacheKey(r)
		ctx := r.Context()

		// Try to get from cache
		cachedResponse, err := h.cache.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cachedResponse) > 0 {
			// Cache hit
			logger.Logger.Debug().
				Str("path", r.URL.Path).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.Write(cachedResponse)
			return
		}

		// Cache miss - execute request
		logger.Logger.Debug().
			Str("path", r.URL.Path).
			Str("cache_key", cacheKey).
			Msg("Cache miss")

		w.Header().Set("X-Cache", "MISS")
		rw := &recordingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		// Only successful responses are cached
		if rw.statusCode != http.StatusOK {
			return
		}

		if err := h.cache.Set(ctx, cacheKey, rw.body.Bytes(), h.cacheTTL).Err(); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("cache_key", cacheKey).
				Msg("Failed to cache response")
		} else {
			logger.Logger.Debug().
				Str("path", r.URL.Path).
				Str("cache_key", cacheKey).
				Dur("ttl", h.cacheTTL).
				Int("size", rw.body.Len()).
				Msg("Response cached")
		}
	}
}

// generateCacheKey generates a unique cache key for the request. Keys are
// prefixed with the actor so one actor's mutations never flush another
// actor's cache.
func generateCacheKey(r *http.Request) string {
	// Include: method, path, query params, and auth header
	keyComponents := fmt.Sprintf("%s:%s:%s:%s",
		r.Method,
		r.URL.Path,
		r.URL.RawQuery,
		r.Header.Get("Authorization"),
	)

	// Hash the key
	hash := sha256.Sum256([]byte(keyComponents))
	return fmt.Sprintf("trace-cache:%s:%s", mux.Vars(r)["actor_id"], hex.EncodeToString(hash[:]))
}

// invalidateActorCache removes every cached trace and report response for
// an actor after one of its entities changes.
func (h *TraceabilityHandler) invalidateActorCache(ctx context.Context, actorID string) {
	if h.cache == nil {
		return
	}

	if err := InvalidateCache(h.cache, "trace-cache:"+actorID+":*"); err != nil {
		logger.WithContext(ctx).Warn().
			Err(err).
			Str("actor_id", actorID).
			Msg("Failed to invalidate cache")
	}
}

// InvalidateCache invalidates cache for a specific pattern
func InvalidateCache(redisClient *redis.Client, pattern string) error {
	ctx := context.Background()

	// Find all keys matching pattern
	iter := redisClient.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return err
	}

	// Delete all matching keys
	if len(keys) > 0 {
		if err := redisClient.Del(ctx, keys...).Err(); err != nil {
			return err
		}

		logger.Logger.Info().
			Int("count", len(keys)).
			Str("pattern", pattern).
			Msg("Cache invalidated")
	}

	return nil
}
