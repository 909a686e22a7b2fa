package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/openorigin/traceability/api-gateway/config"
	"github.com/openorigin/traceability/pkg/logger"
)

// ReplicaHealth is the probe result for one traceability replica.
type ReplicaHealth struct {
	URL       string        `json:"url"`
	Status    string        `json:"status"` // healthy, unhealthy
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth aggregates replica probes. Status is healthy when every
// replica answers, degraded when some do, unhealthy when none do.
type GatewayHealth struct {
	Gateway  string                   `json:"gateway"`
	Status   string                   `json:"status"`
	Replicas map[string]ReplicaHealth `json:"replicas"`
	Uptime   float64                  `json:"uptime_seconds"`
}

// HealthChecker probes the traceability replicas behind the gateway.
type HealthChecker struct {
	upstream  config.UpstreamConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(upstream config.UpstreamConfig) *HealthChecker {
	return &HealthChecker{
		upstream: upstream,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		startTime: time.Now(),
	}
}

// CheckReplica probes a single replica's health endpoint.
func (h *HealthChecker) CheckReplica(ctx context.Context, baseURL string) ReplicaHealth {
	start := time.Now()

	result := ReplicaHealth{
		URL:       baseURL,
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+h.upstream.HealthCheck, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to create request: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Failed to reach replica: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)

	if resp.StatusCode == http.StatusOK {
		result.Status = "healthy"
	} else {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("Unexpected status code: %d", resp.StatusCode)
	}

	return result
}

// CheckAll probes every replica concurrently.
func (h *HealthChecker) CheckAll(ctx context.Context) GatewayHealth {
	replicas := make(map[string]ReplicaHealth)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, baseURL := range h.upstream.Instances {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			probe := h.CheckReplica(ctx, url)

			mu.Lock()
			replicas[url] = probe
			mu.Unlock()

			if probe.Status == "healthy" {
				logger.Logger.Debug().
					Str("replica", url).
					Dur("latency", probe.Latency).
					Msg("Replica health check")
			} else {
				logger.Logger.Warn().
					Str("replica", url).
					Str("error", probe.Error).
					Msg("Replica health check failed")
			}
		}(baseURL)
	}

	wg.Wait()

	return GatewayHealth{
		Gateway:  "traceability-gateway",
		Status:   overallStatus(replicas),
		Replicas: replicas,
		Uptime:   time.Since(h.startTime).Seconds(),
	}
}

func overallStatus(replicas map[string]ReplicaHealth) string {
	healthy := 0
	for _, r := range replicas {
		if r.Status == "healthy" {
			healthy++
		}
	}

	switch {
	case healthy == len(replicas):
		return "healthy"
	case healthy > 0:
		return "degraded"
	default:
		return "unhealthy"
	}
}

// QuickCheck reports the gateway process itself without probing replicas.
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"gateway":   "traceability-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}
