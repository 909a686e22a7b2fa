package config

import (
	"os"
	"strings"
	"time"
)

// UpstreamConfig describes the traceability service pool behind the
// gateway. Instances are base URLs of interchangeable replicas.
type UpstreamConfig struct {
	Name        string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Upstream UpstreamConfig
}

// LoadConfig loads the gateway configuration from the environment.
// TRACEABILITY_SERVICE_URLS takes a comma-separated replica list.
func LoadConfig() *GatewayConfig {
	urls := strings.Split(getEnv("TRACEABILITY_SERVICE_URLS", "http://localhost:8084"), ",")

	instances := make([]string, 0, len(urls))
	for _, u := range urls {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			instances = append(instances, strings.TrimSuffix(trimmed, "/"))
		}
	}
	if len(instances) == 0 {
		instances = []string{"http://localhost:8084"}
	}

	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Upstream: UpstreamConfig{
			Name:        "traceability-service",
			Instances:   instances,
			Timeout:     30 * time.Second,
			HealthCheck: "/health",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
