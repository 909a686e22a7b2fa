package proxy

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openorigin/traceability/api-gateway/config"
	"github.com/openorigin/traceability/api-gateway/loadbalancer"
)

func testUpstream() config.UpstreamConfig {
	return config.UpstreamConfig{
		Name:        "traceability-service",
		Timeout:     2 * time.Second,
		HealthCheck: "/health",
	}
}

func TestForwardProxiesToReplica(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/actors/farm-1/batches" || r.URL.RawQuery != "status=active" {
			t.Errorf("unexpected upstream request: %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		if r.Header.Get("X-Forwarded-For") == "" {
			t.Error("expected X-Forwarded-For to be set")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	}))
	defer backend.Close()

	pool := loadbalancer.NewPool([]string{backend.URL}, time.Minute)
	rp := NewReverseProxy(testUpstream(), pool)

	app := fiber.New()
	app.All("/api/*", rp.Forward)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/actors/farm-1/batches?status=active", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"success":true}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestForwardRetriesNextReplica(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer backend.Close()

	// A closed server keeps its address but refuses connections.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	pool := loadbalancer.NewPool([]string{dead.URL, backend.URL}, time.Minute)
	rp := NewReverseProxy(testUpstream(), pool)

	app := fiber.New()
	app.All("/api/*", rp.Forward)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected the live replica to answer, got %d", resp.StatusCode)
	}

	// The dead replica is cooling down, so the next pick skips it.
	if got := pool.Next(); got != backend.URL {
		t.Fatalf("expected the dead replica out of rotation, got %s", got)
	}
}

func TestForwardWhenPoolExhausted(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	pool := loadbalancer.NewPool([]string{dead.URL}, time.Minute)
	rp := NewReverseProxy(testUpstream(), pool)

	app := fiber.New()
	app.All("/api/*", rp.Forward)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadGateway {
		t.Fatalf("expected 502 when no replica is reachable, got %d", resp.StatusCode)
	}
}
