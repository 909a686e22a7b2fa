package config

import "testing"

func TestLoadConfigParsesReplicaList(t *testing.T) {
	t.Setenv("TRACEABILITY_SERVICE_URLS", " http://a:8084 , http://b:8084/ ,")

	cfg := LoadConfig()

	want := []string{"http://a:8084", "http://b:8084"}
	if len(cfg.Upstream.Instances) != len(want) {
		t.Fatalf("expected %d replicas, got %v", len(want), cfg.Upstream.Instances)
	}
	for i, url := range want {
		if cfg.Upstream.Instances[i] != url {
			t.Fatalf("replica %d: expected %s, got %s", i, url, cfg.Upstream.Instances[i])
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("TRACEABILITY_SERVICE_URLS", "")
	t.Setenv("GATEWAY_PORT", "")

	cfg := LoadConfig()

	if cfg.Port != "8000" {
		t.Fatalf("expected default port 8000, got %s", cfg.Port)
	}
	if len(cfg.Upstream.Instances) != 1 || cfg.Upstream.Instances[0] != "http://localhost:8084" {
		t.Fatalf("unexpected default replicas: %v", cfg.Upstream.Instances)
	}
	if cfg.Upstream.Name != "traceability-service" {
		t.Fatalf("unexpected upstream name %s", cfg.Upstream.Name)
	}
}
