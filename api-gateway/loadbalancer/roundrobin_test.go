package loadbalancer

import (
	"testing"
	"time"
)

func TestPoolRoundRobin(t *testing.T) {
	pool := NewPool([]string{"http://a", "http://b", "http://c"}, time.Minute)

	want := []string{"http://a", "http://b", "http://c", "http://a"}
	for i, expected := range want {
		if got := pool.Next(); got != expected {
			t.Fatalf("pick %d: expected %s, got %s", i, expected, got)
		}
	}
}

func TestPoolSkipsDownReplicas(t *testing.T) {
	pool := NewPool([]string{"http://a", "http://b"}, time.Minute)

	pool.MarkDown("http://a")
	for i := 0; i < 4; i++ {
		if got := pool.Next(); got != "http://b" {
			t.Fatalf("expected only b while a is down, got %s", got)
		}
	}

	stats := pool.GetStats()
	down := stats["down"].([]string)
	if len(down) != 1 || down[0] != "http://a" {
		t.Fatalf("unexpected down list: %v", down)
	}
}

func TestPoolExhausted(t *testing.T) {
	pool := NewPool([]string{"http://a"}, time.Minute)

	pool.MarkDown("http://a")
	if got := pool.Next(); got != "" {
		t.Fatalf("expected empty pick when every replica is down, got %s", got)
	}
}

func TestPoolCooldownExpires(t *testing.T) {
	pool := NewPool([]string{"http://a"}, 10*time.Millisecond)

	pool.MarkDown("http://a")
	time.Sleep(20 * time.Millisecond)

	if got := pool.Next(); got != "http://a" {
		t.Fatalf("expected the replica back in rotation, got %q", got)
	}
}

func TestPoolDefaultsWhenEmpty(t *testing.T) {
	pool := NewPool(nil, time.Minute)

	if got := pool.Next(); got != "http://localhost:8084" {
		t.Fatalf("expected the default replica, got %q", got)
	}
}
