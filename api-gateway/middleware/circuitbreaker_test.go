package middleware

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker("upstream", 3, time.Minute)

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		if err := cb.Call(func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: expected the call error, got %v", i, err)
		}
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("expected open after 3 failures, got %s", cb.GetState())
	}

	ran := false
	err := cb.Call(func() error { ran = true; return nil })
	if err == nil {
		t.Fatal("expected the open breaker to reject the call")
	}
	if ran {
		t.Fatal("the function must not run while the breaker is open")
	}
}

func TestCircuitBreakerRecovers(t *testing.T) {
	cb := NewCircuitBreaker("upstream", 1, 10*time.Millisecond)

	cb.Call(func() error { return errors.New("boom") })
	if cb.GetState() != StateOpen {
		t.Fatalf("expected open, got %s", cb.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	// Three successes in half-open close the circuit.
	for i := 0; i < 3; i++ {
		if err := cb.Call(func() error { return nil }); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if cb.GetState() != StateClosed {
		t.Fatalf("expected closed after recovery, got %s", cb.GetState())
	}
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker("upstream", 1, 10*time.Millisecond)

	cb.Call(func() error { return errors.New("boom") })
	time.Sleep(20 * time.Millisecond)

	cb.Call(func() error { return errors.New("still down") })
	if cb.GetState() != StateOpen {
		t.Fatalf("expected reopened, got %s", cb.GetState())
	}
}

func TestCircuitBreakerIgnoresScatteredFailures(t *testing.T) {
	cb := NewCircuitBreaker("upstream", 2, time.Minute)

	cb.Call(func() error { return errors.New("boom") })
	cb.Call(func() error { return nil })
	cb.Call(func() error { return errors.New("boom") })

	if cb.GetState() != StateClosed {
		t.Fatalf("expected closed while failures are not consecutive, got %s", cb.GetState())
	}
}
