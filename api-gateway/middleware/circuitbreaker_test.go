package middleware

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stokq/stock-ledger/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("gateway-test", true)
	logger.SetLevel("error")
	os.Exit(m.Run())
}

func TestCircuitOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker("ledger", 3, time.Minute)
	failing := func() error { return errors.New("backend down") }

	for i := 0; i < 3; i++ {
		if err := cb.Call(failing); err == nil {
			t.Fatal("expected failure to propagate")
		}
	}

	if cb.GetState() != StateOpen {
		t.Fatalf("expected open state, got %s", cb.GetState())
	}

	// Calls are rejected without invoking the function
	invoked := false
	err := cb.Call(func() error {
		invoked = true
		return nil
	})
	if err == nil {
		t.Error("expected rejection while open")
	}
	if invoked {
		t.Error("function must not run while circuit is open")
	}
}

func TestCircuitRecoversThroughHalfOpen(t *testing.T) {
	cb := NewCircuitBreaker("ledger", 1, 10*time.Millisecond)

	if err := cb.Call(func() error { return errors.New("boom") }); err == nil {
		t.Fatal("expected failure")
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("expected open state, got %s", cb.GetState())
	}

	time.Sleep(20 * time.Millisecond)

	// Three successes in half-open close the circuit
	for i := 0; i < 3; i++ {
		if err := cb.Call(func() error { return nil }); err != nil {
			t.Fatalf("success %d rejected: %v", i, err)
		}
	}

	if cb.GetState() != StateClosed {
		t.Errorf("expected closed state after recovery, got %s", cb.GetState())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker("ledger", 1, 10*time.Millisecond)

	cb.Call(func() error { return errors.New("boom") })
	time.Sleep(20 * time.Millisecond)

	cb.Call(func() error { return errors.New("still down") })

	if cb.GetState() != StateOpen {
		t.Errorf("expected reopened circuit, got %s", cb.GetState())
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker("ledger", 2, time.Minute)

	cb.Call(func() error { return errors.New("boom") })
	cb.Call(func() error { return nil })
	cb.Call(func() error { return errors.New("boom") })

	if cb.GetState() != StateClosed {
		t.Errorf("interleaved success should keep the circuit closed, got %s", cb.GetState())
	}
}

func TestDetermineServiceFromPath(t *testing.T) {
	cases := map[string]string{
		"/api/items":                "ledger",
		"/api/items/5/movements":    "ledger",
		"/api/movements":            "ledger",
		"/api/stats":                "ledger",
		"/health":                   "",
		"/gateway/stats":            "",
		"/swagger/index.html":       "",
		"/api/unknown":              "",
	}

	for path, want := range cases {
		if got := determineServiceFromPath(path); got != want {
			t.Errorf("determineServiceFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
