package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func testConfig() Config {
	return Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             30 * time.Millisecond,
		HalfOpenMaxRequests: 2,
	}
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func tripOpen(t *testing.T, cb *CircuitBreaker) {
	t.Helper()
	for i := 0; i < testConfig().FailureThreshold; i++ {
		if err := cb.Execute(fail); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: got %v, want the function's error", i+1, err)
		}
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v after threshold failures, want open", cb.GetState())
	}
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New(testConfig())
	tripOpen(t, cb)

	if err := cb.Execute(succeed); !errors.Is(err, ErrOpen) {
		t.Fatalf("open breaker should reject calls, got %v", err)
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 10; i++ {
		cb.Execute(fail)
		cb.Execute(fail)
		cb.Execute(succeed)
	}
	if cb.GetState() != StateClosed {
		t.Fatal("interleaved successes should keep the breaker closed")
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := New(testConfig())
	tripOpen(t, cb)

	time.Sleep(testConfig().Timeout + 10*time.Millisecond)

	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("probe after the timeout should run, got %v", err)
	}
	if cb.GetState() != StateHalfOpen {
		t.Fatalf("state = %v after one probe success, want half-open", cb.GetState())
	}
	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("second probe failed: %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Fatalf("state = %v after success threshold, want closed", cb.GetState())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New(testConfig())
	tripOpen(t, cb)

	time.Sleep(testConfig().Timeout + 10*time.Millisecond)

	if err := cb.Execute(fail); !errors.Is(err, errBoom) {
		t.Fatalf("probe should run, got %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Fatalf("state = %v after a failed probe, want open again", cb.GetState())
	}
	if err := cb.Execute(succeed); !errors.Is(err, ErrOpen) {
		t.Fatalf("reopened breaker should reject calls, got %v", err)
	}
}

func TestReset(t *testing.T) {
	cb := New(testConfig())
	tripOpen(t, cb)

	cb.Reset()
	if cb.GetState() != StateClosed {
		t.Fatal("reset should close the breaker")
	}
	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("call after reset failed: %v", err)
	}
}
