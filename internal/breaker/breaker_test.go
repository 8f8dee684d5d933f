package breaker

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func failing(calls *int) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		*calls++
		return "", errBoom
	}
}

func TestTripsAtThreshold(t *testing.T) {
	b := New("test", 3, time.Second)
	calls := 0
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		Execute(ctx, b, failing(&calls), "fallback")
	}
	if b.Open() {
		t.Fatal("breaker open before threshold")
	}

	Execute(ctx, b, failing(&calls), "fallback")
	if !b.Open() {
		t.Fatal("breaker not open at threshold")
	}
	if b.Failures() != 3 {
		t.Errorf("Failures = %d, want 3", b.Failures())
	}
}

func TestOpenShortCircuits(t *testing.T) {
	b := New("test", 1, time.Second)
	calls := 0
	ctx := context.Background()

	Execute(ctx, b, failing(&calls), "fallback")
	got := Execute(ctx, b, failing(&calls), "fallback")

	if got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
	if calls != 1 {
		t.Errorf("call ran %d times, want 1 (open breaker must not invoke)", calls)
	}
}

func TestSuccessResetsFailures(t *testing.T) {
	b := New("test", 3, time.Second)
	calls := 0
	ctx := context.Background()

	Execute(ctx, b, failing(&calls), "fallback")
	Execute(ctx, b, failing(&calls), "fallback")
	got := Execute(ctx, b, func(context.Context) (string, error) {
		return "real", nil
	}, "fallback")

	if got != "real" {
		t.Errorf("got %q, want real", got)
	}
	if b.Failures() != 0 {
		t.Errorf("Failures = %d after success, want 0", b.Failures())
	}
}

func TestTimeoutCountsAsFailure(t *testing.T) {
	b := New("test", 1, 20*time.Millisecond)
	ctx := context.Background()

	got := Execute(ctx, b, func(ctx context.Context) (string, error) {
		select {
		case <-time.After(5 * time.Second):
			return "too late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}, "fallback")

	if got != "fallback" {
		t.Errorf("got %q, want fallback on timeout", got)
	}
	if !b.Open() {
		t.Error("timeout did not count toward trip")
	}
}

func TestPermanentTripByDefault(t *testing.T) {
	b := New("test", 1, time.Second)
	calls := 0
	ctx := context.Background()

	Execute(ctx, b, failing(&calls), "fallback")
	time.Sleep(10 * time.Millisecond)
	Execute(ctx, b, failing(&calls), "fallback")

	if calls != 1 {
		t.Errorf("call ran %d times, want 1 (no cooldown means no probe)", calls)
	}
}

func TestProbeAfterCooldown(t *testing.T) {
	b := New("test", 1, time.Second).WithCooldown(10 * time.Millisecond)
	calls := 0
	ctx := context.Background()

	Execute(ctx, b, failing(&calls), "fallback")
	if !b.Open() {
		t.Fatal("breaker should be open")
	}

	time.Sleep(20 * time.Millisecond)
	got := Execute(ctx, b, func(context.Context) (string, error) {
		calls++
		return "recovered", nil
	}, "fallback")

	if got != "recovered" {
		t.Errorf("got %q, want recovered from probe", got)
	}
	if b.Open() {
		t.Error("successful probe should close the breaker")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestFailedProbeReopens(t *testing.T) {
	b := New("test", 1, time.Second).WithCooldown(10 * time.Millisecond)
	calls := 0
	ctx := context.Background()

	Execute(ctx, b, failing(&calls), "fallback")
	time.Sleep(20 * time.Millisecond)
	Execute(ctx, b, failing(&calls), "fallback")

	if calls != 2 {
		t.Fatalf("calls = %d, want 2 (one initial, one probe)", calls)
	}
	if !b.Open() {
		t.Error("failed probe should leave the breaker open")
	}

	// Open window restarts from the failed probe.
	Execute(ctx, b, failing(&calls), "fallback")
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (no second probe before cooldown)", calls)
	}
}
