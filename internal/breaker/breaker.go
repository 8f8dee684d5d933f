// Package breaker wraps unreliable call sites with a per-site circuit
// breaker: consecutive failures past a threshold stop further calls, and
// every failure path degrades to a caller-supplied fallback instead of an
// error.
package breaker

import (
	"context"
	"log"
	"sync"
	"time"
)

// #region breaker

// Breaker guards one call site. By default a tripped breaker stays open
// for the rest of the session; set Cooldown to allow a single probe call
// after the open period elapses.
type Breaker struct {
	name      string
	threshold int
	timeout   time.Duration
	cooldown  time.Duration // 0 means a trip is permanent

	mu       sync.Mutex
	failures int
	open     bool
	openedAt time.Time
	probing  bool
}

// New creates a breaker that trips after threshold consecutive failures.
// Each guarded call is bounded by timeout.
func New(name string, threshold int, timeout time.Duration) *Breaker {
	return &Breaker{name: name, threshold: threshold, timeout: timeout}
}

// WithCooldown allows one probe call after d has passed since the trip.
// A successful probe closes the breaker; a failed probe re-opens it.
func (b *Breaker) WithCooldown(d time.Duration) *Breaker {
	b.cooldown = d
	return b
}

// Open reports whether the breaker is currently rejecting calls.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open && !b.probeDue()
}

// Failures returns the consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

// Name returns the call-site name used in logs.
func (b *Breaker) Name() string { return b.name }

// probeDue must be called with the lock held.
func (b *Breaker) probeDue() bool {
	return b.cooldown > 0 && !b.probing && time.Since(b.openedAt) >= b.cooldown
}

func (b *Breaker) admit() (probe bool, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return false, true
	}
	if b.probeDue() {
		b.probing = true
		return true, true
	}
	return false, false
}

func (b *Breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open {
		log.Printf("[BREAKER] %s probe succeeded, closing", b.name)
	}
	b.failures = 0
	b.open = false
	b.probing = false
}

func (b *Breaker) recordFailure(probe bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
	if probe {
		b.openedAt = time.Now()
		log.Printf("[BREAKER] %s probe failed, staying open", b.name)
		return
	}
	b.failures++
	if b.failures >= b.threshold && !b.open {
		b.open = true
		b.openedAt = time.Now()
		log.Printf("[BREAKER] %s tripped after %d consecutive failures", b.name, b.failures)
	}
}

// #endregion breaker

// #region execute

type callResult[T any] struct {
	value T
	err   error
}

// Execute runs call under the breaker. When the breaker is open, or the
// call fails or exceeds the timeout, fallback is returned instead; Execute
// itself never returns an error. A call still running at timeout keeps
// running but its eventual result is discarded.
func Execute[T any](ctx context.Context, b *Breaker, call func(context.Context) (T, error), fallback T) T {
	probe, ok := b.admit()
	if !ok {
		log.Printf("[BREAKER] %s open, using fallback", b.name)
		return fallback
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	// Buffered so the goroutine can finish after we stop waiting.
	done := make(chan callResult[T], 1)
	go func() {
		v, err := call(callCtx)
		done <- callResult[T]{value: v, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			b.recordFailure(probe)
			log.Printf("[BREAKER] %s failed: %v, using fallback", b.name, res.err)
			return fallback
		}
		b.recordSuccess()
		return res.value
	case <-callCtx.Done():
		b.recordFailure(probe)
		log.Printf("[BREAKER] %s timed out after %s, using fallback", b.name, b.timeout)
		return fallback
	}
}

// #endregion execute
