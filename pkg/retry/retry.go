// Package retry runs an operation with bounded attempts and exponential
// backoff. Single-attempt policies make it a plain passthrough, so callers
// can route every request through the same code path.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

const defaultBaseDelay = 100 * time.Millisecond

// Policy controls how many times an operation runs and how long to wait
// between attempts. The zero value means a single attempt.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Retryable reports whether an error is worth another attempt.
	// Nil means every error is retryable.
	Retryable func(error) bool
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.Retryable == nil {
		p.Retryable = func(error) bool { return true }
	}
	return p
}

// delay doubles the base per attempt and adds up to half of it as jitter.
func (p Policy) delay(attempt int) time.Duration {
	base := p.BaseDelay << attempt
	return base + time.Duration(rand.Int63n(int64(base/2)+1))
}

// Do runs fn until it succeeds, returns a non-retryable error, or the policy
// is exhausted. The context is honoured between attempts, not inside fn.
func Do(ctx context.Context, p Policy, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p = p.normalized()

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		err = fn()
		if err == nil || !p.Retryable(err) {
			return err
		}
		if attempt == p.MaxAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-time.After(p.delay(attempt)):
		}
	}
	return err
}
