// Package retry provides the bounded-attempt policy shared by the
// extraction and enrichment calls.
package retry

import (
	"context"
	"time"
)

// Policy bounds how often a transient call is repeated and how long to wait
// between attempts.
type Policy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// Do invokes fn up to MaxAttempts times, sleeping Backoff between failed
// attempts. It returns the last error when every attempt fails, or the
// context error if the context is cancelled while waiting.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var last error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if last = fn(ctx); last == nil {
			return nil
		}

		if i == attempts-1 || p.Backoff <= 0 {
			continue
		}
		timer := time.NewTimer(p.Backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
	return last
}
