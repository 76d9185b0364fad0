package resilience

import (
	"context"
	"time"
)

// Retry configuration constants
const (
	DefaultAttempts = 3
	DefaultDelay    = 5 * time.Second
)

// Policy holds retry settings.
type Policy struct {
	// Attempts is the total number of tries including the first one.
	Attempts    int
	Backoff     Backoff
	IsRetryable func(error) bool
	// OnRetry is called before each wait.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Do runs fn until it succeeds, returns a non-retryable error, or attempts run out.
// The last error is returned. Waiting honours ctx.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context, attempt int) error) error {
	p = p.withDefaults()
	var lastErr error

	for attempt := 0; attempt < p.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = fn(ctx, attempt); lastErr == nil {
			return nil
		}

		if !p.IsRetryable(lastErr) || attempt == p.Attempts-1 {
			return lastErr
		}

		delay := p.Backoff.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}

func (p Policy) withDefaults() Policy {
	if p.Attempts <= 0 {
		p.Attempts = DefaultAttempts
	}
	if p.Backoff == nil {
		p.Backoff = Fixed(DefaultDelay)
	}
	if p.IsRetryable == nil {
		p.IsRetryable = func(error) bool { return true }
	}
	return p
}
