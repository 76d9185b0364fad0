// Package resilience provides bounded retries with pluggable backoff
package resilience

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Backoff returns the wait before the retry that follows the given failed attempt (0-based).
type Backoff interface {
	Delay(attempt int) time.Duration
}

// BackoffFunc adapts a function to Backoff.
type BackoffFunc func(attempt int) time.Duration

func (f BackoffFunc) Delay(attempt int) time.Duration { return f(attempt) }

// Fixed waits the same duration between every attempt.
func Fixed(d time.Duration) Backoff {
	return BackoffFunc(func(int) time.Duration { return d })
}

// Exponential doubles base per attempt, capped at maxDelay.
func Exponential(base, maxDelay time.Duration) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		delay := base << min(attempt, 16) // Cap shift to prevent overflow
		if maxDelay > 0 && delay > maxDelay {
			delay = maxDelay
		}
		return delay
	})
}

// Jittered spreads b by +/- factor/2 of each delay.
func Jittered(b Backoff, factor float64) Backoff {
	return BackoffFunc(func(attempt int) time.Duration {
		delay := b.Delay(attempt)
		jitter := float64(delay) * factor * (rand.Float64() - 0.5)
		return time.Duration(float64(delay) + jitter)
	})
}

const defaultJitterFactor = 0.2

// ParseBackoff builds a Backoff by name: fixed, exponential or jittered.
func ParseBackoff(name string, delay, maxDelay time.Duration) (Backoff, error) {
	switch name {
	case "", "fixed":
		return Fixed(delay), nil
	case "exponential":
		return Exponential(delay, maxDelay), nil
	case "jittered":
		return Jittered(Exponential(delay, maxDelay), defaultJitterFactor), nil
	default:
		return nil, fmt.Errorf("unknown backoff %q", name)
	}
}
