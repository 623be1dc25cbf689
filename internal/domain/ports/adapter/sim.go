package adapter

import (
	"context"
	"time"
)

// RandomSource abstracts the randomness behind simulated behavior
// (processing jitter, failure injection, voice draws, response pool
// selection) so tests can force deterministic outcomes.
type RandomSource interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// Sleeper abstracts timer-based waits (simulated processing delays and
// retry backoff). Implementations must return early with ctx.Err() when
// the context is cancelled.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
