package sim

import (
	"context"
	"time"

	"sonix-engine/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.Sleeper = (*TimerSleeper)(nil)

// TimerSleeper waits on a real timer while respecting ctx.
type TimerSleeper struct{}

func NewTimerSleeper() *TimerSleeper { return &TimerSleeper{} }

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
