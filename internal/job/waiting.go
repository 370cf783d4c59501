package job

import (
	"context"
	"time"
)

// Sleep suspends the calling goroutine for d, or until ctx is done.
// It returns ctx.Err() when the wait was cut short and nil otherwise.
func Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		// If the time is up, we just return nil.
		return nil
	}
}
