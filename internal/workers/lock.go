// internal/workers/lock.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
)

// exclusive runs fn while holding key, so that only one worker instance runs
// a periodic job at a time. A held lock means the job is skipped, not failed.
// A nil locker runs fn unguarded.
func exclusive(ctx context.Context, locker *redislock.Client, key string, ttl time.Duration, logger *slog.Logger, fn func(context.Context) error) error {
	if locker == nil {
		return fn(ctx)
	}

	lock, err := locker.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		logger.InfoContext(ctx, "job already running elsewhere, skipping", slog.String("lock", key))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.WarnContext(ctx, "failed to release lock",
				slog.String("lock", key),
				slog.String("error", err.Error()))
		}
	}()

	return fn(ctx)
}
