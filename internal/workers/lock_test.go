// internal/workers/lock_test.go
package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stockflow-be/test/helpers"
)

func TestExclusive(t *testing.T) {
	rdb := helpers.SetupTestRedis(t)
	locker := redislock.New(rdb.Client)
	ctx := context.Background()

	t.Run("runs_and_releases", func(t *testing.T) {
		ran := false
		err := exclusive(ctx, locker, "lock:test", time.Minute, helpers.TestLogger(), func(context.Context) error {
			ran = true
			assert.True(t, rdb.Server.Exists("lock:test"))
			return nil
		})

		require.NoError(t, err)
		assert.True(t, ran)
		assert.False(t, rdb.Server.Exists("lock:test"))
	})

	t.Run("skips_when_held", func(t *testing.T) {
		held, err := locker.Obtain(ctx, "lock:held", time.Minute, nil)
		require.NoError(t, err)
		defer held.Release(ctx)

		ran := false
		err = exclusive(ctx, locker, "lock:held", time.Minute, helpers.TestLogger(), func(context.Context) error {
			ran = true
			return nil
		})

		require.NoError(t, err)
		assert.False(t, ran)
	})

	t.Run("returns_job_error", func(t *testing.T) {
		boom := errors.New("boom")
		err := exclusive(ctx, locker, "lock:fail", time.Minute, helpers.TestLogger(), func(context.Context) error {
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.False(t, rdb.Server.Exists("lock:fail"))
	})

	t.Run("nil_locker_runs_unguarded", func(t *testing.T) {
		ran := false
		err := exclusive(ctx, nil, "lock:none", time.Minute, helpers.TestLogger(), func(context.Context) error {
			ran = true
			return nil
		})

		require.NoError(t, err)
		assert.True(t, ran)
	})
}
