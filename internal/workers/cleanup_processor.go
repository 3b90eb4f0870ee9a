// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/hibiken/asynq"

	"github.com/ammerola/stockflow-be/internal/core/ports"
)

const cleanupLockKey = "lock:cleanup:exports"

// CleanupProcessor removes expired export files
type CleanupProcessor struct {
	exports   ports.ExportService
	retention time.Duration
	locker    *redislock.Client
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(exports ports.ExportService, retention time.Duration, locker *redislock.Client, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		exports:   exports,
		retention: retention,
		locker:    locker,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupExports handles TypeCleanupExports
func (p *CleanupProcessor) CleanupExports(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "cleaning up exports",
		slog.Duration("retention", p.retention))

	return exclusive(ctx, p.locker, cleanupLockKey, 10*time.Minute, p.logger, func(ctx context.Context) error {
		deleted, err := p.exports.Cleanup(ctx, p.retention)
		if err != nil {
			return fmt.Errorf("failed to cleanup exports: %w", err)
		}

		p.logger.InfoContext(ctx, "exports cleaned up", slog.Int("files_deleted", deleted))
		return nil
	})
}
