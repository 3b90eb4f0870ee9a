// internal/workers/report_processor.go
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

const reportLockKey = "lock:reports:warm"

// ReportProcessor keeps the dashboard cache warm
type ReportProcessor struct {
	reports ports.ReportService
	locker  *redislock.Client
	logger  *slog.Logger
}

// NewReportProcessor creates a new report processor. locker may be nil.
func NewReportProcessor(reports ports.ReportService, locker *redislock.Client, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		reports: reports,
		locker:  locker,
		logger:  logger.With(slog.String("processor", "reports")),
	}
}

// RefreshReports handles TypeReportRefresh
func (p *ReportProcessor) RefreshReports(ctx context.Context, t *asynq.Task) error {
	return exclusive(ctx, p.locker, reportLockKey, 2*time.Minute, p.logger, func(ctx context.Context) error {
		if err := p.reports.Warm(ctx); err != nil {
			return fmt.Errorf("failed to refresh reports: %w", err)
		}
		return nil
	})
}
