// internal/workers/export_processor.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// ExportProcessor builds queued purchase exports
type ExportProcessor struct {
	exports ports.ExportService
	logger  *slog.Logger
}

// NewExportProcessor creates a new export processor
func NewExportProcessor(exports ports.ExportService, logger *slog.Logger) *ExportProcessor {
	return &ExportProcessor{
		exports: exports,
		logger:  logger.With(slog.String("processor", "export")),
	}
}

// ProcessExport handles TypeExportPurchases
func (p *ExportProcessor) ProcessExport(ctx context.Context, t *asynq.Task) error {
	var payload ExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing export", slog.String("job_id", payload.JobID))

	job, err := p.exports.Run(ctx, payload.JobID)
	if err != nil {
		// The job record expired; nobody is waiting for the file.
		if errors.Is(err, domain.ErrNotFound) {
			p.logger.WarnContext(ctx, "export job no longer exists",
				slog.String("job_id", payload.JobID))
			return fmt.Errorf("export %s: %v: %w", payload.JobID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("export %s failed: %w", payload.JobID, err)
	}

	p.logger.InfoContext(ctx, "export completed",
		slog.String("job_id", job.ID),
		slog.String("status", string(job.Status)),
		slog.Int("rows", job.Rows))
	return nil
}
