// internal/core/ports/jobs.go
package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// TaskQueue enqueues background work. Enqueueing happens after commit; a
// failure to enqueue never undoes a committed invoice.
type TaskQueue interface {
	EnqueueExport(ctx context.Context, job *domain.ExportJob) error
	EnqueueReportRefresh(ctx context.Context) error
	EnqueueLowStockAlert(ctx context.Context, alert domain.LowStockAlert) error
}

// FileStorage stores generated files.
type FileStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error
}
