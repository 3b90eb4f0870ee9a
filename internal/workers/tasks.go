// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// Task types
const (
	TypeExportPurchases = "export:purchases"
	TypeReportRefresh   = "report:refresh"
	TypeLowStockAlert   = "stock:low_alert"
	TypeCleanupExports  = "cleanup:exports"
)

// Queue names, matching ASYNQ_QUEUES
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ExportPayload identifies the export job a task builds
type ExportPayload struct {
	JobID string `json:"job_id"`
}

// NewExportTask creates the task that builds and uploads an export
func NewExportTask(jobID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ExportPayload{JobID: jobID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}
	return asynq.NewTask(TypeExportPurchases, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	), nil
}

// NewReportRefreshTask creates the task that warms the report cache. Bursts
// of invoice writes collapse into one refresh per window.
func NewReportRefreshTask() *asynq.Task {
	return asynq.NewTask(TypeReportRefresh, nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
		asynq.Unique(30*time.Second),
	)
}

// NewLowStockAlertTask creates the alert task for one product
func NewLowStockAlertTask(alert domain.LowStockAlert) (*asynq.Task, error) {
	payload, err := json.Marshal(alert)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal alert payload: %w", err)
	}
	return asynq.NewTask(TypeLowStockAlert, payload,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(5),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewCleanupExportsTask creates the periodic export cleanup task
func NewCleanupExportsTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupExports, nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
	)
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskQueue implements ports.TaskQueue on an asynq client
type TaskQueue struct {
	client enqueuer
	logger *slog.Logger
}

var _ ports.TaskQueue = (*TaskQueue)(nil)

// NewTaskQueue creates a task queue
func NewTaskQueue(client *asynq.Client, logger *slog.Logger) *TaskQueue {
	return newTaskQueue(client, logger)
}

func newTaskQueue(client enqueuer, logger *slog.Logger) *TaskQueue {
	return &TaskQueue{
		client: client,
		logger: logger.With(slog.String("component", "task_queue")),
	}
}

func (q *TaskQueue) enqueue(ctx context.Context, task *asynq.Task) error {
	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}

	q.logger.DebugContext(ctx, "task enqueued",
		slog.String("type", task.Type()),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
	return nil
}

// EnqueueExport schedules a background export
func (q *TaskQueue) EnqueueExport(ctx context.Context, job *domain.ExportJob) error {
	task, err := NewExportTask(job.ID)
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task)
}

// EnqueueReportRefresh schedules a cache warm. A refresh already waiting
// covers this one.
func (q *TaskQueue) EnqueueReportRefresh(ctx context.Context) error {
	err := q.enqueue(ctx, NewReportRefreshTask())
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// EnqueueLowStockAlert schedules a low stock notification
func (q *TaskQueue) EnqueueLowStockAlert(ctx context.Context, alert domain.LowStockAlert) error {
	task, err := NewLowStockAlertTask(alert)
	if err != nil {
		return err
	}
	return q.enqueue(ctx, task)
}
