// internal/core/services/export.go
package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// ExportOptions configures where exports go and how long they live
type ExportOptions struct {
	KeyPrefix string
	URLExpiry time.Duration
	JobTTL    time.Duration
}

// ExportService builds purchase invoice workbooks, either streamed to the
// caller or generated in the background and uploaded to object storage.
type ExportService struct {
	store   ports.PurchaseInvoiceStore
	storage ports.FileStorage
	cache   ports.CacheRepository
	queue   ports.TaskQueue
	opts    ExportOptions
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.ExportService = (*ExportService)(nil)

// NewExportService creates an export service. storage, cache and queue are
// only needed for background exports.
func NewExportService(
	store ports.PurchaseInvoiceStore,
	storage ports.FileStorage,
	cache ports.CacheRepository,
	queue ports.TaskQueue,
	opts ExportOptions,
	logger *slog.Logger,
) *ExportService {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "exports"
	}
	if opts.URLExpiry <= 0 {
		opts.URLExpiry = time.Hour
	}
	if opts.JobTTL <= 0 {
		opts.JobTTL = opts.URLExpiry
	}
	return &ExportService{
		store:   store,
		storage: storage,
		cache:   cache,
		queue:   queue,
		opts:    opts,
		logger:  logger.With(slog.String("service", "export")),
		now:     time.Now,
	}
}

func (s *ExportService) loadAll(ctx context.Context) ([]domain.PurchaseInvoice, error) {
	result, err := s.store.List(ctx, ports.PurchaseFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase invoices: %w", err)
	}
	return result.Items, nil
}

// WritePurchaseWorkbook writes every purchase invoice as an xlsx workbook to w
func (s *ExportService) WritePurchaseWorkbook(ctx context.Context, w io.Writer) error {
	invoices, err := s.loadAll(ctx)
	if err != nil {
		return err
	}

	file, rows, err := buildPurchaseWorkbook(invoices)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.InfoContext(ctx, "purchase workbook written",
		slog.Int("invoices", len(invoices)),
		slog.Int("rows", rows))
	return nil
}

func (s *ExportService) jobKey(id string) string {
	return ports.BuildKey(ports.PrefixExport, id)
}

func (s *ExportService) saveJob(ctx context.Context, job *domain.ExportJob) error {
	if err := s.cache.SetWithTTL(ctx, s.jobKey(job.ID), job, s.opts.JobTTL); err != nil {
		return fmt.Errorf("failed to save export job: %w", err)
	}
	return nil
}

// Start records a queued export job and hands it to the worker
func (s *ExportService) Start(ctx context.Context, actor domain.Actor) (*domain.ExportJob, error) {
	if s.storage == nil || s.cache == nil || s.queue == nil {
		return nil, errors.New("background exports are not configured")
	}

	job := &domain.ExportJob{
		ID:          uuid.NewString(),
		Status:      domain.ExportQueued,
		RequestedBy: actor.UserID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.saveJob(ctx, job); err != nil {
		return nil, err
	}
	if err := s.queue.EnqueueExport(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to enqueue export: %w", err)
	}

	s.logger.InfoContext(ctx, "export queued",
		slog.String("job_id", job.ID),
		slog.Int64("user_id", actor.UserID))

	return job, nil
}

// ExportKey is the object key for an export created at t
func ExportKey(prefix string, t time.Time, id string) string {
	return path.Join(prefix, t.Format("2006/01/02"), id+".xlsx")
}

// Run builds and uploads the workbook for a queued job. The job record ends
// up done or failed; the returned error is the build or upload failure.
func (s *ExportService) Run(ctx context.Context, jobID string) (*domain.ExportJob, error) {
	job, err := s.Status(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.ExportDone {
		return job, nil
	}

	job.Status = domain.ExportRunning
	if err := s.saveJob(ctx, job); err != nil {
		return nil, err
	}

	runErr := s.build(ctx, job)

	finished := s.now().UTC()
	job.FinishedAt = &finished
	if runErr != nil {
		job.Status = domain.ExportFailed
		job.Error = runErr.Error()
	} else {
		job.Status = domain.ExportDone
	}
	if err := s.saveJob(ctx, job); err != nil {
		return nil, err
	}

	if runErr != nil {
		s.logger.ErrorContext(ctx, "export failed",
			slog.String("job_id", job.ID),
			slog.String("error", runErr.Error()))
		return job, runErr
	}

	s.logger.InfoContext(ctx, "export finished",
		slog.String("job_id", job.ID),
		slog.String("key", job.Key),
		slog.Int("rows", job.Rows))
	return job, nil
}

func (s *ExportService) build(ctx context.Context, job *domain.ExportJob) error {
	if s.storage == nil {
		return errors.New("export storage is not configured")
	}

	invoices, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	file, rows, err := buildPurchaseWorkbook(invoices)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	key := ExportKey(s.opts.KeyPrefix, job.CreatedAt, job.ID)
	if _, err := s.storage.Upload(ctx, key, &buf, XLSXContentType); err != nil {
		return err
	}
	url, err := s.storage.GetPresignedURL(ctx, key, s.opts.URLExpiry)
	if err != nil {
		return err
	}

	job.Key = key
	job.URL = url
	job.Rows = rows
	return nil
}

// Status returns the current state of an export job
func (s *ExportService) Status(ctx context.Context, jobID string) (*domain.ExportJob, error) {
	if s.cache == nil {
		return nil, errors.New("background exports are not configured")
	}

	var job domain.ExportJob
	if err := s.cache.Get(ctx, s.jobKey(jobID), &job); err != nil {
		if errors.Is(err, ports.ErrCacheMiss) {
			return nil, &domain.NotFoundError{Entity: domain.EntityExport, Key: jobID}
		}
		return nil, fmt.Errorf("failed to load export job: %w", err)
	}
	return &job, nil
}

// Cleanup deletes uploaded exports whose date path is older than retention
func (s *ExportService) Cleanup(ctx context.Context, retention time.Duration) (int, error) {
	if s.storage == nil {
		return 0, nil
	}

	keys, err := s.storage.List(ctx, s.opts.KeyPrefix+"/")
	if err != nil {
		return 0, err
	}

	cutoff := s.now().UTC().Add(-retention)
	deleted := 0
	for _, key := range keys {
		created, ok := exportDate(s.opts.KeyPrefix, key)
		if !ok || !created.Before(cutoff) {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired export",
				slog.String("key", key),
				slog.String("error", err.Error()))
			continue
		}
		deleted++
	}

	s.logger.InfoContext(ctx, "export cleanup finished",
		slog.Int("scanned", len(keys)),
		slog.Int("deleted", deleted))
	return deleted, nil
}

// exportDate recovers the day an export was created from its key. The whole
// day must be past the cutoff, so the end of that day is returned.
func exportDate(prefix, key string) (time.Time, bool) {
	rest := strings.TrimPrefix(key, prefix+"/")
	if rest == key || len(rest) < len("2006/01/02") {
		return time.Time{}, false
	}
	day, err := time.Parse("2006/01/02", rest[:len("2006/01/02")])
	if err != nil {
		return time.Time{}, false
	}
	return day.Add(24 * time.Hour), true
}
