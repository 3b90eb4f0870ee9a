// internal/workers/processors_test.go
package workers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bsm/redislock"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/workers"
	"github.com/ammerola/stockflow-be/test/helpers"
	"github.com/ammerola/stockflow-be/test/mocks"
)

func exportTask(t *testing.T, jobID string) *asynq.Task {
	t.Helper()
	task, err := workers.NewExportTask(jobID)
	require.NoError(t, err)
	return task
}

func TestExportProcessor_ProcessExport(t *testing.T) {
	tests := []struct {
		name          string
		task          func(*testing.T) *asynq.Task
		setupMocks    func(*mocks.MockExportService)
		expectedError bool
		skipRetry     bool
	}{
		{
			name: "runs_job",
			task: func(t *testing.T) *asynq.Task { return exportTask(t, "job-1") },
			setupMocks: func(m *mocks.MockExportService) {
				m.EXPECT().Run(gomock.Any(), "job-1").
					Return(&domain.ExportJob{ID: "job-1", Status: domain.ExportDone, Rows: 4}, nil)
			},
		},
		{
			name: "expired_job_not_retried",
			task: func(t *testing.T) *asynq.Task { return exportTask(t, "job-2") },
			setupMocks: func(m *mocks.MockExportService) {
				m.EXPECT().Run(gomock.Any(), "job-2").
					Return(nil, &domain.NotFoundError{Entity: domain.EntityExport, Key: "job-2"})
			},
			expectedError: true,
			skipRetry:     true,
		},
		{
			name: "upload_failure_retried",
			task: func(t *testing.T) *asynq.Task { return exportTask(t, "job-3") },
			setupMocks: func(m *mocks.MockExportService) {
				m.EXPECT().Run(gomock.Any(), "job-3").
					Return(&domain.ExportJob{ID: "job-3", Status: domain.ExportFailed}, errors.New("timeout"))
			},
			expectedError: true,
		},
		{
			name: "malformed_payload",
			task: func(*testing.T) *asynq.Task {
				return asynq.NewTask(workers.TypeExportPurchases, []byte("{"))
			},
			setupMocks:    func(*mocks.MockExportService) {},
			expectedError: true,
			skipRetry:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			exports := mocks.NewMockExportService(ctrl)
			tt.setupMocks(exports)

			processor := workers.NewExportProcessor(exports, helpers.TestLogger())
			err := processor.ProcessExport(context.Background(), tt.task(t))

			if !tt.expectedError {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestReportProcessor_RefreshReports(t *testing.T) {
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportService(ctrl)
	reports.EXPECT().Warm(gomock.Any()).Return(nil)

	rdb := helpers.SetupTestRedis(t)
	processor := workers.NewReportProcessor(reports, redislock.New(rdb.Client), helpers.TestLogger())

	require.NoError(t, processor.RefreshReports(context.Background(), workers.NewReportRefreshTask()))
}

func TestReportProcessor_SkipsWhileAnotherWorkerWarms(t *testing.T) {
	ctrl := gomock.NewController(t)
	reports := mocks.NewMockReportService(ctrl)

	rdb := helpers.SetupTestRedis(t)
	locker := redislock.New(rdb.Client)
	held, err := locker.Obtain(context.Background(), "lock:reports:warm", time.Minute, nil)
	require.NoError(t, err)
	defer held.Release(context.Background())

	processor := workers.NewReportProcessor(reports, locker, helpers.TestLogger())

	require.NoError(t, processor.RefreshReports(context.Background(), workers.NewReportRefreshTask()))
}

func TestCleanupProcessor_CleanupExports(t *testing.T) {
	ctrl := gomock.NewController(t)
	exports := mocks.NewMockExportService(ctrl)
	exports.EXPECT().Cleanup(gomock.Any(), 48*time.Hour).Return(3, nil)

	processor := workers.NewCleanupProcessor(exports, 48*time.Hour, nil, helpers.TestLogger())

	require.NoError(t, processor.CleanupExports(context.Background(), workers.NewCleanupExportsTask()))
}

type recordingMailer struct {
	to, subject, body string
	calls             int
	err               error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.calls++
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func alertTask(t *testing.T, alert domain.LowStockAlert) *asynq.Task {
	t.Helper()
	task, err := workers.NewLowStockAlertTask(alert)
	require.NoError(t, err)
	return task
}

func TestNotificationProcessor_SendLowStockAlert(t *testing.T) {
	alert := domain.LowStockAlert{ProductID: 5, Stock: 20, Threshold: 100, InvoiceID: 31}
	product := helpers.CreateTestProduct(func(p *domain.Product) {
		p.ID = 5
		p.Stock = 18
	})

	t.Run("emails_current_stock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		products := mocks.NewMockProductService(ctrl)
		products.EXPECT().GetByID(gomock.Any(), int64(5)).Return(product, nil)

		mailer := &recordingMailer{}
		processor := workers.NewNotificationProcessor(products, mailer, "ops@example.test", helpers.TestLogger())

		require.NoError(t, processor.SendLowStockAlert(context.Background(), alertTask(t, alert)))
		assert.Equal(t, 1, mailer.calls)
		assert.Equal(t, "ops@example.test", mailer.to)
		assert.Contains(t, mailer.subject, "195/65R15")
		assert.Contains(t, mailer.body, "Current stock: 18")
		assert.Contains(t, mailer.body, "sales invoice #31")
	})

	t.Run("no_recipient_only_logs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		products := mocks.NewMockProductService(ctrl)
		products.EXPECT().GetByID(gomock.Any(), int64(5)).Return(product, nil)

		mailer := &recordingMailer{}
		processor := workers.NewNotificationProcessor(products, mailer, "", helpers.TestLogger())

		require.NoError(t, processor.SendLowStockAlert(context.Background(), alertTask(t, alert)))
		assert.Zero(t, mailer.calls)
	})

	t.Run("deleted_product_dropped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		products := mocks.NewMockProductService(ctrl)
		products.EXPECT().GetByID(gomock.Any(), int64(5)).Return(nil, domain.ProductNotFound(5))

		mailer := &recordingMailer{}
		processor := workers.NewNotificationProcessor(products, mailer, "ops@example.test", helpers.TestLogger())

		require.NoError(t, processor.SendLowStockAlert(context.Background(), alertTask(t, alert)))
		assert.Zero(t, mailer.calls)
	})

	t.Run("mail_failure_retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		products := mocks.NewMockProductService(ctrl)
		products.EXPECT().GetByID(gomock.Any(), int64(5)).Return(product, nil)

		mailer := &recordingMailer{err: errors.New("relay refused")}
		processor := workers.NewNotificationProcessor(products, mailer, "ops@example.test", helpers.TestLogger())

		err := processor.SendLowStockAlert(context.Background(), alertTask(t, alert))
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("malformed_payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		processor := workers.NewNotificationProcessor(mocks.NewMockProductService(ctrl),
			&recordingMailer{}, "ops@example.test", helpers.TestLogger())

		err := processor.SendLowStockAlert(context.Background(),
			asynq.NewTask(workers.TypeLowStockAlert, []byte("not json")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
