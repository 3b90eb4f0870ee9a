// internal/core/domain/jobs.go
package domain

import "time"

// ExportStatus is the state of an asynchronous export.
type ExportStatus string

const (
	ExportQueued  ExportStatus = "queued"
	ExportRunning ExportStatus = "running"
	ExportDone    ExportStatus = "done"
	ExportFailed  ExportStatus = "failed"
)

// ExportJob tracks one asynchronous purchase invoice export.
type ExportJob struct {
	ID          string       `json:"id"`
	Status      ExportStatus `json:"status"`
	Key         string       `json:"key,omitempty"`
	URL         string       `json:"url,omitempty"`
	Rows        int          `json:"rows"`
	Error       string       `json:"error,omitempty"`
	RequestedBy int64        `json:"requested_by"`
	CreatedAt   time.Time    `json:"created_at"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
}

// LowStockAlert is raised after a sale leaves a product under the alert threshold.
type LowStockAlert struct {
	ProductID int64 `json:"product_id"`
	Stock     int   `json:"stock"`
	Threshold int   `json:"threshold"`
	InvoiceID int64 `json:"invoice_id"`
}
