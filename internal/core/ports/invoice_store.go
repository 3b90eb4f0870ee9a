// internal/core/ports/invoice_store.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// SalesInvoiceStore persists sales invoice headers and their line items.
type SalesInvoiceStore interface {
	// Insert writes the header and all items, filling generated ids and timestamps.
	Insert(ctx context.Context, invoice *domain.SalesInvoice) error
	FindByID(ctx context.Context, id int64) (*domain.SalesInvoice, error)
	List(ctx context.Context, params ListParams) (*ListResult[domain.SalesInvoice], error)
	Delete(ctx context.Context, id int64) error
}

// PurchaseFilter narrows purchase invoice listings.
type PurchaseFilter struct {
	Statuses []domain.PurchaseStatus
	ListParams
}

// PurchaseInvoiceStore persists purchase invoices.
type PurchaseInvoiceStore interface {
	Insert(ctx context.Context, invoice *domain.PurchaseInvoice) error
	FindByID(ctx context.Context, id int64) (*domain.PurchaseInvoice, error)
	// FindForUpdate loads the invoice and locks its row for the rest of the transaction.
	FindForUpdate(ctx context.Context, id int64) (*domain.PurchaseInvoice, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PurchaseStatus, settledAt *time.Time) error
	List(ctx context.Context, filter PurchaseFilter) (*ListResult[domain.PurchaseInvoice], error)
	Delete(ctx context.Context, id int64) error
}
