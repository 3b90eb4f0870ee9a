// internal/core/ports/services.go
package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// SalesService is the application port for sales invoices.
type SalesService interface {
	Create(ctx context.Context, actor domain.Actor, input domain.InvoiceInput) (*domain.SalesInvoice, error)
	GetByID(ctx context.Context, id int64) (*domain.SalesInvoice, error)
	List(ctx context.Context, params ListParams) (*ListResult[domain.SalesInvoice], error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

// PurchaseService is the application port for purchase invoices and their settlement.
type PurchaseService interface {
	Create(ctx context.Context, actor domain.Actor, input domain.InvoiceInput) (*domain.PurchaseInvoice, error)
	Transition(ctx context.Context, actor domain.Actor, id int64, status domain.PurchaseStatus) (*domain.PurchaseInvoice, error)
	GetByID(ctx context.Context, id int64) (*domain.PurchaseInvoice, error)
	List(ctx context.Context, params ListParams) (*ListResult[domain.PurchaseInvoice], error)
	FindOrders(ctx context.Context, params ListParams) (*ListResult[domain.PurchaseInvoice], error)
	FindSettled(ctx context.Context, params ListParams) (*ListResult[domain.PurchaseInvoice], error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

// ProductService is the application port for products and their stock.
type ProductService interface {
	Create(ctx context.Context, actor domain.Actor, product *domain.Product) error
	Import(ctx context.Context, actor domain.Actor, products []domain.Product) (int, error)
	Update(ctx context.Context, id int64, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) (*ListResult[domain.Product], error)
	Delete(ctx context.Context, id int64) error
	CheckAvailability(ctx context.Context, id int64) (int, error)
	Movements(ctx context.Context, id int64, params ListParams) (*ListResult[domain.StockMovement], error)
}

// CategoryService is the application port for categories.
type CategoryService interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, id int64, category *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// PartyService is the application port for customers or suppliers.
type PartyService interface {
	Create(ctx context.Context, party *domain.Party) error
	Update(ctx context.Context, id int64, party *domain.Party) (*domain.Party, error)
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
	List(ctx context.Context, params ListParams) (*ListResult[domain.Party], error)
	Delete(ctx context.Context, id int64) error
}

// ReportService is the application port for dashboard aggregations.
type ReportService interface {
	Dashboard(ctx context.Context) (*domain.DashboardTotals, error)
	Monthly(ctx context.Context, year int) ([]domain.PeriodTotal, error)
	Yearly(ctx context.Context) ([]domain.PeriodTotal, error)
	TopProducts(ctx context.Context, limit int) ([]domain.ProductRank, error)
	TopCategories(ctx context.Context, limit int) ([]domain.CategoryRank, error)
	Invalidate(ctx context.Context) error
	Warm(ctx context.Context) error
}

// ExportService builds purchase invoice workbooks.
type ExportService interface {
	WritePurchaseWorkbook(ctx context.Context, w io.Writer) error
	Start(ctx context.Context, actor domain.Actor) (*domain.ExportJob, error)
	Run(ctx context.Context, jobID string) (*domain.ExportJob, error)
	Status(ctx context.Context, jobID string) (*domain.ExportJob, error)
	// Cleanup deletes stored exports older than retention and returns how many went.
	Cleanup(ctx context.Context, retention time.Duration) (int, error)
}
