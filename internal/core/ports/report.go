// internal/core/ports/report.go
package ports

import (
	"context"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// ReportRepository runs read-only aggregations over committed invoices.
type ReportRepository interface {
	DashboardTotals(ctx context.Context, lowStockThreshold int) (*domain.DashboardTotals, error)
	MonthlyTotals(ctx context.Context, year int) ([]domain.PeriodTotal, error)
	YearlyTotals(ctx context.Context) ([]domain.PeriodTotal, error)
	TopProducts(ctx context.Context, limit int) ([]domain.ProductRank, error)
	TopCategories(ctx context.Context, limit int) ([]domain.CategoryRank, error)
}
