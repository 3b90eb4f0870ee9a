// internal/adapters/db/report_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// reportRepository runs aggregate reads. Purchases only count once paid.
type reportRepository struct {
	q      ports.Querier
	logger *slog.Logger
}

var _ ports.ReportRepository = (*reportRepository)(nil)

// NewReportRepository creates a new report repository
func NewReportRepository(q ports.Querier, logger *slog.Logger) ports.ReportRepository {
	return &reportRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "report")),
	}
}

// DashboardTotals sums every invoice and counts products below the threshold
func (r *reportRepository) DashboardTotals(ctx context.Context, lowStockThreshold int) (*domain.DashboardTotals, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(total), 0) FROM sales_invoices),
			(SELECT COALESCE(SUM(total), 0) FROM purchase_invoices),
			(SELECT COUNT(*) FROM products WHERE stock < $1)`

	totals := &domain.DashboardTotals{}
	err := r.q.QueryRow(ctx, query, lowStockThreshold).Scan(
		&totals.CustomerInvoiceTotal, &totals.SupplierInvoiceTotal, &totals.StockAlert,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard totals: %w", err)
	}
	return totals, nil
}

// MonthlyTotals returns twelve rows for year, zero-filled
func (r *reportRepository) MonthlyTotals(ctx context.Context, year int) ([]domain.PeriodTotal, error) {
	query := `
		WITH months AS (
			SELECT generate_series(1, 12) AS month
		), sales AS (
			SELECT EXTRACT(MONTH FROM date)::int AS month, SUM(total) AS total
			FROM sales_invoices
			WHERE EXTRACT(YEAR FROM date)::int = $1
			GROUP BY 1
		), purchases AS (
			SELECT EXTRACT(MONTH FROM date)::int AS month, SUM(total) AS total
			FROM purchase_invoices
			WHERE status = 'paid' AND EXTRACT(YEAR FROM date)::int = $1
			GROUP BY 1
		)
		SELECT m.month, COALESCE(s.total, 0), COALESCE(p.total, 0)
		FROM months m
		LEFT JOIN sales s ON s.month = m.month
		LEFT JOIN purchases p ON p.month = m.month
		ORDER BY m.month`

	rows, err := r.q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	totals := make([]domain.PeriodTotal, 0, 12)
	for rows.Next() {
		t := domain.PeriodTotal{Year: year}
		if err := rows.Scan(&t.Month, &t.Sales, &t.Purchases); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return totals, nil
}

// YearlyTotals returns one row per year that has any invoice
func (r *reportRepository) YearlyTotals(ctx context.Context) ([]domain.PeriodTotal, error) {
	query := `
		WITH sales AS (
			SELECT EXTRACT(YEAR FROM date)::int AS year, SUM(total) AS total
			FROM sales_invoices GROUP BY 1
		), purchases AS (
			SELECT EXTRACT(YEAR FROM date)::int AS year, SUM(total) AS total
			FROM purchase_invoices WHERE status = 'paid' GROUP BY 1
		)
		SELECT COALESCE(s.year, p.year) AS year, COALESCE(s.total, 0), COALESCE(p.total, 0)
		FROM sales s
		FULL OUTER JOIN purchases p ON p.year = s.year
		ORDER BY year`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.PeriodTotal{}
	for rows.Next() {
		var t domain.PeriodTotal
		if err := rows.Scan(&t.Year, &t.Sales, &t.Purchases); err != nil {
			return nil, fmt.Errorf("failed to scan yearly total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return totals, nil
}

// TopProducts ranks products by units sold
func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]domain.ProductRank, error) {
	query := `
		SELECT p.id, p.description, p.size, SUM(i.quantity)::bigint AS qty, SUM(i.quantity * i.price)
		FROM sales_invoice_items i
		JOIN products p ON p.id = i.product_id
		GROUP BY p.id, p.description, p.size
		ORDER BY qty DESC, p.id
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	ranks := []domain.ProductRank{}
	for rows.Next() {
		var pr domain.ProductRank
		if err := rows.Scan(&pr.ProductID, &pr.Description, &pr.Size, &pr.Quantity, &pr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan product rank: %w", err)
		}
		ranks = append(ranks, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return ranks, nil
}

// TopCategories ranks categories by units sold
func (r *reportRepository) TopCategories(ctx context.Context, limit int) ([]domain.CategoryRank, error) {
	query := `
		SELECT c.id, c.name, SUM(i.quantity)::bigint AS qty, SUM(i.quantity * i.price)
		FROM sales_invoice_items i
		JOIN products p ON p.id = i.product_id
		JOIN categories c ON c.id = p.category_id
		GROUP BY c.id, c.name
		ORDER BY qty DESC, c.id
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	defer rows.Close()

	ranks := []domain.CategoryRank{}
	for rows.Next() {
		var cr domain.CategoryRank
		if err := rows.Scan(&cr.CategoryID, &cr.Name, &cr.Quantity, &cr.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan category rank: %w", err)
		}
		ranks = append(ranks, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return ranks, nil
}
