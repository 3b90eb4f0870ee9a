// internal/core/domain/report.go
package domain

import "github.com/shopspring/decimal"

// DashboardTotals is the headline summary shown on the dashboard.
type DashboardTotals struct {
	CustomerInvoiceTotal decimal.Decimal `json:"customerInvoiceTotal"`
	SupplierInvoiceTotal decimal.Decimal `json:"supplierInvoiceTotal"`
	StockAlert           int64           `json:"stockAlert"`
}

// PeriodTotal is a revenue/spend rollup for one month or year.
type PeriodTotal struct {
	Year      int             `json:"year"`
	Month     int             `json:"month,omitempty"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
}

// ProductRank is a product ordered by units sold.
type ProductRank struct {
	ProductID   int64           `json:"product_id"`
	Description string          `json:"description"`
	Size        string          `json:"size"`
	Quantity    int64           `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// CategoryRank is a category ordered by units sold.
type CategoryRank struct {
	CategoryID int64           `json:"category_id"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	Revenue    decimal.Decimal `json:"revenue"`
}
