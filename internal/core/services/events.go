// internal/core/services/events.go
package services

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// lowStockAlertWindow suppresses repeated alerts for the same product.
const lowStockAlertWindow = time.Hour

// InvoiceEvents runs the side effects of a committed invoice mutation.
// Every method logs and swallows failures: the invoice is already committed.
// A nil *InvoiceEvents does nothing.
type InvoiceEvents struct {
	cache     ports.CacheRepository
	queue     ports.TaskQueue
	threshold int
	logger    *slog.Logger
}

// NewInvoiceEvents creates the post-commit hooks. cache and queue may be nil.
func NewInvoiceEvents(cache ports.CacheRepository, queue ports.TaskQueue, lowStockThreshold int, logger *slog.Logger) *InvoiceEvents {
	return &InvoiceEvents{
		cache:     cache,
		queue:     queue,
		threshold: lowStockThreshold,
		logger:    logger.With(slog.String("component", "invoice_events")),
	}
}

// ReportsStale drops cached reports and schedules a refresh. It runs after
// any committed change that moves a report figure.
func (e *InvoiceEvents) ReportsStale(ctx context.Context) {
	if e == nil {
		return
	}

	if e.cache != nil {
		if err := e.cache.DeletePattern(ctx, ports.BuildKey(ports.PrefixReports, "*")); err != nil {
			e.logger.WarnContext(ctx, "failed to invalidate report cache",
				slog.String("error", err.Error()))
		}
	}

	if e.queue != nil {
		if err := e.queue.EnqueueReportRefresh(ctx); err != nil {
			e.logger.WarnContext(ctx, "failed to enqueue report refresh",
				slog.String("error", err.Error()))
		}
	}
}

// StockSold runs after a sale. remaining maps product id to stock after the sale.
func (e *InvoiceEvents) StockSold(ctx context.Context, invoiceID int64, remaining map[int64]int) {
	if e == nil {
		return
	}

	e.ReportsStale(ctx)

	if e.queue == nil {
		return
	}
	for productID, stock := range remaining {
		if stock >= e.threshold {
			continue
		}
		if !e.claimAlert(ctx, productID) {
			continue
		}

		alert := domain.LowStockAlert{
			ProductID: productID,
			Stock:     stock,
			Threshold: e.threshold,
			InvoiceID: invoiceID,
		}
		if err := e.queue.EnqueueLowStockAlert(ctx, alert); err != nil {
			e.logger.WarnContext(ctx, "failed to enqueue low stock alert",
				slog.Int64("product_id", productID),
				slog.String("error", err.Error()))
		}
	}
}

// claimAlert returns false when an alert for the product went out recently.
// Without a cache every low-stock sale alerts.
func (e *InvoiceEvents) claimAlert(ctx context.Context, productID int64) bool {
	if e.cache == nil {
		return true
	}

	key := ports.BuildKey(ports.PrefixLowStock, strconv.FormatInt(productID, 10))
	ok, err := e.cache.SetNX(ctx, key, time.Now().UTC(), lowStockAlertWindow)
	if err != nil {
		e.logger.WarnContext(ctx, "low stock dedupe unavailable",
			slog.String("error", err.Error()))
		return true
	}
	return ok
}
