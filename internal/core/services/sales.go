// internal/core/services/sales.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// SalesService records sales invoices and takes their quantities out of stock
type SalesService struct {
	uow    ports.UnitOfWork
	store  ports.SalesInvoiceStore
	events *InvoiceEvents
	logger *slog.Logger
}

var _ ports.SalesService = (*SalesService)(nil)

// NewSalesService creates a new sales service
func NewSalesService(uow ports.UnitOfWork, store ports.SalesInvoiceStore, events *InvoiceEvents, logger *slog.Logger) *SalesService {
	return &SalesService{
		uow:    uow,
		store:  store,
		events: events,
		logger: logger.With(slog.String("service", "sales")),
	}
}

// Create checks stock for every line, writes the invoice and decrements the
// ledger in one transaction. Nothing is written when any check fails.
func (s *SalesService) Create(ctx context.Context, actor domain.Actor, input domain.InvoiceInput) (*domain.SalesInvoice, error) {
	if err := input.Validate("customer_id"); err != nil {
		return nil, err
	}

	invoice := domain.NewSalesInvoice(input, actor)
	requested, productIDs := domain.RequestedQuantities(invoice.Items)

	var (
		saved     *domain.SalesInvoice
		remaining map[int64]int
	)
	err := s.uow.Execute(ctx, "create sales invoice", func(tx ports.TxRepositories) error {
		available, err := tx.Ledger().LockStock(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to lock stock: %w", err)
		}

		if err := checkStock(invoice.Items, available, requested); err != nil {
			return err
		}

		if err := tx.Sales().Insert(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save sales invoice: %w", err)
		}

		ref := domain.StockRef{
			Reason:        domain.MovementSale,
			ReferenceType: domain.RefSalesInvoice,
			ReferenceID:   invoice.ID,
			Actor:         actor,
		}
		remaining = make(map[int64]int, len(productIDs))
		for _, id := range productIDs {
			if err := tx.Ledger().Decrement(ctx, id, requested[id], ref); err != nil {
				return err
			}
			remaining[id] = available[id] - requested[id]
		}

		saved, err = tx.Sales().FindByID(ctx, invoice.ID)
		if err != nil {
			return fmt.Errorf("failed to reload sales invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "sales invoice created",
		slog.Int64("invoice_id", saved.ID),
		slog.Int64("customer_id", saved.CustomerID),
		slog.Int("items", len(saved.Items)),
		slog.String("total", saved.Total.String()))

	s.events.StockSold(ctx, saved.ID, remaining)

	return saved, nil
}

// checkStock walks items in submitted order. Unknown products are reported
// before any shortage, and shortages compare against the summed quantity.
func checkStock(items []domain.LineItem, available map[int64]int, requested map[int64]int) error {
	for _, item := range items {
		if _, ok := available[item.ProductID]; !ok {
			return domain.ProductNotFound(item.ProductID)
		}
	}
	for _, item := range items {
		if have, want := available[item.ProductID], requested[item.ProductID]; have < want {
			return &domain.InsufficientStockError{
				ProductID: item.ProductID,
				Available: have,
				Requested: want,
			}
		}
	}
	return nil
}

// GetByID retrieves a sales invoice with its items and customer
func (s *SalesService) GetByID(ctx context.Context, id int64) (*domain.SalesInvoice, error) {
	invoice, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales invoice: %w", err)
	}
	return invoice, nil
}

// List returns sales invoices newest first
func (s *SalesService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.SalesInvoice], error) {
	result, err := s.store.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales invoices: %w", err)
	}
	return result, nil
}

// Delete removes a sales invoice. Stock already taken is not given back.
func (s *SalesService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sales invoice: %w", err)
	}

	s.logger.InfoContext(ctx, "sales invoice deleted",
		slog.Int64("invoice_id", id),
		slog.Int64("user_id", actor.UserID))

	s.events.ReportsStale(ctx)
	return nil
}
