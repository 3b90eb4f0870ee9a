// internal/core/services/purchase.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// PurchaseService records purchase orders and settles them into stock
type PurchaseService struct {
	uow    ports.UnitOfWork
	store  ports.PurchaseInvoiceStore
	events *InvoiceEvents
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.PurchaseService = (*PurchaseService)(nil)

// NewPurchaseService creates a new purchase service
func NewPurchaseService(uow ports.UnitOfWork, store ports.PurchaseInvoiceStore, events *InvoiceEvents, logger *slog.Logger) *PurchaseService {
	return &PurchaseService{
		uow:    uow,
		store:  store,
		events: events,
		logger: logger.With(slog.String("service", "purchase")),
		now:    time.Now,
	}
}

// Create stores a pending purchase invoice. Stock is untouched until the
// invoice is paid.
func (s *PurchaseService) Create(ctx context.Context, actor domain.Actor, input domain.InvoiceInput) (*domain.PurchaseInvoice, error) {
	if err := input.Validate("supplier_id"); err != nil {
		return nil, err
	}

	invoice := domain.NewPurchaseInvoice(input, actor)
	_, productIDs := domain.RequestedQuantities(invoice.Items)

	var saved *domain.PurchaseInvoice
	err := s.uow.Execute(ctx, "create purchase invoice", func(tx ports.TxRepositories) error {
		existing, err := tx.Products().ExistingIDs(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to check products: %w", err)
		}
		for _, item := range invoice.Items {
			if !existing[item.ProductID] {
				return domain.ProductNotFound(item.ProductID)
			}
		}

		if err := tx.Purchases().Insert(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save purchase invoice: %w", err)
		}

		saved, err = tx.Purchases().FindByID(ctx, invoice.ID)
		if err != nil {
			return fmt.Errorf("failed to reload purchase invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "purchase invoice created",
		slog.Int64("invoice_id", saved.ID),
		slog.Int64("supplier_id", saved.SupplierID),
		slog.Int("items", len(saved.Items)))

	s.events.ReportsStale(ctx)

	return saved, nil
}

// Transition moves a purchase invoice to status. Moving into paid increments
// stock once per line item. Paid and cancelled invoices are returned as they
// are without writing anything.
func (s *PurchaseService) Transition(ctx context.Context, actor domain.Actor, id int64, status domain.PurchaseStatus) (*domain.PurchaseInvoice, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status",
			"status must be one of the following values: pending, cancelled, paid")
	}

	var (
		invoice *domain.PurchaseInvoice
		from    domain.PurchaseStatus
		changed bool
	)
	err := s.uow.Execute(ctx, "transition purchase invoice", func(tx ports.TxRepositories) error {
		var err error
		invoice, err = tx.Purchases().FindForUpdate(ctx, id)
		if err != nil {
			return err
		}

		from = invoice.Status
		if !from.CanTransitionTo(status) || from == status {
			return nil
		}

		var settledAt *time.Time
		if from.SettlesStock(status) {
			now := s.now().UTC()
			settledAt = &now
		}
		if err := tx.Purchases().UpdateStatus(ctx, id, status, settledAt); err != nil {
			return err
		}

		if settledAt != nil {
			ref := domain.StockRef{
				Reason:        domain.MovementPurchase,
				ReferenceType: domain.RefPurchaseInvoice,
				ReferenceID:   id,
				Actor:         actor,
			}
			for _, item := range invoice.Items {
				if err := tx.Ledger().Increment(ctx, item.ProductID, item.Quantity, ref); err != nil {
					return err
				}
			}
			invoice.SettledAt = settledAt
		}

		invoice.Status = status
		invoice.UpdatedAt = s.now().UTC()
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !changed {
		s.logger.DebugContext(ctx, "purchase invoice transition ignored",
			slog.Int64("invoice_id", id),
			slog.String("status", string(from)),
			slog.String("requested", string(status)))
		return invoice, nil
	}

	s.logger.InfoContext(ctx, "purchase invoice status changed",
		slog.Int64("invoice_id", id),
		slog.String("from", string(from)),
		slog.String("to", string(status)),
		slog.Int64("user_id", actor.UserID))

	s.events.ReportsStale(ctx)

	return invoice, nil
}

// GetByID retrieves a purchase invoice with its items and supplier
func (s *PurchaseService) GetByID(ctx context.Context, id int64) (*domain.PurchaseInvoice, error) {
	invoice, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase invoice: %w", err)
	}
	return invoice, nil
}

// List returns all purchase invoices newest first
func (s *PurchaseService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.PurchaseInvoice], error) {
	return s.list(ctx, ports.PurchaseFilter{ListParams: params})
}

// FindOrders lists invoices still in the order queue (pending or cancelled)
func (s *PurchaseService) FindOrders(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.PurchaseInvoice], error) {
	return s.list(ctx, ports.PurchaseFilter{Statuses: domain.OrderStatuses, ListParams: params})
}

// FindSettled lists paid invoices
func (s *PurchaseService) FindSettled(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.PurchaseInvoice], error) {
	return s.list(ctx, ports.PurchaseFilter{
		Statuses:   []domain.PurchaseStatus{domain.PurchaseStatusPaid},
		ListParams: params,
	})
}

func (s *PurchaseService) list(ctx context.Context, filter ports.PurchaseFilter) (*ports.ListResult[domain.PurchaseInvoice], error) {
	result, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchase invoices: %w", err)
	}
	return result, nil
}

// Delete removes a purchase invoice. Stock from a paid invoice stays.
func (s *PurchaseService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete purchase invoice: %w", err)
	}

	s.logger.InfoContext(ctx, "purchase invoice deleted",
		slog.Int64("invoice_id", id),
		slog.Int64("user_id", actor.UserID))

	s.events.ReportsStale(ctx)
	return nil
}
