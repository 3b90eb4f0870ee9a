// internal/adapters/db/purchase_invoice_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

const purchaseItemsTable = "purchase_invoice_items"

// purchaseInvoiceRepository implements ports.PurchaseInvoiceStore
type purchaseInvoiceRepository struct {
	q      ports.Querier
	logger *slog.Logger
}

var _ ports.PurchaseInvoiceStore = (*purchaseInvoiceRepository)(nil)

// NewPurchaseInvoiceRepository creates a purchase invoice store bound to q
func NewPurchaseInvoiceRepository(q ports.Querier, logger *slog.Logger) ports.PurchaseInvoiceStore {
	return &purchaseInvoiceRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "purchase_invoice")),
	}
}

// Insert writes the header followed by every line item
func (r *purchaseInvoiceRepository) Insert(ctx context.Context, invoice *domain.PurchaseInvoice) error {
	if invoice.Status == "" {
		invoice.Status = domain.PurchaseStatusPending
	}

	query := `
		INSERT INTO purchase_invoices (supplier_id, date, total, status, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		invoice.SupplierID, invoice.Date, invoice.Total, string(invoice.Status), invoice.CreatedBy,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return translateError(err, domain.EntityPurchaseInvoice, invoice.SupplierID)
	}

	if err := insertItems(ctx, r.q, purchaseItemsTable, invoice.ID, invoice.Items); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "purchase invoice saved",
		slog.Int64("invoice_id", invoice.ID),
		slog.String("status", string(invoice.Status)),
		slog.Int("items", len(invoice.Items)))

	return nil
}

func purchaseSelect() squirrel.SelectBuilder {
	cols := append([]string{
		"pi.id", "pi.supplier_id", "pi.date", "pi.total", "pi.status", "pi.created_by",
		"pi.settled_at", "pi.created_at", "pi.updated_at",
	}, partyColumns("s")...)

	return squirrel.Select(cols...).
		From("purchase_invoices pi").
		Join("suppliers s ON s.id = pi.supplier_id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanPurchaseInvoice(row pgx.Row) (*domain.PurchaseInvoice, error) {
	inv := &domain.PurchaseInvoice{Supplier: &domain.Supplier{}}
	var status string
	err := row.Scan(
		&inv.ID, &inv.SupplierID, &inv.Date, &inv.Total, &status, &inv.CreatedBy,
		&inv.SettledAt, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.Supplier.ID, &inv.Supplier.Name, &inv.Supplier.PhoneNo, &inv.Supplier.Address,
		&inv.Supplier.CreatedAt, &inv.Supplier.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = domain.PurchaseStatus(status)
	return inv, nil
}

// FindByID loads an invoice with its items and supplier
func (r *purchaseInvoiceRepository) FindByID(ctx context.Context, id int64) (*domain.PurchaseInvoice, error) {
	return r.find(ctx, id, false)
}

// FindForUpdate loads the invoice and holds its row lock until the transaction ends
func (r *purchaseInvoiceRepository) FindForUpdate(ctx context.Context, id int64) (*domain.PurchaseInvoice, error) {
	return r.find(ctx, id, true)
}

func (r *purchaseInvoiceRepository) find(ctx context.Context, id int64, lock bool) (*domain.PurchaseInvoice, error) {
	qb := purchaseSelect().Where(squirrel.Eq{"pi.id": id})
	if lock {
		qb = qb.Suffix("FOR UPDATE OF pi")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	inv, err := scanPurchaseInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: domain.EntityPurchaseInvoice, ID: id}
		}
		return nil, fmt.Errorf("failed to find purchase invoice: %w", err)
	}

	items, err := loadItems(ctx, r.q, purchaseItemsTable, []int64{id})
	if err != nil {
		return nil, err
	}
	inv.Items = items[id]

	return inv, nil
}

// UpdateStatus stores a new status
func (r *purchaseInvoiceRepository) UpdateStatus(ctx context.Context, id int64, status domain.PurchaseStatus, settledAt *time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_invoices
		SET status = $2, settled_at = COALESCE($3, settled_at), updated_at = NOW()
		WHERE id = $1`, id, string(status), settledAt)
	if err != nil {
		return fmt.Errorf("failed to update purchase invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: domain.EntityPurchaseInvoice, ID: id}
	}

	r.logger.DebugContext(ctx, "purchase invoice status updated",
		slog.Int64("invoice_id", id),
		slog.String("status", string(status)))

	return nil
}

// List returns invoices newest first, optionally restricted to some statuses
func (r *purchaseInvoiceRepository) List(ctx context.Context, filter ports.PurchaseFilter) (*ports.ListResult[domain.PurchaseInvoice], error) {
	countQb := squirrel.Select("COUNT(*)").From("purchase_invoices pi").PlaceholderFormat(squirrel.Dollar)
	qb := purchaseSelect()

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		countQb = countQb.Where(squirrel.Eq{"pi.status": statuses})
		qb = qb.Where(squirrel.Eq{"pi.status": statuses})
	}

	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}
	total, err := countRows(ctx, r.q, countSQL, countArgs...)
	if err != nil {
		return nil, err
	}

	qb = paginate(qb.OrderBy("pi.created_at DESC", "pi.id DESC"), filter.ListParams)
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.PurchaseInvoice
	var ids []int64
	for rows.Next() {
		inv, err := scanPurchaseInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase invoice: %w", err)
		}
		invoices = append(invoices, *inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	items, err := loadItems(ctx, r.q, purchaseItemsTable, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Items = items[invoices[i].ID]
	}

	return ports.NewListResult(invoices, total, filter.ListParams), nil
}

// Delete removes the invoice and its items. Stock is left as it is, even for
// paid invoices.
func (r *purchaseInvoiceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete purchase invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: domain.EntityPurchaseInvoice, ID: id}
	}

	r.logger.InfoContext(ctx, "purchase invoice deleted", slog.Int64("invoice_id", id))
	return nil
}
