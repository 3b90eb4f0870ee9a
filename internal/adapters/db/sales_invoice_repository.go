// internal/adapters/db/sales_invoice_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

const salesItemsTable = "sales_invoice_items"

// salesInvoiceRepository implements ports.SalesInvoiceStore
type salesInvoiceRepository struct {
	q      ports.Querier
	logger *slog.Logger
}

var _ ports.SalesInvoiceStore = (*salesInvoiceRepository)(nil)

// NewSalesInvoiceRepository creates a sales invoice store bound to q
func NewSalesInvoiceRepository(q ports.Querier, logger *slog.Logger) ports.SalesInvoiceStore {
	return &salesInvoiceRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "sales_invoice")),
	}
}

// Insert writes the header followed by every line item
func (r *salesInvoiceRepository) Insert(ctx context.Context, invoice *domain.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (customer_id, date, total, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		invoice.CustomerID, invoice.Date, invoice.Total, invoice.CreatedBy,
	).Scan(&invoice.ID, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return translateError(err, domain.EntitySalesInvoice, invoice.CustomerID)
	}

	if err := insertItems(ctx, r.q, salesItemsTable, invoice.ID, invoice.Items); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "sales invoice saved",
		slog.Int64("invoice_id", invoice.ID),
		slog.Int("items", len(invoice.Items)))

	return nil
}

func salesSelect() squirrel.SelectBuilder {
	cols := append([]string{
		"si.id", "si.customer_id", "si.date", "si.total", "si.created_by", "si.created_at", "si.updated_at",
	}, partyColumns("c")...)

	return squirrel.Select(cols...).
		From("sales_invoices si").
		Join("customers c ON c.id = si.customer_id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanSalesInvoice(row pgx.Row) (*domain.SalesInvoice, error) {
	inv := &domain.SalesInvoice{Customer: &domain.Customer{}}
	err := row.Scan(
		&inv.ID, &inv.CustomerID, &inv.Date, &inv.Total, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.Customer.ID, &inv.Customer.Name, &inv.Customer.PhoneNo, &inv.Customer.Address,
		&inv.Customer.CreatedAt, &inv.Customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// FindByID loads an invoice with its items and customer
func (r *salesInvoiceRepository) FindByID(ctx context.Context, id int64) (*domain.SalesInvoice, error) {
	query, args, err := salesSelect().Where(squirrel.Eq{"si.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	inv, err := scanSalesInvoice(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: domain.EntitySalesInvoice, ID: id}
		}
		return nil, fmt.Errorf("failed to find sales invoice: %w", err)
	}

	items, err := loadItems(ctx, r.q, salesItemsTable, []int64{id})
	if err != nil {
		return nil, err
	}
	inv.Items = items[id]

	return inv, nil
}

// List returns invoices newest first
func (r *salesInvoiceRepository) List(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.SalesInvoice], error) {
	total, err := countRows(ctx, r.q, `SELECT COUNT(*) FROM sales_invoices`)
	if err != nil {
		return nil, err
	}

	qb := paginate(salesSelect().OrderBy("si.created_at DESC", "si.id DESC"), params)
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales invoices: %w", err)
	}
	defer rows.Close()

	var invoices []domain.SalesInvoice
	var ids []int64
	for rows.Next() {
		inv, err := scanSalesInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sales invoice: %w", err)
		}
		invoices = append(invoices, *inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	rows.Close()

	items, err := loadItems(ctx, r.q, salesItemsTable, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Items = items[invoices[i].ID]
	}

	return ports.NewListResult(invoices, total, params), nil
}

// Delete removes the invoice and its items. Stock is left as it is.
func (r *salesInvoiceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sales invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: domain.EntitySalesInvoice, ID: id}
	}

	r.logger.InfoContext(ctx, "sales invoice deleted", slog.Int64("invoice_id", id))
	return nil
}
