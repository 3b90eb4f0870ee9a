// internal/adapters/db/invoice_items.go
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// insertItems writes all line items of one invoice in a single batch and
// fills in their generated ids. position preserves the submitted order.
func insertItems(ctx context.Context, q ports.Querier, table string, invoiceID int64, items []domain.LineItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (invoice_id, product_id, position, quantity, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, table)

	batch := &pgx.Batch{}
	for i := range items {
		batch.Queue(query, invoiceID, items[i].ProductID, i, items[i].Quantity, items[i].Price)
	}

	br := q.SendBatch(ctx, batch)
	for i := range items {
		if err := br.QueryRow().Scan(&items[i].ID); err != nil {
			br.Close()
			return translateError(err, domain.EntityProduct, items[i].ProductID)
		}
		items[i].InvoiceID = invoiceID
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close item batch: %w", err)
	}
	return nil
}

// loadItems fetches the items of several invoices at once, grouped by invoice
// and ordered by position.
func loadItems(ctx context.Context, q ports.Querier, table string, invoiceIDs []int64) (map[int64][]domain.LineItem, error) {
	grouped := make(map[int64][]domain.LineItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return grouped, nil
	}

	query := fmt.Sprintf(`
		SELECT id, invoice_id, product_id, quantity, price
		FROM %s
		WHERE invoice_id = ANY($1)
		ORDER BY invoice_id, position`, table)

	rows, err := q.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.LineItem
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		grouped[item.InvoiceID] = append(grouped[item.InvoiceID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return grouped, nil
}

// countRows runs a COUNT(*) built with squirrel
func countRows(ctx context.Context, q ports.Querier, query string, args ...interface{}) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return total, nil
}

func partyColumns(alias string) []string {
	return []string{
		alias + ".id", alias + ".name", alias + ".phone_no", alias + ".address",
		alias + ".created_at", alias + ".updated_at",
	}
}
