// internal/adapters/db/product_ledger.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// productLedger implements ports.ProductLedger on top of any querier, so the
// same code serves the pool and an open transaction.
type productLedger struct {
	q      ports.Querier
	logger *slog.Logger
}

var _ ports.ProductLedger = (*productLedger)(nil)

// NewProductLedger creates a ledger bound to q
func NewProductLedger(q ports.Querier, logger *slog.Logger) ports.ProductLedger {
	return &productLedger{
		q:      q,
		logger: logger.With(slog.String("repository", "product_ledger")),
	}
}

// CheckAvailability returns the current stock of a product
func (l *productLedger) CheckAvailability(ctx context.Context, productID int64) (int, error) {
	var stock int
	err := l.q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ProductNotFound(productID)
		}
		return 0, fmt.Errorf("failed to read stock: %w", err)
	}
	return stock, nil
}

// LockStock reads stock for every id with a row lock. Ids are locked in
// ascending order so concurrent invoices touching the same products queue up
// instead of deadlocking.
func (l *productLedger) LockStock(ctx context.Context, productIDs []int64) (map[int64]int, error) {
	stock := make(map[int64]int, len(productIDs))
	if len(productIDs) == 0 {
		return stock, nil
	}

	ids := slices.Clone(productIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	rows, err := l.q.Query(ctx, `
		SELECT id, stock
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock product stock: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var qty int
		if err := rows.Scan(&id, &qty); err != nil {
			return nil, fmt.Errorf("failed to scan product stock: %w", err)
		}
		stock[id] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock rows: %w", err)
	}

	return stock, nil
}

const adjustStockSQL = `
	WITH updated AS (
		UPDATE products
		SET stock = stock + $2::int, updated_at = NOW()
		WHERE id = $1 AND stock + $2::int >= 0
		RETURNING id, stock
	), movement AS (
		INSERT INTO stock_movements (product_id, delta, reason, reference_type, reference_id, created_by)
		SELECT id, $2::int, $3::text, $4::text, $5::bigint, $6::bigint FROM updated
	)
	SELECT stock FROM updated`

// Decrement subtracts quantity, refusing to go below zero
func (l *productLedger) Decrement(ctx context.Context, productID int64, quantity int, ref domain.StockRef) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "quantity must be greater than 0")
	}
	return l.adjust(ctx, productID, -quantity, ref)
}

// Increment adds quantity; there is no upper bound
func (l *productLedger) Increment(ctx context.Context, productID int64, quantity int, ref domain.StockRef) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "quantity must be greater than 0")
	}
	return l.adjust(ctx, productID, quantity, ref)
}

func (l *productLedger) adjust(ctx context.Context, productID int64, delta int, ref domain.StockRef) error {
	var stock int
	err := l.q.QueryRow(ctx, adjustStockSQL,
		productID, delta, string(ref.Reason), ref.ReferenceType, ref.ReferenceID, ref.Actor.UserID,
	).Scan(&stock)

	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return translateError(err, domain.EntityProduct, productID)
		}

		// Either the product is gone or the guard refused the decrement.
		available, lookupErr := l.CheckAvailability(ctx, productID)
		if lookupErr != nil {
			return lookupErr
		}
		return &domain.InsufficientStockError{
			ProductID: productID,
			Available: available,
			Requested: -delta,
		}
	}

	l.logger.DebugContext(ctx, "stock adjusted",
		slog.Int64("product_id", productID),
		slog.Int("delta", delta),
		slog.Int("stock", stock),
		slog.String("reason", string(ref.Reason)))

	return nil
}

// Movements lists ledger entries for a product, newest first
func (l *productLedger) Movements(ctx context.Context, productID int64, params ports.ListParams) (*ports.ListResult[domain.StockMovement], error) {
	var total int64
	err := l.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count stock movements: %w", err)
	}

	qb := squirrel.Select(
		"id", "product_id", "delta", "reason", "reference_type", "reference_id", "created_by", "created_at",
	).From("stock_movements").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("created_at DESC", "id DESC").
		PlaceholderFormat(squirrel.Dollar)
	qb = paginate(qb, params)

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := l.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.StockMovement
	for rows.Next() {
		var m domain.StockMovement
		var reason string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Delta, &reason,
			&m.ReferenceType, &m.ReferenceID, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stock movement: %w", err)
		}
		m.Reason = domain.MovementReason(reason)
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ports.NewListResult(movements, total, params), nil
}

// paginate applies limit/offset unless the caller asked for all rows
func paginate(qb squirrel.SelectBuilder, params ports.ListParams) squirrel.SelectBuilder {
	if params.Unpaged() {
		return qb
	}
	return qb.Limit(uint64(params.Limit)).Offset(uint64(params.Offset()))
}
