// internal/adapters/db/product_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// productRepository implements ports.ProductRepository
type productRepository struct {
	q      ports.Querier
	logger *slog.Logger
}

var _ ports.ProductRepository = (*productRepository)(nil)

// NewProductRepository creates a new product repository
func NewProductRepository(q ports.Querier, logger *slog.Logger) ports.ProductRepository {
	return &productRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "product")),
	}
}

// Create inserts the product and records its opening stock as a movement
func (r *productRepository) Create(ctx context.Context, actor domain.Actor, p *domain.Product) error {
	query := `
		WITH inserted AS (
			INSERT INTO products (category_id, size, description, net_weight, kg, made_in, price, stock)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, stock, created_at, updated_at
		), opening AS (
			INSERT INTO stock_movements (product_id, delta, reason, reference_type, reference_id, created_by)
			SELECT id, stock, 'opening', 'product', id, $9::bigint FROM inserted WHERE stock > 0
		)
		SELECT id, created_at, updated_at FROM inserted`

	err := r.q.QueryRow(ctx, query,
		p.CategoryID, p.Size, p.Description, p.NetWeight, p.Kg, p.MadeIn, p.Price, p.Stock, actor.UserID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return translateError(err, domain.EntityProduct, p.CategoryID)
	}

	r.logger.DebugContext(ctx, "product saved",
		slog.Int64("product_id", p.ID),
		slog.Int("stock", p.Stock))

	return nil
}

// Update changes descriptive attributes. Stock is owned by the ledger and is
// never written here.
func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products SET
			category_id = $2, size = $3, description = $4, net_weight = $5,
			kg = $6, made_in = $7, price = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING stock, created_at, updated_at`

	err := r.q.QueryRow(ctx, query,
		p.ID, p.CategoryID, p.Size, p.Description, p.NetWeight, p.Kg, p.MadeIn, p.Price,
	).Scan(&p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ProductNotFound(p.ID)
		}
		return translateError(err, domain.EntityProduct, p.CategoryID)
	}

	return nil
}

func productSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"p.id", "p.category_id", "p.size", "p.description", "p.net_weight", "p.kg",
		"p.made_in", "p.price", "p.stock", "p.created_at", "p.updated_at",
		"c.id", "c.name", "c.created_at", "c.updated_at",
	).From("products p").
		Join("categories c ON c.id = p.category_id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	p := &domain.Product{Category: &domain.Category{}}
	err := row.Scan(
		&p.ID, &p.CategoryID, &p.Size, &p.Description, &p.NetWeight, &p.Kg,
		&p.MadeIn, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt,
		&p.Category.ID, &p.Category.Name, &p.Category.CreatedAt, &p.Category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a product with its category
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query, args, err := productSelect().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ProductNotFound(id)
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// ExistingIDs reports which of the given ids exist
func (r *productRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error) {
	found := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	rows, err := r.q.Query(ctx, `SELECT id FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query product ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan product id: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return found, nil
}

// List retrieves products with filtering and pagination
func (r *productRepository) List(ctx context.Context, filter ports.ProductFilter) (*ports.ListResult[domain.Product], error) {
	var conds squirrel.And
	if filter.MaxStock != nil {
		conds = append(conds, squirrel.Lt{"p.stock": *filter.MaxStock})
	}
	if terms := strings.Fields(filter.Search); len(terms) > 0 {
		var matches squirrel.Or
		for _, term := range terms {
			pattern := "%" + term + "%"
			matches = append(matches,
				squirrel.ILike{"p.size": pattern},
				squirrel.ILike{"c.name": pattern},
			)
		}
		conds = append(conds, matches)
	}

	countQb := squirrel.Select("COUNT(*)").
		From("products p").
		Join("categories c ON c.id = p.category_id").
		PlaceholderFormat(squirrel.Dollar)
	qb := productSelect()
	if len(conds) > 0 {
		countQb = countQb.Where(conds)
		qb = qb.Where(conds)
	}

	countSQL, countArgs, err := countQb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build count query: %w", err)
	}
	total, err := countRows(ctx, r.q, countSQL, countArgs...)
	if err != nil {
		return nil, err
	}

	qb = paginate(qb.OrderBy("p.id ASC"), filter.ListParams)
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return ports.NewListResult(products, total, filter.ListParams), nil
}

// Delete removes a product that no invoice references
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
			return domain.NewValidationError("id", "product is referenced by existing invoices")
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ProductNotFound(id)
	}

	r.logger.InfoContext(ctx, "product deleted", slog.Int64("product_id", id))
	return nil
}
