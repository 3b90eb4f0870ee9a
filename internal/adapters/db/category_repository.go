// internal/adapters/db/category_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

type categoryRepository struct {
	q      ports.Querier
	logger *slog.Logger
}

var _ ports.CategoryRepository = (*categoryRepository)(nil)

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(q ports.Querier, logger *slog.Logger) ports.CategoryRepository {
	return &categoryRepository{
		q:      q,
		logger: logger.With(slog.String("repository", "category")),
	}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at, updated_at`,
		c.Name,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return translateError(err, domain.EntityCategory, 0)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	err := r.q.QueryRow(ctx,
		`UPDATE categories SET name = $2, updated_at = NOW() WHERE id = $1 RETURNING created_at, updated_at`,
		c.ID, c.Name,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.NotFoundError{Entity: domain.EntityCategory, ID: c.ID}
		}
		return translateError(err, domain.EntityCategory, c.ID)
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	c := &domain.Category{}
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return c, nil
}

// List returns every category ordered by name
func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at, updated_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if pgErr, ok := pgError(err); ok && pgErr.Code == pgForeignKeyViolation {
			return domain.NewValidationError("id", "category still has products")
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: domain.EntityCategory, ID: id}
	}

	r.logger.InfoContext(ctx, "category deleted", slog.Int64("category_id", id))
	return nil
}
