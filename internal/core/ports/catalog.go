// internal/core/ports/catalog.go
package ports

import (
	"context"

	"github.com/ammerola/stockflow-be/internal/core/domain"
)

// ProductFilter holds the product list filters.
type ProductFilter struct {
	// MaxStock keeps products with stock strictly below the value.
	MaxStock *int
	// Search terms are matched against size and category name.
	Search string
	ListParams
}

// ProductRepository is the persistence port for product attributes.
// Stock changes after creation go through ProductLedger. Create records the
// opening stock as a movement attributed to actor.
type ProductRepository interface {
	Create(ctx context.Context, actor domain.Actor, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]bool, error)
	List(ctx context.Context, filter ProductFilter) (*ListResult[domain.Product], error)
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository is the persistence port for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

// PartyRepository stores customers or suppliers; one instance per table.
type PartyRepository interface {
	Create(ctx context.Context, party *domain.Party) error
	Update(ctx context.Context, party *domain.Party) error
	FindByID(ctx context.Context, id int64) (*domain.Party, error)
	List(ctx context.Context, params ListParams) (*ListResult[domain.Party], error)
	Delete(ctx context.Context, id int64) error
}
