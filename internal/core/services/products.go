// internal/core/services/products.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// ProductService handles product catalog logic. Stock is read here but only
// written through the ledger.
type ProductService struct {
	repo   ports.ProductRepository
	ledger ports.ProductLedger
	uow    ports.UnitOfWork
	events *InvoiceEvents
	logger *slog.Logger
}

var _ ports.ProductService = (*ProductService)(nil)

// NewProductService creates a new product service
func NewProductService(
	repo ports.ProductRepository,
	ledger ports.ProductLedger,
	uow ports.UnitOfWork,
	events *InvoiceEvents,
	logger *slog.Logger,
) *ProductService {
	return &ProductService{
		repo:   repo,
		ledger: ledger,
		uow:    uow,
		events: events,
		logger: logger.With(slog.String("service", "product")),
	}
}

// Create stores a product with its opening stock
func (s *ProductService) Create(ctx context.Context, actor domain.Actor, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, actor, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", product.ID),
		slog.Int("stock", product.Stock))

	s.events.ReportsStale(ctx)
	return nil
}

// Import creates every product in one transaction. A bad row rejects the
// whole batch.
func (s *ProductService) Import(ctx context.Context, actor domain.Actor, products []domain.Product) (int, error) {
	if len(products) == 0 {
		return 0, domain.NewValidationError("file", "workbook contains no products")
	}

	invalid := &domain.ValidationError{}
	for i := range products {
		var v *domain.ValidationError
		if err := products[i].Validate(); errors.As(err, &v) {
			for _, f := range v.Fields {
				invalid.Add(fmt.Sprintf("rows.%d.%s", i+2, f.Field), f.Message)
			}
		}
	}
	if err := invalid.OrNil(); err != nil {
		return 0, err
	}

	err := s.uow.Execute(ctx, "import products", func(tx ports.TxRepositories) error {
		for i := range products {
			if err := tx.Products().Create(ctx, actor, &products[i]); err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "products imported", slog.Int("count", len(products)))

	s.events.ReportsStale(ctx)
	return len(products), nil
}

// Update changes descriptive fields. Any stock value in product is ignored.
func (s *ProductService) Update(ctx context.Context, id int64, product *domain.Product) (*domain.Product, error) {
	product.ID = id
	product.Stock = 0
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID retrieves a product with its category
func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// List returns products matching filter
func (s *ProductService) List(ctx context.Context, filter ports.ProductFilter) (*ports.ListResult[domain.Product], error) {
	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return result, nil
}

// Delete removes a product that no invoice references
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted", slog.Int64("product_id", id))
	s.events.ReportsStale(ctx)
	return nil
}

// CheckAvailability returns the current stock of a product
func (s *ProductService) CheckAvailability(ctx context.Context, id int64) (int, error) {
	return s.ledger.CheckAvailability(ctx, id)
}

// Movements lists the ledger entries of a product, newest first
func (s *ProductService) Movements(ctx context.Context, id int64, params ports.ListParams) (*ports.ListResult[domain.StockMovement], error) {
	if _, err := s.ledger.CheckAvailability(ctx, id); err != nil {
		return nil, err
	}

	result, err := s.ledger.Movements(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return result, nil
}
