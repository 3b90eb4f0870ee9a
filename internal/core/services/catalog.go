// internal/core/services/catalog.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
)

// CategoryService manages product categories
type CategoryService struct {
	repo   ports.CategoryRepository
	logger *slog.Logger
}

var _ ports.CategoryService = (*CategoryService)(nil)

// NewCategoryService creates a new category service
func NewCategoryService(repo ports.CategoryRepository, logger *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:   repo,
		logger: logger.With(slog.String("service", "category")),
	}
}

func (s *CategoryService) Create(ctx context.Context, category *domain.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	s.logger.InfoContext(ctx, "category created", slog.Int64("category_id", category.ID))
	return nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, category *domain.Category) (*domain.Category, error) {
	category.ID = id
	if err := category.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.logger.InfoContext(ctx, "category deleted", slog.Int64("category_id", id))
	return nil
}

// PartyService manages customers or suppliers, depending on the repository
// it is built with.
type PartyService struct {
	repo   ports.PartyRepository
	entity string
	logger *slog.Logger
}

var _ ports.PartyService = (*PartyService)(nil)

// NewCustomerService creates the customer service
func NewCustomerService(repo ports.PartyRepository, logger *slog.Logger) *PartyService {
	return newPartyService(repo, domain.EntityCustomer, logger)
}

// NewSupplierService creates the supplier service
func NewSupplierService(repo ports.PartyRepository, logger *slog.Logger) *PartyService {
	return newPartyService(repo, domain.EntitySupplier, logger)
}

func newPartyService(repo ports.PartyRepository, entity string, logger *slog.Logger) *PartyService {
	return &PartyService{
		repo:   repo,
		entity: entity,
		logger: logger.With(slog.String("service", entity)),
	}
}

func (s *PartyService) Create(ctx context.Context, party *domain.Party) error {
	if err := party.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, party); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.entity, err)
	}
	s.logger.InfoContext(ctx, s.entity+" created", slog.Int64("id", party.ID))
	return nil
}

func (s *PartyService) Update(ctx context.Context, id int64, party *domain.Party) (*domain.Party, error) {
	party.ID = id
	if err := party.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, party); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", s.entity, err)
	}
	return party, nil
}

func (s *PartyService) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	party, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.entity, err)
	}
	return party, nil
}

func (s *PartyService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult[domain.Party], error) {
	result, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.entity, err)
	}
	return result, nil
}

func (s *PartyService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.entity, err)
	}
	s.logger.InfoContext(ctx, s.entity+" deleted", slog.Int64("id", id))
	return nil
}
