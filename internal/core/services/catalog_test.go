// internal/core/services/catalog_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/test/helpers"
	"github.com/ammerola/stockflow-be/test/mocks"
)

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name          string
		category      *domain.Category
		setupMocks    func(*mocks.MockCategoryRepository)
		expectedError error
	}{
		{
			name:     "trims_and_saves",
			category: &domain.Category{Name: "  Tyres "},
			setupMocks: func(m *mocks.MockCategoryRepository) {
				m.EXPECT().Create(gomock.Any(), &domain.Category{Name: "Tyres"}).Return(nil)
			},
		},
		{
			name:          "empty_name_rejected",
			category:      &domain.Category{Name: "   "},
			setupMocks:    func(*mocks.MockCategoryRepository) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:     "duplicate_name",
			category: &domain.Category{Name: "Tyres"},
			setupMocks: func(m *mocks.MockCategoryRepository) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(&domain.DuplicateError{Entity: domain.EntityCategory, Field: "name"})
			},
			expectedError: domain.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockCategoryRepository(ctrl)
			tt.setupMocks(repo)

			service := services.NewCategoryService(repo, helpers.TestLogger())
			err := service.Create(context.Background(), tt.category)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPartyService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPartyRepository(ctrl)

	repo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Party) error {
			assert.Equal(t, int64(4), p.ID)
			assert.Equal(t, "Acme", p.Name)
			return nil
		})

	service := services.NewCustomerService(repo, helpers.TestLogger())
	party, err := service.Update(context.Background(), 4, &domain.Party{
		Name:    " Acme ",
		PhoneNo: "555-0100",
		Address: "1 Main St",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), party.ID)
}

func TestPartyService_ErrorsNameEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPartyRepository(ctrl)

	repo.EXPECT().FindByID(gomock.Any(), int64(2)).
		Return(nil, &domain.NotFoundError{Entity: domain.EntitySupplier, ID: 2})

	service := services.NewSupplierService(repo, helpers.TestLogger())
	_, err := service.GetByID(context.Background(), 2)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to get supplier")
}
