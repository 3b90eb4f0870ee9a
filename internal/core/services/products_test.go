// internal/core/services/products_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/test/helpers"
	"github.com/ammerola/stockflow-be/test/mocks"
)

type productMocks struct {
	repo   *mocks.MockProductRepository
	ledger *mocks.MockProductLedger
	uow    *mocks.MockUnitOfWork
	tx     *txMocks
}

func newProductService(ctrl *gomock.Controller) (*services.ProductService, *productMocks) {
	m := &productMocks{
		repo:   mocks.NewMockProductRepository(ctrl),
		ledger: mocks.NewMockProductLedger(ctrl),
		uow:    mocks.NewMockUnitOfWork(ctrl),
		tx:     newTxMocks(ctrl),
	}
	return services.NewProductService(m.repo, m.ledger, m.uow, nil, helpers.TestLogger()), m
}

func TestProductService_Create(t *testing.T) {
	tests := []struct {
		name          string
		product       *domain.Product
		setupMocks    func(*productMocks)
		expectedError error
		errorContains string
	}{
		{
			name:    "records_opening_stock",
			product: helpers.CreateTestProduct(),
			setupMocks: func(m *productMocks) {
				m.repo.EXPECT().Create(gomock.Any(), helpers.TestAdmin, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ domain.Actor, p *domain.Product) error {
						p.ID = 3
						return nil
					})
			},
		},
		{
			name: "negative_stock_rejected",
			product: helpers.CreateTestProduct(func(p *domain.Product) {
				p.Stock = -1
			}),
			setupMocks:    func(*productMocks) {},
			expectedError: domain.ErrValidation,
			errorContains: "stock cannot be negative",
		},
		{
			name: "missing_size_rejected",
			product: helpers.CreateTestProduct(func(p *domain.Product) {
				p.Size = "  "
			}),
			setupMocks:    func(*productMocks) {},
			expectedError: domain.ErrValidation,
			errorContains: "size should not be empty",
		},
		{
			name:    "repository_error",
			product: helpers.CreateTestProduct(),
			setupMocks: func(m *productMocks) {
				m.repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))
			},
			errorContains: "failed to create product",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service, m := newProductService(ctrl)
			tt.setupMocks(m)

			err := service.Create(context.Background(), helpers.TestAdmin, tt.product)

			if tt.expectedError == nil && tt.errorContains == "" {
				require.NoError(t, err)
				assert.Equal(t, int64(3), tt.product.ID)
				return
			}
			require.Error(t, err)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			}
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestProductService_Update_IgnoresStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, m := newProductService(ctrl)

	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p *domain.Product) error {
			assert.Equal(t, int64(5), p.ID)
			assert.Zero(t, p.Stock)
			return nil
		})
	m.repo.EXPECT().FindByID(gomock.Any(), int64(5)).
		Return(helpers.CreateTestProduct(func(p *domain.Product) { p.ID = 5; p.Stock = 40 }), nil)

	product, err := service.Update(context.Background(), 5, helpers.CreateTestProduct(func(p *domain.Product) {
		p.Stock = 9999
	}))

	require.NoError(t, err)
	assert.Equal(t, 40, product.Stock)
}

func TestProductService_Import(t *testing.T) {
	t.Run("creates_all_rows_in_one_transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, m := newProductService(ctrl)

		runInTx(m.uow, m.tx)
		m.tx.products.EXPECT().Create(gomock.Any(), helpers.TestAdmin, gomock.Any()).Return(nil).Times(2)

		count, err := service.Import(context.Background(), helpers.TestAdmin, []domain.Product{
			*helpers.CreateTestProduct(),
			*helpers.CreateTestProduct(func(p *domain.Product) { p.Size = "205/55R16" }),
		})

		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("invalid_rows_reported_by_sheet_row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, _ := newProductService(ctrl)

		_, err := service.Import(context.Background(), helpers.TestAdmin, []domain.Product{
			*helpers.CreateTestProduct(),
			*helpers.CreateTestProduct(func(p *domain.Product) { p.MadeIn = "" }),
		})

		var v *domain.ValidationError
		require.True(t, errors.As(err, &v))
		require.Len(t, v.Fields, 1)
		assert.Equal(t, "rows.3.made_in", v.Fields[0].Field)
	})

	t.Run("empty_workbook_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, _ := newProductService(ctrl)

		_, err := service.Import(context.Background(), helpers.TestAdmin, nil)

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("duplicate_row_rolls_back_batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, m := newProductService(ctrl)

		runInTx(m.uow, m.tx)
		gomock.InOrder(
			m.tx.products.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			m.tx.products.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(&domain.DuplicateError{Entity: domain.EntityProduct}),
		)

		count, err := service.Import(context.Background(), helpers.TestAdmin, []domain.Product{
			*helpers.CreateTestProduct(),
			*helpers.CreateTestProduct(),
		})

		assert.Zero(t, count)
		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.Contains(t, err.Error(), "row 3")
	})
}

func TestProductService_Movements(t *testing.T) {
	t.Run("unknown_product", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, m := newProductService(ctrl)

		m.ledger.EXPECT().CheckAvailability(gomock.Any(), int64(77)).
			Return(0, domain.ProductNotFound(77))

		_, err := service.Movements(context.Background(), 77, ports.ListParams{Limit: 5})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("lists_ledger_entries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		service, m := newProductService(ctrl)

		params := ports.ListParams{Page: 1, Limit: 5}
		movements := []domain.StockMovement{
			{ProductID: 2, Delta: -3, Reason: domain.MovementSale},
			{ProductID: 2, Delta: 10, Reason: domain.MovementOpening},
		}
		m.ledger.EXPECT().CheckAvailability(gomock.Any(), int64(2)).Return(7, nil)
		m.ledger.EXPECT().Movements(gomock.Any(), int64(2), params).
			Return(ports.NewListResult(movements, 2, params), nil)

		result, err := service.Movements(context.Background(), 2, params)

		require.NoError(t, err)
		assert.Len(t, result.Items, 2)
		assert.Equal(t, 1, result.TotalPages)
	})
}
