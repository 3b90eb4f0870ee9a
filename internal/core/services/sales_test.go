// internal/core/services/sales_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/test/helpers"
	"github.com/ammerola/stockflow-be/test/mocks"
)

// txMocks bundles the stores handed to a unit of work callback.
type txMocks struct {
	tx        *mocks.MockTxRepositories
	ledger    *mocks.MockProductLedger
	sales     *mocks.MockSalesInvoiceStore
	purchases *mocks.MockPurchaseInvoiceStore
	products  *mocks.MockProductRepository
}

func newTxMocks(ctrl *gomock.Controller) *txMocks {
	m := &txMocks{
		tx:        mocks.NewMockTxRepositories(ctrl),
		ledger:    mocks.NewMockProductLedger(ctrl),
		sales:     mocks.NewMockSalesInvoiceStore(ctrl),
		purchases: mocks.NewMockPurchaseInvoiceStore(ctrl),
		products:  mocks.NewMockProductRepository(ctrl),
	}
	m.tx.EXPECT().Ledger().Return(m.ledger).AnyTimes()
	m.tx.EXPECT().Sales().Return(m.sales).AnyTimes()
	m.tx.EXPECT().Purchases().Return(m.purchases).AnyTimes()
	m.tx.EXPECT().Products().Return(m.products).AnyTimes()
	return m
}

// runInTx makes the unit of work call fn directly with the tx mocks.
func runInTx(uow *mocks.MockUnitOfWork, m *txMocks) {
	uow.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, fn func(ports.TxRepositories) error) error {
			return fn(m.tx)
		})
}

func saleRef(invoiceID int64) domain.StockRef {
	return domain.StockRef{
		Reason:        domain.MovementSale,
		ReferenceType: domain.RefSalesInvoice,
		ReferenceID:   invoiceID,
		Actor:         helpers.TestAdmin,
	}
}

func TestSalesService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         domain.InvoiceInput
		setupMocks    func(*mocks.MockUnitOfWork, *txMocks)
		expectedError error
		check         func(*testing.T, error)
	}{
		{
			name: "decrements_each_product_by_summed_quantity",
			input: helpers.CreateTestInvoiceInput(7,
				helpers.Line(1, 3), helpers.Line(2, 2), helpers.Line(1, 2)),
			setupMocks: func(uow *mocks.MockUnitOfWork, m *txMocks) {
				runInTx(uow, m)
				gomock.InOrder(
					m.ledger.EXPECT().LockStock(gomock.Any(), []int64{1, 2}).
						Return(map[int64]int{1: 10, 2: 150}, nil),
					m.sales.EXPECT().Insert(gomock.Any(), gomock.Any()).
						DoAndReturn(func(_ context.Context, inv *domain.SalesInvoice) error {
							inv.ID = 42
							return nil
						}),
					m.ledger.EXPECT().Decrement(gomock.Any(), int64(1), 5, saleRef(42)).Return(nil),
					m.ledger.EXPECT().Decrement(gomock.Any(), int64(2), 2, saleRef(42)).Return(nil),
					m.sales.EXPECT().FindByID(gomock.Any(), int64(42)).
						Return(&domain.SalesInvoice{ID: 42, CustomerID: 7}, nil),
				)
			},
		},
		{
			name:  "insufficient_stock_writes_nothing",
			input: helpers.CreateTestInvoiceInput(7, helpers.Line(1, 3), helpers.Line(1, 2)),
			setupMocks: func(uow *mocks.MockUnitOfWork, m *txMocks) {
				runInTx(uow, m)
				m.ledger.EXPECT().LockStock(gomock.Any(), []int64{1}).
					Return(map[int64]int{1: 4}, nil)
			},
			expectedError: domain.ErrInsufficientStock,
			check: func(t *testing.T, err error) {
				var stockErr *domain.InsufficientStockError
				require.True(t, errors.As(err, &stockErr))
				assert.Equal(t, int64(1), stockErr.ProductID)
				assert.Equal(t, 4, stockErr.Available)
				assert.Equal(t, 5, stockErr.Requested)
			},
		},
		{
			name:  "unknown_product_reported_before_shortage",
			input: helpers.CreateTestInvoiceInput(7, helpers.Line(1, 50), helpers.Line(9, 1)),
			setupMocks: func(uow *mocks.MockUnitOfWork, m *txMocks) {
				runInTx(uow, m)
				m.ledger.EXPECT().LockStock(gomock.Any(), []int64{1, 9}).
					Return(map[int64]int{1: 10}, nil)
			},
			expectedError: domain.ErrNotFound,
			check: func(t *testing.T, err error) {
				var nf *domain.NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, domain.EntityProduct, nf.Entity)
				assert.Equal(t, int64(9), nf.ID)
			},
		},
		{
			name:          "invalid_payload_never_opens_transaction",
			input:         domain.InvoiceInput{PartyID: 0},
			setupMocks:    func(*mocks.MockUnitOfWork, *txMocks) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:  "ledger_failure_aborts",
			input: helpers.CreateTestInvoiceInput(7, helpers.Line(1, 1)),
			setupMocks: func(uow *mocks.MockUnitOfWork, m *txMocks) {
				runInTx(uow, m)
				m.ledger.EXPECT().LockStock(gomock.Any(), []int64{1}).
					Return(map[int64]int{1: 10}, nil)
				m.sales.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				m.ledger.EXPECT().Decrement(gomock.Any(), int64(1), 1, gomock.Any()).
					Return(&domain.TransactionAbortedError{Op: "decrement", Err: errors.New("conn reset")})
			},
			expectedError: domain.ErrTransactionAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			uow := mocks.NewMockUnitOfWork(ctrl)
			m := newTxMocks(ctrl)
			store := mocks.NewMockSalesInvoiceStore(ctrl)
			tt.setupMocks(uow, m)

			service := services.NewSalesService(uow, store, nil, helpers.TestLogger())
			invoice, err := service.Create(context.Background(), helpers.TestAdmin, tt.input)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, invoice)
				if tt.check != nil {
					tt.check(t, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(42), invoice.ID)
		})
	}
}

func TestSalesService_Create_RaisesLowStockAlerts(t *testing.T) {
	ctrl := gomock.NewController(t)

	uow := mocks.NewMockUnitOfWork(ctrl)
	m := newTxMocks(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	queue := mocks.NewMockTaskQueue(ctrl)

	runInTx(uow, m)
	m.ledger.EXPECT().LockStock(gomock.Any(), []int64{1, 2, 3}).
		Return(map[int64]int{1: 104, 2: 500, 3: 60}, nil)
	m.sales.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv *domain.SalesInvoice) error {
			inv.ID = 11
			return nil
		})
	m.ledger.EXPECT().Decrement(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	m.sales.EXPECT().FindByID(gomock.Any(), int64(11)).Return(&domain.SalesInvoice{ID: 11}, nil)

	cache.EXPECT().DeletePattern(gomock.Any(), "reports:*").Return(nil)
	queue.EXPECT().EnqueueReportRefresh(gomock.Any()).Return(nil)

	// product 1 drops to 99 and alerts; product 3 was alerted within the window
	cache.EXPECT().SetNX(gomock.Any(), "lowstock:1", gomock.Any(), time.Hour).Return(true, nil)
	cache.EXPECT().SetNX(gomock.Any(), "lowstock:3", gomock.Any(), time.Hour).Return(false, nil)
	queue.EXPECT().EnqueueLowStockAlert(gomock.Any(), domain.LowStockAlert{
		ProductID: 1,
		Stock:     99,
		Threshold: 100,
		InvoiceID: 11,
	}).Return(nil)

	events := services.NewInvoiceEvents(cache, queue, 100, helpers.TestLogger())
	service := services.NewSalesService(uow, mocks.NewMockSalesInvoiceStore(ctrl), events, helpers.TestLogger())

	input := helpers.CreateTestInvoiceInput(3,
		helpers.Line(1, 5), helpers.Line(2, 1), helpers.Line(3, 10))
	invoice, err := service.Create(context.Background(), helpers.TestAdmin, input)

	require.NoError(t, err)
	assert.Equal(t, int64(11), invoice.ID)
}

func TestSalesService_Create_SideEffectFailuresDoNotFail(t *testing.T) {
	ctrl := gomock.NewController(t)

	uow := mocks.NewMockUnitOfWork(ctrl)
	m := newTxMocks(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	queue := mocks.NewMockTaskQueue(ctrl)

	runInTx(uow, m)
	m.ledger.EXPECT().LockStock(gomock.Any(), []int64{1}).Return(map[int64]int{1: 10}, nil)
	m.sales.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	m.ledger.EXPECT().Decrement(gomock.Any(), int64(1), 2, gomock.Any()).Return(nil)
	m.sales.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(&domain.SalesInvoice{ID: 5}, nil)

	cache.EXPECT().DeletePattern(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	queue.EXPECT().EnqueueReportRefresh(gomock.Any()).Return(errors.New("redis down"))
	cache.EXPECT().SetNX(gomock.Any(), "lowstock:1", gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	queue.EXPECT().EnqueueLowStockAlert(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	events := services.NewInvoiceEvents(cache, queue, 100, helpers.TestLogger())
	service := services.NewSalesService(uow, mocks.NewMockSalesInvoiceStore(ctrl), events, helpers.TestLogger())

	invoice, err := service.Create(context.Background(), helpers.TestAdmin,
		helpers.CreateTestInvoiceInput(3, helpers.Line(1, 2)))

	require.NoError(t, err)
	assert.Equal(t, int64(5), invoice.ID)
}

func TestSalesService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSalesInvoiceStore(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)

	store.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)
	cache.EXPECT().DeletePattern(gomock.Any(), "reports:*").Return(nil)

	events := services.NewInvoiceEvents(cache, nil, 100, helpers.TestLogger())
	service := services.NewSalesService(mocks.NewMockUnitOfWork(ctrl), store, events, helpers.TestLogger())

	require.NoError(t, service.Delete(context.Background(), helpers.TestAdmin, 3))
}

func TestSalesService_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)

	store := mocks.NewMockSalesInvoiceStore(ctrl)
	store.EXPECT().Delete(gomock.Any(), int64(3)).
		Return(&domain.NotFoundError{Entity: domain.EntitySalesInvoice, ID: 3})

	service := services.NewSalesService(mocks.NewMockUnitOfWork(ctrl), store, nil, helpers.TestLogger())
	err := service.Delete(context.Background(), helpers.TestAdmin, 3)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
