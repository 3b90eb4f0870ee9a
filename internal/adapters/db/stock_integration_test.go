//go:build integration
// +build integration

package db_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/test/helpers"
)

type StockSuite struct {
	suite.Suite
	testDB    *helpers.TestDB
	ctx       context.Context
	sales     *services.SalesService
	purchases *services.PurchaseService
	products  *services.ProductService

	categoryID int64
	customerID int64
	supplierID int64
}

func (s *StockSuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.ctx = context.Background()

	logger := helpers.TestLogger()
	database := s.testDB.Database
	uow := db.NewTransactionScope(database, logger)

	s.sales = services.NewSalesService(uow, db.NewSalesInvoiceRepository(database, logger), nil, logger)
	s.purchases = services.NewPurchaseService(uow, db.NewPurchaseInvoiceRepository(database, logger), nil, logger)
	s.products = services.NewProductService(
		db.NewProductRepository(database, logger),
		db.NewProductLedger(database, logger),
		uow, nil, logger,
	)
}

func (s *StockSuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.categoryID, s.customerID, s.supplierID = helpers.SeedCatalog(s.T(), s.testDB.PgxPool)
}

func (s *StockSuite) newProduct(stock int) int64 {
	p := helpers.CreateTestProduct(func(p *domain.Product) {
		p.CategoryID = s.categoryID
		p.Stock = stock
	})
	s.Require().NoError(s.products.Create(s.ctx, helpers.TestAdmin, p))
	return p.ID
}

// ledgerMatches checks that the movement log sums to the stored counter
func (s *StockSuite) ledgerMatches(productID int64) {
	var sum int
	s.Require().NoError(s.testDB.PgxPool.QueryRow(s.ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM stock_movements WHERE product_id = $1`, productID).Scan(&sum))
	s.Equal(helpers.StockOf(s.T(), s.testDB.PgxPool, productID), sum)
}

func (s *StockSuite) TestScenario() {
	p1 := s.newProduct(20)

	_, err := s.sales.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(p1, 5)))
	s.Require().NoError(err)
	s.Equal(15, helpers.StockOf(s.T(), s.testDB.PgxPool, p1))

	_, err = s.sales.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(p1, 30)))
	var insufficient *domain.InsufficientStockError
	s.Require().ErrorAs(err, &insufficient)
	s.Equal(domain.InsufficientStockError{ProductID: p1, Available: 15, Requested: 30}, *insufficient)
	s.Equal(15, helpers.StockOf(s.T(), s.testDB.PgxPool, p1))

	purchase, err := s.purchases.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.supplierID, helpers.Line(p1, 50)))
	s.Require().NoError(err)
	s.Equal(domain.PurchaseStatusPending, purchase.Status)
	s.Equal(15, helpers.StockOf(s.T(), s.testDB.PgxPool, p1))

	_, err = s.purchases.Transition(s.ctx, helpers.TestAdmin, purchase.ID, domain.PurchaseStatusPaid)
	s.Require().NoError(err)
	s.Equal(65, helpers.StockOf(s.T(), s.testDB.PgxPool, p1))

	_, err = s.purchases.Transition(s.ctx, helpers.TestAdmin, purchase.ID, domain.PurchaseStatusPaid)
	s.Require().NoError(err)
	s.Equal(65, helpers.StockOf(s.T(), s.testDB.PgxPool, p1))

	s.ledgerMatches(p1)
}

func (s *StockSuite) TestAtomicity() {
	a := s.newProduct(50)
	b := s.newProduct(10)

	_, err := s.sales.Create(s.ctx, helpers.TestAdmin,
		helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(a, 5), helpers.Line(b, 100)))

	var insufficient *domain.InsufficientStockError
	s.Require().ErrorAs(err, &insufficient)
	s.Equal(b, insufficient.ProductID)
	s.Equal(50, helpers.StockOf(s.T(), s.testDB.PgxPool, a))
	s.Equal(10, helpers.StockOf(s.T(), s.testDB.PgxPool, b))
	s.Zero(helpers.CountRows(s.T(), s.testDB.PgxPool, "sales_invoices"))
	s.Zero(helpers.CountRows(s.T(), s.testDB.PgxPool, "sales_invoice_items"))
}

func (s *StockSuite) TestUnknownProductLeavesNoTrace() {
	a := s.newProduct(50)

	_, err := s.sales.Create(s.ctx, helpers.TestAdmin,
		helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(a, 5), helpers.Line(9999, 1)))

	s.Require().ErrorIs(err, domain.ErrNotFound)
	s.Equal(50, helpers.StockOf(s.T(), s.testDB.PgxPool, a))
	s.Zero(helpers.CountRows(s.T(), s.testDB.PgxPool, "sales_invoices"))
}

func (s *StockSuite) TestRepeatedProductSumsDecrements() {
	a := s.newProduct(10)

	_, err := s.sales.Create(s.ctx, helpers.TestAdmin,
		helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(a, 6), helpers.Line(a, 6)))
	var insufficient *domain.InsufficientStockError
	s.Require().ErrorAs(err, &insufficient)
	s.Equal(12, insufficient.Requested)

	_, err = s.sales.Create(s.ctx, helpers.TestAdmin,
		helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(a, 4), helpers.Line(a, 6)))
	s.Require().NoError(err)
	s.Zero(helpers.StockOf(s.T(), s.testDB.PgxPool, a))
	s.ledgerMatches(a)
}

func (s *StockSuite) TestRoundTrip() {
	a := s.newProduct(30)
	b := s.newProduct(30)
	input := helpers.CreateTestInvoiceInput(s.customerID,
		domain.LineItem{ProductID: b, Quantity: 2, Price: decimal.RequireFromString("12.50")},
		domain.LineItem{ProductID: a, Quantity: 7, Price: decimal.NewFromInt(3)},
	)

	created, err := s.sales.Create(s.ctx, helpers.TestAdmin, input)
	s.Require().NoError(err)

	fetched, err := s.sales.GetByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(s.customerID, fetched.CustomerID)
	s.True(input.Date.Equal(fetched.Date))
	s.True(input.Total.Equal(fetched.Total))
	s.Require().Len(fetched.Items, 2)
	for i, item := range fetched.Items {
		s.Equal(input.Items[i].ProductID, item.ProductID)
		s.Equal(input.Items[i].Quantity, item.Quantity)
		s.True(input.Items[i].Price.Equal(item.Price))
	}
	s.Require().NotNil(fetched.Customer)
	s.Equal("Acme", fetched.Customer.Name)
}

func (s *StockSuite) TestConcurrentSalesConserveStock() {
	const (
		initial  = 20
		workers  = 16
		quantity = 3
	)
	p := s.newProduct(initial)

	var committed atomic.Int64
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.sales.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(p, quantity)))
			var insufficient *domain.InsufficientStockError
			var aborted *domain.TransactionAbortedError
			switch {
			case err == nil:
				committed.Add(1)
			case errors.As(err, &insufficient), errors.As(err, &aborted):
			default:
				s.Failf("unexpected error", "%v", err)
			}
		}()
	}
	wg.Wait()

	final := helpers.StockOf(s.T(), s.testDB.PgxPool, p)
	s.GreaterOrEqual(final, 0)
	s.Equal(initial-int(committed.Load())*quantity, final)
	s.Equal(int(committed.Load()), helpers.CountRows(s.T(), s.testDB.PgxPool, "sales_invoices"))
	s.Equal(int64(initial/quantity), committed.Load())
	s.ledgerMatches(p)
}

func (s *StockSuite) TestConcurrentPaidTransitionAppliesOnce() {
	a := s.newProduct(0)
	b := s.newProduct(5)

	purchase, err := s.purchases.Create(s.ctx, helpers.TestAdmin,
		helpers.CreateTestInvoiceInput(s.supplierID, helpers.Line(a, 40), helpers.Line(b, 2)))
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.purchases.Transition(s.ctx, helpers.TestAdmin, purchase.ID, domain.PurchaseStatusPaid)
			var aborted *domain.TransactionAbortedError
			if err != nil && !errors.As(err, &aborted) {
				s.Failf("unexpected error", "%v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(40, helpers.StockOf(s.T(), s.testDB.PgxPool, a))
	s.Equal(7, helpers.StockOf(s.T(), s.testDB.PgxPool, b))
	s.ledgerMatches(a)
	s.ledgerMatches(b)
}

func (s *StockSuite) TestTerminalTransitionsAreNoOps() {
	a := s.newProduct(10)

	cancelled, err := s.purchases.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.supplierID, helpers.Line(a, 5)))
	s.Require().NoError(err)
	_, err = s.purchases.Transition(s.ctx, helpers.TestAdmin, cancelled.ID, domain.PurchaseStatusCancelled)
	s.Require().NoError(err)

	got, err := s.purchases.Transition(s.ctx, helpers.TestAdmin, cancelled.ID, domain.PurchaseStatusPaid)
	s.Require().NoError(err)
	s.Equal(domain.PurchaseStatusCancelled, got.Status)
	s.Equal(10, helpers.StockOf(s.T(), s.testDB.PgxPool, a))

	paid, err := s.purchases.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.supplierID, helpers.Line(a, 5)))
	s.Require().NoError(err)
	_, err = s.purchases.Transition(s.ctx, helpers.TestAdmin, paid.ID, domain.PurchaseStatusPaid)
	s.Require().NoError(err)
	got, err = s.purchases.Transition(s.ctx, helpers.TestAdmin, paid.ID, domain.PurchaseStatusPending)
	s.Require().NoError(err)
	s.Equal(domain.PurchaseStatusPaid, got.Status)
	s.Equal(15, helpers.StockOf(s.T(), s.testDB.PgxPool, a))
}

func (s *StockSuite) TestOrdersAndSettledQueues() {
	a := s.newProduct(0)
	for i := range 3 {
		inv, err := s.purchases.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.supplierID, helpers.Line(a, 1)))
		s.Require().NoError(err)
		if i == 0 {
			_, err = s.purchases.Transition(s.ctx, helpers.TestAdmin, inv.ID, domain.PurchaseStatusPaid)
			s.Require().NoError(err)
		}
	}

	orders, err := s.purchases.FindOrders(s.ctx, ports.ListParams{Page: 1, Limit: 0})
	s.Require().NoError(err)
	s.EqualValues(2, orders.TotalCount)
	s.Greater(orders.Items[0].ID, orders.Items[1].ID)

	settled, err := s.purchases.FindSettled(s.ctx, ports.ListParams{Page: 1, Limit: 5})
	s.Require().NoError(err)
	s.EqualValues(1, settled.TotalCount)
	s.Equal(domain.PurchaseStatusPaid, settled.Items[0].Status)
}

func (s *StockSuite) TestDeleteKeepsStock() {
	a := s.newProduct(10)
	inv, err := s.sales.Create(s.ctx, helpers.TestAdmin, helpers.CreateTestInvoiceInput(s.customerID, helpers.Line(a, 4)))
	s.Require().NoError(err)

	s.Require().NoError(s.sales.Delete(s.ctx, helpers.TestAdmin, inv.ID))

	s.Equal(6, helpers.StockOf(s.T(), s.testDB.PgxPool, a))
	_, err = s.sales.GetByID(s.ctx, inv.ID)
	s.ErrorIs(err, domain.ErrNotFound)
}

func TestStockSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(StockSuite))
}
